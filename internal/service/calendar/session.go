package calendar

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
)

const (
	EventState = "state"
	EventReady = "ready"
)

// Loader builds the EventStore of one year.
type Loader interface {
	Load(ctx context.Context, year int) (*EventStore, error)
}

// Notifier receives every view change of a session. It is called with the
// session lock held so notifications arrive in order; it must not block.
type Notifier func(sessionID, event string, view calendar.CalendarView)

// SessionConfig is shared by every session of a registry.
type SessionConfig struct {
	Loader       Loader
	Renderer     *Renderer
	Notify       Notifier
	FetchTimeout time.Duration
	Now          func() time.Time
}

// Session is one interactive calendar. It owns the store of the active year,
// replaced wholesale when a fetch for that year completes. A fetch for a
// year the session has since navigated away from is discarded.
type Session struct {
	id     string
	locale calendar.Locale
	cfg    SessionConfig

	mu         sync.Mutex
	state      calendar.ViewState
	activeYear int
	store      *EventStore
	loading    bool
	noData     bool
	ready      chan struct{}
	lastAccess time.Time
}

func newSession(id string, locale calendar.Locale, cfg SessionConfig) *Session {
	s := &Session{
		id:     id,
		locale: locale,
		cfg:    cfg,
		state:  calendar.InitialViewState(cfg.Now()),
	}
	s.mu.Lock()
	s.lastAccess = cfg.Now()
	s.startLoadLocked(s.state.Year)
	s.mu.Unlock()
	return s
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Locale() calendar.Locale {
	return s.locale
}

// startLoadLocked makes year the active year and fetches it in the
// background. Waiters on a superseded load are released.
func (s *Session) startLoadLocked(year int) {
	if s.ready != nil && s.loading {
		close(s.ready)
	}
	s.activeYear = year
	s.store = nil
	s.loading = true
	s.noData = false
	s.ready = make(chan struct{})

	go func() {
		ctx := context.Background()
		if s.cfg.FetchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
			defer cancel()
		}
		store, err := s.cfg.Loader.Load(ctx, year)
		s.complete(year, store, err)
	}()
}

func (s *Session) complete(year int, store *EventStore, err error) {
	s.mu.Lock()
	if year != s.activeYear || !s.loading {
		s.mu.Unlock()
		slog.Debug("discarding stale leave fetch", "session_id", s.id, "year", year, "active_year", s.activeYear)
		return
	}

	s.loading = false
	if err != nil {
		slog.Warn("leave data unavailable", "session_id", s.id, "year", year, "error", err)
		s.store = NewEventStore()
		s.noData = true
	} else {
		s.store = store
	}
	close(s.ready)

	view, err := s.viewLocked()
	if err != nil {
		s.mu.Unlock()
		slog.Error("failed to render calendar session", "session_id", s.id, "error", err)
		return
	}
	s.notify(EventReady, view)
	s.mu.Unlock()
}

// Apply runs a navigation action. Moving to another year starts a fetch for
// it; moving within the loaded year renders from the current store.
func (s *Session) Apply(action calendar.Action) (calendar.CalendarView, error) {
	s.mu.Lock()
	next, err := s.state.Apply(action)
	if err != nil {
		s.mu.Unlock()
		return calendar.CalendarView{}, err
	}
	s.state = next
	s.lastAccess = s.cfg.Now()
	if next.Year != s.activeYear {
		s.startLoadLocked(next.Year)
	}
	view, err := s.viewLocked()
	if err != nil {
		s.mu.Unlock()
		return calendar.CalendarView{}, err
	}
	s.notify(EventState, view)
	s.mu.Unlock()
	return view, nil
}

// View returns the current view without waiting for an in-flight fetch.
func (s *Session) View() (calendar.CalendarView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAccess = s.cfg.Now()
	return s.viewLocked()
}

// Wait blocks until the active year is loaded or ctx is done, then returns
// the current view. Navigating to another year while waiting extends the
// wait to that year. When ctx ends first the loading placeholder is returned.
func (s *Session) Wait(ctx context.Context) (calendar.CalendarView, error) {
	for {
		s.mu.Lock()
		if !s.loading {
			s.lastAccess = s.cfg.Now()
			view, err := s.viewLocked()
			s.mu.Unlock()
			return view, err
		}
		ready := s.ready
		s.mu.Unlock()

		select {
		case <-ready:
		case <-ctx.Done():
			return s.View()
		}
	}
}

// State returns the current view state.
func (s *Session) State() calendar.ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Store returns the store of the active year, nil while loading.
func (s *Session) Store() *EventStore {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return nil
	}
	return s.store
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastAccess)
}

func (s *Session) viewLocked() (calendar.CalendarView, error) {
	text := textFor(s.locale)
	if s.loading {
		if err := s.state.Validate(); err != nil {
			return calendar.CalendarView{}, err
		}
		return calendar.CalendarView{
			SessionID: s.id,
			State:     s.state,
			Locale:    s.locale,
			Loading:   true,
			Message:   text.loading,
		}, nil
	}

	view, err := s.cfg.Renderer.Render(s.store, s.state, s.locale)
	if err != nil {
		return calendar.CalendarView{}, err
	}
	view.SessionID = s.id
	if s.noData {
		view.NoData = true
		view.Message = text.noData
	}
	return view, nil
}

func (s *Session) notify(event string, view calendar.CalendarView) {
	if s.cfg.Notify != nil {
		s.cfg.Notify(s.id, event, view)
	}
}
