package calendar

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/datetext"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/sse"
)

// Config holds calendar service configuration
type Config struct {
	DefaultLocale calendar.Locale // default: en
	SessionTTL    time.Duration   // default: 30 minutes
	FetchTimeout  time.Duration   // default: 15 seconds
	Now           func() time.Time
}

type service struct {
	loader   Loader
	renderer *Renderer
	registry *Registry
	hub      *sse.Hub
	config   Config
}

// NewCalendarService creates the calendar service. Session changes are
// published on hub.
func NewCalendarService(loader Loader, hub *sse.Hub, cfg Config) calendar.Service {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = calendar.LocaleEN
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = 15 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &service{
		loader:   loader,
		renderer: NewRenderer(cfg.Now),
		hub:      hub,
		config:   cfg,
	}
	s.registry = NewRegistry(SessionConfig{
		Loader:       loader,
		Renderer:     s.renderer,
		Notify:       s.publish,
		FetchTimeout: cfg.FetchTimeout,
		Now:          cfg.Now,
	}, cfg.SessionTTL)
	return s
}

func (s *service) publish(sessionID, event string, view calendar.CalendarView) {
	if s.hub == nil {
		return
	}
	s.hub.Publish(sessionID, sse.Event{
		SessionID: sessionID,
		Event:     event,
		Data:      view,
	})
}

func (s *service) locale(l calendar.Locale) calendar.Locale {
	if parsed, ok := calendar.ParseLocale(string(l)); ok {
		return parsed
	}
	return s.config.DefaultLocale
}

// Parse reads one date expression
func (s *service) Parse(ctx context.Context, req calendar.ParseRequest) (calendar.ParseResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.ParseResponse{}, err
	}
	r, err := datetext.Parse(req.Text, req.ReferenceYear)
	if err != nil {
		return calendar.ParseResponse{}, err
	}
	return calendar.ParseResponse{Text: req.Text, Start: r.Start, End: r.End}, nil
}

// Extract turns raw page lines into categorized events
func (s *service) Extract(ctx context.Context, req calendar.ExtractRequest) (calendar.ExtractResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.ExtractResponse{}, err
	}
	return ExtractEvents(req.Lines, req.ReferenceYear), nil
}

// Render loads the requested year and renders it in one call
func (s *service) Render(ctx context.Context, req calendar.RenderRequest) (calendar.CalendarView, error) {
	if req.View == calendar.ViewYear && req.Month == 0 {
		req.Month = time.January
	}
	if err := req.Validate(); err != nil {
		return calendar.CalendarView{}, err
	}
	locale := s.locale(req.Locale)

	store, loadErr := s.load(ctx, req.Year)
	view, err := s.renderer.Render(store, calendar.ViewState{Kind: req.View, Year: req.Year, Month: req.Month}, locale)
	if err != nil {
		return calendar.CalendarView{}, err
	}
	if loadErr != nil {
		view.NoData = true
		view.Message = textFor(locale).noData
	}
	return view, nil
}

func (s *service) load(ctx context.Context, year int) (*EventStore, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.FetchTimeout)
	defer cancel()

	store, err := s.loader.Load(ctx, year)
	if err != nil {
		slog.Warn("leave data unavailable", "year", year, "error", err)
		return NewEventStore(), err
	}
	return store, nil
}

// ExportICS renders a year's leave as an iCalendar document
func (s *service) ExportICS(ctx context.Context, year int, locale calendar.Locale) ([]byte, error) {
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", calendar.ErrInvalidYear, year)
	}
	store, err := s.load(ctx, year)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	name := fmt.Sprintf("Leave %d", year)
	if err := WriteICS(&buf, name, store.Events(), s.locale(locale), s.config.Now()); err != nil {
		return nil, fmt.Errorf("write ics: %w", err)
	}
	return buf.Bytes(), nil
}

// CreateSession starts an interactive calendar in the current year's year view
func (s *service) CreateSession(ctx context.Context, req calendar.CreateSessionRequest) (calendar.CalendarView, error) {
	session := s.registry.Create(s.locale(req.Locale))
	slog.Info("calendar session created", "session_id", session.ID(), "locale", session.Locale())
	return session.View()
}

// GetSession returns the current view, optionally waiting for the active year
func (s *service) GetSession(ctx context.Context, sessionID string, wait bool) (calendar.CalendarView, error) {
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return calendar.CalendarView{}, err
	}
	if wait {
		return session.Wait(ctx)
	}
	return session.View()
}

// ApplyAction toggles the view or moves to the previous/next period
func (s *service) ApplyAction(ctx context.Context, sessionID string, req calendar.ActionRequest) (calendar.CalendarView, error) {
	if err := req.Validate(); err != nil {
		return calendar.CalendarView{}, err
	}
	session, err := s.registry.Get(sessionID)
	if err != nil {
		return calendar.CalendarView{}, err
	}
	return session.Apply(req.Action)
}

// DeleteSession drops a session and ends its streams
func (s *service) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.registry.Delete(sessionID); err != nil {
		return err
	}
	if s.hub != nil {
		s.hub.Close(sessionID)
	}
	slog.Info("calendar session deleted", "session_id", sessionID)
	return nil
}

// Subscribe creates an SSE subscription for a session
func (s *service) Subscribe(ctx context.Context, sessionID string) (<-chan calendar.SSEEvent, func(), error) {
	if _, err := s.registry.Get(sessionID); err != nil {
		return nil, nil, err
	}
	if s.hub == nil {
		return nil, nil, errors.New("session streaming is not configured")
	}
	ch, cleanup := s.hub.Subscribe(sessionID)

	out := make(chan calendar.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				if view, ok := event.Data.(calendar.CalendarView); ok {
					select {
					case out <- calendar.SSEEvent{Event: event.Event, Data: view}:
					case <-ctx.Done():
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup, nil
}

// SweepIdleSessions drops sessions idle for longer than the session TTL
func (s *service) SweepIdleSessions(ctx context.Context) (int, error) {
	removed := s.registry.SweepIdle()
	for _, id := range removed {
		if s.hub != nil {
			s.hub.Close(id)
		}
	}
	if len(removed) > 0 {
		slog.Info("swept idle calendar sessions", "count", len(removed))
	}
	return len(removed), nil
}
