package calendar

import (
	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
)

// EventStore holds the events of one loaded year in insertion order,
// deduplicated on (category, start, end). A store is built once per load and
// only read afterwards, so it carries no lock. A nil store is empty.
type EventStore struct {
	events []calendar.Event
	keys   map[calendar.EventKey]struct{}
}

func NewEventStore(events ...calendar.Event) *EventStore {
	s := &EventStore{keys: make(map[calendar.EventKey]struct{})}
	for _, e := range events {
		s.Add(e)
	}
	return s
}

// Add stores e unless an event with the same key is already present; the
// first write wins. It reports whether e was stored.
func (s *EventStore) Add(e calendar.Event) bool {
	if s.keys == nil {
		s.keys = make(map[calendar.EventKey]struct{})
	}
	key := e.Key()
	if _, dup := s.keys[key]; dup {
		return false
	}
	s.keys[key] = struct{}{}
	s.events = append(s.events, e)
	return true
}

// EventsCovering returns, in insertion order, every event whose inclusive
// range contains d.
func (s *EventStore) EventsCovering(d caldate.Date) []calendar.Event {
	if s == nil {
		return nil
	}
	var out []calendar.Event
	for _, e := range s.events {
		if e.Covers(d) {
			out = append(out, e)
		}
	}
	return out
}

// AllCategories returns the categories present, in taxonomy order.
func (s *EventStore) AllCategories() []calendar.EventCategory {
	if s == nil {
		return nil
	}
	present := make(map[calendar.EventCategory]bool, len(calendar.Categories))
	for _, e := range s.events {
		present[e.Category] = true
	}
	var out []calendar.EventCategory
	for _, c := range calendar.Categories {
		if present[c] {
			out = append(out, c)
		}
	}
	return out
}

// Events returns a copy of the stored events in insertion order.
func (s *EventStore) Events() []calendar.Event {
	if s == nil {
		return nil
	}
	out := make([]calendar.Event, len(s.events))
	copy(out, s.events)
	return out
}

func (s *EventStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}
