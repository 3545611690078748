package calendar

import "context"

type Service interface {
	// Stateless helpers
	Parse(ctx context.Context, req ParseRequest) (ParseResponse, error)
	Extract(ctx context.Context, req ExtractRequest) (ExtractResponse, error)
	Render(ctx context.Context, req RenderRequest) (CalendarView, error)
	ExportICS(ctx context.Context, year int, locale Locale) ([]byte, error)

	// Interactive sessions
	CreateSession(ctx context.Context, req CreateSessionRequest) (CalendarView, error)
	GetSession(ctx context.Context, sessionID string, wait bool) (CalendarView, error)
	ApplyAction(ctx context.Context, sessionID string, req ActionRequest) (CalendarView, error)
	DeleteSession(ctx context.Context, sessionID string) error
	Subscribe(ctx context.Context, sessionID string) (<-chan SSEEvent, func(), error)

	// Maintenance
	SweepIdleSessions(ctx context.Context) (int, error)
}
