package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/cmlabs-hris/leave-calendar-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/leave-calendar-go/internal/handler/http/response"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

// CalendarHandler defines the calendar handler interface
type CalendarHandler interface {
	// Stateless
	Parse(w http.ResponseWriter, r *http.Request)
	Extract(w http.ResponseWriter, r *http.Request)
	Render(w http.ResponseWriter, r *http.Request)
	ExportICS(w http.ResponseWriter, r *http.Request)

	// Sessions
	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	ApplyAction(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)
	Stream(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.Service
	defaultLocale   calendar.Locale
	keepalive       time.Duration
}

// NewCalendarHandler creates a new calendar handler
func NewCalendarHandler(calendarService calendar.Service, defaultLocale calendar.Locale) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
		defaultLocale:   defaultLocale,
		keepalive:       30 * time.Second,
	}
}

func (h *calendarHandlerImpl) locale(r *http.Request) calendar.Locale {
	return middleware.LocaleFromContext(r.Context(), h.defaultLocale)
}

// getIntQueryParam gets an int query parameter with a default value
func getIntQueryParam(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	intVal, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return intVal
}

// sessionIDParam reads the {id} path parameter. Anything that is not a UUID
// cannot name a session and is answered with 404.
func sessionIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if !validator.IsValidSessionID(id) {
		response.HandleError(w, calendar.ErrSessionNotFound)
		return "", false
	}
	return id, true
}

// getBoolQueryParam gets a bool query parameter with a default value
func getBoolQueryParam(r *http.Request, key string, defaultVal bool) bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}
	return val == "true" || val == "1"
}

// Parse resolves a single date range expression
func (h *calendarHandlerImpl) Parse(w http.ResponseWriter, r *http.Request) {
	var req calendar.ParseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.calendarService.Parse(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Extract turns scraped text lines into events
func (h *calendarHandlerImpl) Extract(w http.ResponseWriter, r *http.Request) {
	var req calendar.ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.calendarService.Extract(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Render loads a year and returns the requested grid
func (h *calendarHandlerImpl) Render(w http.ResponseWriter, r *http.Request) {
	view := calendar.ViewKind(r.URL.Query().Get("view"))
	if view == "" {
		view = calendar.ViewYear
	}

	req := calendar.RenderRequest{
		View:   view,
		Year:   getIntQueryParam(r, "year", time.Now().Year()),
		Month:  time.Month(getIntQueryParam(r, "month", 0)),
		Locale: h.locale(r),
	}

	result, err := h.calendarService.Render(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ExportICS downloads a year's events as an iCalendar file
func (h *calendarHandlerImpl) ExportICS(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.HandleError(w, calendar.ErrInvalidYear)
		return
	}

	data, err := h.calendarService.ExportICS(r.Context(), year, h.locale(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"leave-%04d.ics\"", year))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// CreateSession opens an interactive calendar in the year view
func (h *calendarHandlerImpl) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req calendar.CreateSessionRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}
	if _, ok := calendar.ParseLocale(string(req.Locale)); !ok {
		req.Locale = h.locale(r)
	}

	result, err := h.calendarService.CreateSession(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Calendar session created", result)
}

// GetSession returns the session's current view
func (h *calendarHandlerImpl) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	wait := getBoolQueryParam(r, "wait", false)

	result, err := h.calendarService.GetSession(r.Context(), sessionID, wait)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ApplyAction drives the session state machine
func (h *calendarHandlerImpl) ApplyAction(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	var req calendar.ActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.calendarService.ApplyAction(r.Context(), sessionID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// DeleteSession closes a session and its streams
func (h *calendarHandlerImpl) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	if err := h.calendarService.DeleteSession(r.Context(), sessionID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Calendar session deleted", nil)
}

// Stream handles the SSE connection for a session
func (h *calendarHandlerImpl) Stream(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}

	// Check if streaming is supported
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	events, cleanup, err := h.calendarService.Subscribe(r.Context(), sessionID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer cleanup()

	current, err := h.calendarService.GetSession(r.Context(), sessionID, false)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	// Send the current view first
	writeSSE(w, "state", current)
	flusher.Flush()

	keepalive := time.NewTicker(h.keepalive)
	defer keepalive.Stop()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			writeSSE(w, event.Event, event.Data)
			flusher.Flush()

		case <-keepalive.C:
			fmt.Fprintf(w, "event: ping\ndata: {\"timestamp\":%d}\n\n", time.Now().Unix())
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}

func writeSSE(w http.ResponseWriter, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}
