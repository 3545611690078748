package hrapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/go-resty/resty/v2"
)

const (
	defaultPTOPagePath = "/employees/pto"
	defaultTimeout     = 10 * time.Second
	timeOffPath        = "/time_off/requests"
)

// Config holds the host HR API connection settings.
type Config struct {
	BaseURL     string
	APIKey      string
	EmployeeID  string
	PTOPagePath string
	Timeout     time.Duration
}

// Client reads an employee's time off from the host HR system. It serves
// both the structured request list and the raw lines of the PTO page.
type Client struct {
	config Config
	http   *resty.Client
}

// NewClient creates a new HR API client.
func NewClient(config Config) *Client {
	if config.PTOPagePath == "" {
		config.PTOPagePath = defaultPTOPagePath
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(config.BaseURL, "/")).
		SetTimeout(config.Timeout).
		SetHeader("User-Agent", "leave-calendar/1.0")
	if config.APIKey != "" {
		httpClient.SetBasicAuth(config.APIKey, "x")
	}

	return &Client{config: config, http: httpClient}
}

var (
	_ calendar.TextLineSource = (*Client)(nil)
	_ calendar.RecordSource   = (*Client)(nil)
)

// timeOffRequest mirrors one entry of the time off request list.
type timeOffRequest struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employeeId"`
	Status     struct {
		Status string `json:"status"`
	} `json:"status"`
	Start string `json:"start"`
	End   string `json:"end"`
	Type  struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
	} `json:"type"`
	Notes struct {
		Employee string `json:"employee"`
	} `json:"notes"`
}

// shownStatuses are the request statuses that occupy the calendar.
var shownStatuses = map[string]bool{
	"approved":  true,
	"requested": true,
}

// FetchRecords implements calendar.RecordSource.
func (c *Client) FetchRecords(ctx context.Context, year int) ([]calendar.EventRecord, error) {
	var requests []timeOffRequest
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"start":      fmt.Sprintf("%04d-01-01", year),
			"end":        fmt.Sprintf("%04d-12-31", year),
			"employeeId": c.config.EmployeeID,
		}).
		SetResult(&requests).
		Get(timeOffPath)
	if err != nil {
		return nil, fmt.Errorf("fetch time off requests: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch time off requests: unexpected status %d", resp.StatusCode())
	}

	records := make([]calendar.EventRecord, 0, len(requests))
	for _, req := range requests {
		status := strings.ToLower(strings.TrimSpace(req.Status.Status))
		if !shownStatuses[status] {
			continue
		}
		color := req.Type.Color
		if color != "" && !strings.HasPrefix(color, "#") {
			color = "#" + color
		}
		if !calendar.RGBHexColor(color).Valid() {
			color = ""
		}
		records = append(records, calendar.EventRecord{
			Title:        req.Type.Name,
			StartDate:    req.Start,
			EndDate:      req.End,
			CategoryName: req.Type.Name,
			Color:        color,
			Status:       status,
		})
	}
	return records, nil
}

// FetchLines implements calendar.TextLineSource.
func (c *Client) FetchLines(ctx context.Context, year int) ([]string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "text/html").
		SetQueryParam("year", strconv.Itoa(year)).
		SetDoNotParseResponse(true).
		Get(c.config.PTOPagePath)
	if err != nil {
		return nil, fmt.Errorf("fetch pto page: %w", err)
	}
	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch pto page: unexpected status %d", resp.StatusCode())
	}

	return ExtractLines(body)
}
