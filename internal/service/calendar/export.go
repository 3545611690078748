package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/google/uuid"
)

const (
	ICSProductID   = "-//cmlabs//Leave Calendar//EN"
	icsDateLayout  = "20060102"
	icsStampLayout = "20060102T150405Z"
	// Content lines longer than this many octets are folded.
	icsLineOctets = 75
)

// icsNamespace seeds the name-based UIDs so that the same leave keeps its UID
// across exports.
var icsNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://leave-calendar.cmlabs.co/events"))

var icsTextEscaper = strings.NewReplacer(
	`\`, `\\`,
	";", `\;`,
	",", `\,`,
	"\r\n", `\n`,
	"\n", `\n`,
)

// EventUID is stable for an event's dedup key.
func EventUID(e calendar.Event) string {
	key := fmt.Sprintf("%s|%s|%s", e.Category, e.Start, e.End)
	return uuid.NewSHA1(icsNamespace, []byte(key)).String() + "@leave-calendar"
}

// WriteICS writes events as all-day VEVENTs. DTEND is exclusive, the day
// after the last day of leave.
func WriteICS(w io.Writer, name string, events []calendar.Event, locale calendar.Locale, stamp time.Time) error {
	text := textFor(locale)
	ew := &icsWriter{w: w}

	ew.line("BEGIN:VCALENDAR")
	ew.line("VERSION:2.0")
	ew.line("PRODID:" + ICSProductID)
	ew.line("CALSCALE:GREGORIAN")
	ew.line("METHOD:PUBLISH")
	ew.line("X-WR-CALNAME:" + escapeICSText(name))

	dtstamp := stamp.UTC().Format(icsStampLayout)
	for _, e := range events {
		ew.line("BEGIN:VEVENT")
		ew.line("UID:" + EventUID(e))
		ew.line("DTSTAMP:" + dtstamp)
		ew.line("DTSTART;VALUE=DATE:" + e.Start.Time(time.UTC).Format(icsDateLayout))
		ew.line("DTEND;VALUE=DATE:" + e.End.AddDays(1).Time(time.UTC).Format(icsDateLayout))
		ew.line("SUMMARY:" + escapeICSText(e.Title))
		ew.line("DESCRIPTION:" + escapeICSText(text.category(e.Category)+" - "+text.status(e.Status)))
		ew.line("CATEGORIES:" + escapeICSText(text.category(e.Category)))
		ew.line("X-LEAVE-COLOR:" + string(e.Color))
		if e.Status == calendar.StatusApproved {
			ew.line("STATUS:CONFIRMED")
		} else {
			ew.line("STATUS:TENTATIVE")
		}
		ew.line("TRANSP:TRANSPARENT")
		ew.line("END:VEVENT")
	}

	ew.line("END:VCALENDAR")
	return ew.err
}

func escapeICSText(s string) string {
	return icsTextEscaper.Replace(s)
}

// foldICSLine splits s into chunks of at most 75 octets joined by CRLF and a
// single space. Multi-byte characters are never split.
func foldICSLine(s string) string {
	if len(s) <= icsLineOctets {
		return s
	}
	var b strings.Builder
	limit := icsLineOctets
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		// The leading space counts towards the continuation line.
		limit = icsLineOctets - 1
	}
	b.WriteString(s)
	return b.String()
}

// icsWriter folds and ends every line with CRLF and keeps the first write error.
type icsWriter struct {
	w   io.Writer
	err error
}

func (iw *icsWriter) line(s string) {
	if iw.err != nil {
		return
	}
	_, iw.err = io.WriteString(iw.w, foldICSLine(s)+"\r\n")
}
