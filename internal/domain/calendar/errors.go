package calendar

import (
	"errors"

	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/caldate"
	"github.com/cmlabs-hris/leave-calendar-go/internal/pkg/datetext"
)

var (
	ErrInvalidEventRange = errors.New("Invalid event range")
	ErrUnknownView       = errors.New("Unknown calendar view")
	ErrUnknownAction     = errors.New("Unknown calendar action")
	ErrSessionNotFound   = errors.New("Calendar session not found")
	ErrDataFetch         = errors.New("Leave data could not be fetched")

	ErrInvalidYear       = caldate.ErrInvalidYear
	ErrInvalidMonth      = caldate.ErrInvalidMonth
	ErrDateParse         = datetext.ErrDateParse
	ErrUnknownMonthToken = datetext.ErrUnknownMonthToken
)
