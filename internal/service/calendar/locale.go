package calendar

import (
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
)

// localeText holds the display strings of one locale. Day names are
// Monday-first.
type localeText struct {
	months     [12]string
	days       [7]string
	shortDays  [7]string
	categories map[calendar.EventCategory]string
	weekends   string
	loading    string
	noData     string
	approved   string
	pending    string
}

var localeTexts = map[calendar.Locale]localeText{
	calendar.LocaleEN: {
		months:    [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		days:      [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		shortDays: [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
		categories: map[calendar.EventCategory]string{
			calendar.CategoryRTT:       "RTT",
			calendar.CategoryPaidLeave: "Paid leave",
			calendar.CategoryHoliday:   "Public holiday",
			calendar.CategorySeniority: "Seniority leave",
			calendar.CategorySick:      "Sick leave",
			calendar.CategoryPaternity: "Paternity leave",
			calendar.CategoryUnpaid:    "Unpaid leave",
			calendar.CategoryOther:     "Other",
		},
		weekends: "Weekends",
		loading:  "Loading leave data...",
		noData:   "No leave data available for this year.",
		approved: "Approved",
		pending:  "Pending",
	},
	calendar.LocaleFR: {
		months:    [12]string{"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août", "septembre", "octobre", "novembre", "décembre"},
		days:      [7]string{"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche"},
		shortDays: [7]string{"lun.", "mar.", "mer.", "jeu.", "ven.", "sam.", "dim."},
		categories: map[calendar.EventCategory]string{
			calendar.CategoryRTT:       "RTT",
			calendar.CategoryPaidLeave: "Congés payés",
			calendar.CategoryHoliday:   "Jour férié",
			calendar.CategorySeniority: "Congé d'ancienneté",
			calendar.CategorySick:      "Maladie",
			calendar.CategoryPaternity: "Congé paternité",
			calendar.CategoryUnpaid:    "Congé sans solde",
			calendar.CategoryOther:     "Autre",
		},
		weekends: "Week-ends",
		loading:  "Chargement des congés...",
		noData:   "Aucune donnée de congé disponible pour cette année.",
		approved: "Approuvé",
		pending:  "En attente",
	},
	calendar.LocaleDE: {
		months:    [12]string{"Januar", "Februar", "März", "April", "Mai", "Juni", "Juli", "August", "September", "Oktober", "November", "Dezember"},
		days:      [7]string{"Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag", "Samstag", "Sonntag"},
		shortDays: [7]string{"Mo", "Di", "Mi", "Do", "Fr", "Sa", "So"},
		categories: map[calendar.EventCategory]string{
			calendar.CategoryRTT:       "RTT",
			calendar.CategoryPaidLeave: "Bezahlter Urlaub",
			calendar.CategoryHoliday:   "Feiertag",
			calendar.CategorySeniority: "Dienstalterurlaub",
			calendar.CategorySick:      "Krankheit",
			calendar.CategoryPaternity: "Vaterschaftsurlaub",
			calendar.CategoryUnpaid:    "Unbezahlter Urlaub",
			calendar.CategoryOther:     "Sonstiges",
		},
		weekends: "Wochenenden",
		loading:  "Urlaubsdaten werden geladen...",
		noData:   "Für dieses Jahr sind keine Urlaubsdaten verfügbar.",
		approved: "Genehmigt",
		pending:  "Ausstehend",
	},
}

// textFor falls back to English for unknown locales.
func textFor(l calendar.Locale) localeText {
	if t, ok := localeTexts[l]; ok {
		return t
	}
	return localeTexts[calendar.LocaleEN]
}

func (t localeText) month(m time.Month) string {
	return t.months[m-1]
}

func (t localeText) category(c calendar.EventCategory) string {
	if label, ok := t.categories[c]; ok {
		return label
	}
	return t.categories[calendar.CategoryOther]
}

func (t localeText) status(s calendar.ApprovalStatus) string {
	if s == calendar.StatusApproved {
		return t.approved
	}
	return t.pending
}
