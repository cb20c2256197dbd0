package domain

// Slot geometry
const (
	SlotMinutes = 30
)

// Schedule policy bounds and defaults
const (
	MinStartHour     = 5
	MaxEndHour       = 23
	DefaultStartHour = 9
	DefaultEndHour   = 18
)

// Booking lifecycle defaults
const (
	DefaultPendingTTLMinutes     = 30
	DefaultReminderLeadMinutes   = 30
	DefaultHorizonDays           = 14
	DefaultRehydrateGraceSeconds = 5
)

// Customer languages
const (
	LangRU = "ru"
	LangUZ = "uz"

	DefaultLang = LangRU
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// IsSupportedLang reports whether lang has notification templates.
func IsSupportedLang(lang string) bool {
	return lang == LangRU || lang == LangUZ
}
