package domain

// Slot rules
const (
	SlotDurationMinutes = 60 // все сессии длятся ровно час
	MaxActivatedTimes   = 10 // лимит ежедневных слотов терапевта
)

// Business validation constants
const (
	MaxChildNameLength          = 100
	MinChildAge                 = 0
	MaxChildAge                 = 18
	MaxNotesLength              = 500
	MaxLeaveReasonLength        = 500
	MaxAdminNotesLength         = 500
	MaxCancellationReasonLength = 500
	MaxReportSummaryLength      = 4000
	MaxReportFieldLength        = 2000
	MaxFeedbackCommentLength    = 1000
)

// Session feedback rating scale
const (
	MinRating = 1
	MaxRating = 5
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// User roles passed by the gateway in X-User-Role
const (
	RoleParent    = "parent"
	RoleTherapist = "therapist"
	RoleAdmin     = "admin"
)
