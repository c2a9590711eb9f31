package appointment

import "errors"

// Business error codes surfaced to callers through httperr.BusinessError.
const (
	CodeClientBlocked        = "client_blocked"
	CodeSlotUnavailable      = "slot_unavailable"
	CodeSlotInPast           = "slot_in_past"
	CodeOutsideWorkingHours  = "outside_working_hours"
	CodeInvalidState         = "invalid_state"
	CodeInvalidDateOrTime    = "invalid_date_or_time"
	CodeInvalidDuration      = "invalid_duration"
	CodeInvalidWorkingHours  = "invalid_working_hours"
	CodeServiceNotFound      = "service_not_found"
	CodeProfessionalNotFound = "professional_not_found"
	CodeAppointmentNotFound  = "appointment_not_found"
	CodeInvalidClient        = "invalid_client"
	CodeInvalidCancelReason  = "invalid_cancel_reason"
)

// ErrNotFound is returned by Repository lookups that match no row.
var ErrNotFound = errors.New("record not found")
