package models

import "errors"

// ValidationError is a client-input rejection. Message is the user-facing
// text shown on the booking form; Code is a stable token for clients that
// need to branch on the reason.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// The fixed rejection set. Booking validation reports the first failing
// check, so ordering in the validator matters more than the values here.
var (
	ErrServiceRequired = &ValidationError{Code: "service_required", Message: "Hizmet gerekli."}
	ErrNameRequired    = &ValidationError{Code: "name_required", Message: "Ad Soyad gerekli."}
	ErrDateRequired    = &ValidationError{Code: "date_required", Message: "Tarih gerekli."}
	ErrInvalidDate     = &ValidationError{Code: "invalid_date", Message: "Tarih geçersiz."}
	ErrClosedDay       = &ValidationError{Code: "closed_day", Message: "Pazar günü kapalıyız."}
	ErrInvalidTime     = &ValidationError{Code: "invalid_time", Message: "Saat geçersiz."}
	ErrInvalidPhone    = &ValidationError{
		Code:    "invalid_phone",
		Message: "Telefon geçersiz. Lütfen Türkiye cep telefonu girin (Örn: +90 5XX XXX XX XX).",
	}
	ErrUnknownService  = &ValidationError{Code: "unknown_service", Message: "Hizmet bulunamadı."}
	ErrInvalidDuration = &ValidationError{Code: "invalid_duration", Message: "Hizmet süresi geçersiz."}
	ErrOutsideHours    = &ValidationError{Code: "outside_hours", Message: "Çalışma saatleri dışında randevu alınamaz."}
	ErrPastTime        = &ValidationError{Code: "past_time", Message: "Geçmiş bir tarihe randevu alınamaz."}
)

// ErrCalendarNotConnected means the operator has not completed the Google
// authorization flow. Distinct from validation errors: the fix is on the
// admin side, not the customer's input.
var ErrCalendarNotConnected = errors.New("google calendar is not connected")

// ErrSlotTaken is the freshness re-check outcome: the slot was free when
// offered but is busy now. Clients should re-fetch availability.
var ErrSlotTaken = errors.New("requested slot is no longer available")
