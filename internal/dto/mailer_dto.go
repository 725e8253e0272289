package dto

// SendVerificationEmailMessage is the payload queued for the email worker.
// The code only exists here and in the mail itself; no API response
// carries it.
type SendVerificationEmailMessage struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}
