// Package queue defines message payloads exchanged over the message
// broker and the background consumer that drains them. The broker is
// the application's notification sink: anything that would end up in
// a user's mailbox (password-reset links, payslip notices) is
// published here and delivered out of band.
package queue

// Notification types carried in NotificationEvent.Type.
const (
	TypePasswordReset = "password_reset"
	TypePayslipIssued = "payslip_issued"
)

// NotificationEvent is published to the dashboard.notifications
// queue. It contains everything a mail worker needs to render and
// send the message without querying the primary database. The reset
// token travels only on this channel, never in an HTTP response.
type NotificationEvent struct {
	Type        string  `json:"type"`
	UserID      uint64  `json:"user_id"`
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	ResetToken  string  `json:"reset_token,omitempty"`
	ExpiresAt   string  `json:"expires_at,omitempty"`
	PayslipID   uint64  `json:"payslip_id,omitempty"`
	Month       int     `json:"month,omitempty"`
	Year        int     `json:"year,omitempty"`
	GrossAmount float64 `json:"gross_amount,omitempty"`
	NetAmount   float64 `json:"net_amount,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
