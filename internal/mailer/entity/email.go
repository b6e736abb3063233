package entity

// Email is a plain text message for a single recipient.
type Email struct {
	ReceiverEmail string
	Subject       string
	BodyText      string
}

// SendResult is the outcome of one relay attempt.
type SendResult struct {
	Success  bool
	Message  string
	EmailID  string
	Category FailureCategory
}

// MsgSent is the message of a successful SendResult.
const MsgSent = "Email sent successfully"

// NewSendSuccess returns a successful result tracked by emailID.
func NewSendSuccess(emailID string) SendResult {
	return SendResult{Success: true, Message: MsgSent, EmailID: emailID, Category: FailureNone}
}

// NewSendFailure returns a failed result whose message starts with the
// category prefix followed by the cause.
func NewSendFailure(category FailureCategory, cause error) SendResult {
	msg := category.Prefix()
	if cause != nil {
		msg += cause.Error()
	}
	return SendResult{Message: msg, Category: category}
}
