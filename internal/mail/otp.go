package mail

import (
	"github.com/studybuddy/studybuddy-server/internal/model"
)

const otpSubject = "Study Buddy Password Reset"

// OTPMessage builds the verification code email.
func OTPMessage(to, code string) model.MailMessage {
	return model.MailMessage{
		To:      to,
		Subject: otpSubject,
		Body:    "Your Study Buddy Verification Code is: " + code,
	}
}
