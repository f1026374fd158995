package utils

import (
	"fmt"
	"net/smtp"
	"os"
	"time"
)

func SendMail(email string, message []byte) {
	from := "kenflash.notify@gmail.com"
	password := os.Getenv("GOOGLE_SMTP_MDP")
	to := email

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"
	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, []string{to}, message)
	if err != nil {
		LogError(err, "Error sending email")
		return
	}

	LogSuccess("Email sent to " + email)
}

// SendPaymentReceipt sends the receipt mail after a verified payment.
// Best effort: a mail failure never blocks the subscription grant.
func SendPaymentReceipt(email, plan string, expiry time.Time) {
	message := []byte(fmt.Sprintf(
		"Subject: Your KenFlash subscription\r\n"+
			"To: %s\r\n"+
			"\r\n"+
			"Thank you for subscribing to KenFlash.\r\n\r\n"+
			"Plan: %s\r\n"+
			"Access until: %s\r\n\r\n"+
			"Enjoy!\r\n",
		email, plan, expiry.Format(time.RFC1123)))

	SendMail(email, message)
}
