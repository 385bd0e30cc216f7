package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"lms/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LMS Team <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Printf("Error sending email: %v", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all notification emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00004D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00004D; line-height: 1.6; }
			.content h2 { color: #00004D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message, please do not reply.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}

// SendEnrollmentApprovedEmail notifies a student that their enrollment
// request was approved and the course is now unlocked
func SendEnrollmentApprovedEmail(to, studentName, courseTitle string) error {
	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Good news! Your enrollment request for <b>%s</b> has been approved.</p>
		<div class="info-box">You now have full access to all course modules and videos.</div>
		<p>Happy learning!</p>`, studentName, courseTitle)

	return SendEmail([]string{to}, "Enrollment Approved: "+courseTitle, getEmailTemplate("Enrollment Approved", body))
}

// SendEnrollmentRejectedEmail notifies a student that their enrollment
// request was rejected
func SendEnrollmentRejectedEmail(to, studentName, courseTitle, notes string) error {
	noteBlock := ""
	if notes != "" {
		noteBlock = fmt.Sprintf(`<div class="info-box">%s</div>`, notes)
	}

	body := fmt.Sprintf(`
		<h2>Hi %s,</h2>
		<p>Unfortunately your enrollment request for <b>%s</b> was not approved.</p>
		%s
		<p>You can contact our team for more details.</p>`, studentName, courseTitle, noteBlock)

	return SendEmail([]string{to}, "Enrollment Update: "+courseTitle, getEmailTemplate("Enrollment Update", body))
}
