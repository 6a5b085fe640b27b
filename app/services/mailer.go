package services

import (
	"database/sql"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/akhyar02/scholar-draft-sub000/app/config"
	"github.com/akhyar02/scholar-draft-sub000/app/database"
	"github.com/akhyar02/scholar-draft-sub000/app/models"
)

// Mailer sends notification emails and records every attempt to the
// email_logs audit table. Sending is fire-and-forget relative to the
// application-state mutation that triggered it: a failure is logged and
// never rolls anything back.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

var mailer *Mailer

// InitMailer builds the process-scoped mailer handle.
func InitMailer(cfg config.SMTPConfig) {
	mailer = &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
	log.Println("Mailer initialized")
}

func GetMailer() *Mailer {
	return mailer
}

// NotifySubmissionReceived emails the applicant after a successful
// submission.
func (m *Mailer) NotifySubmissionReceived(db *sql.DB, applicationID, recipient, scholarshipTitle string) {
	subject := "Application received: " + scholarshipTitle
	body := fmt.Sprintf(
		"Your application for %s has been received and is now locked for review.\n\nApplication reference: %s\n",
		scholarshipTitle, applicationID)
	m.send(db, applicationID, recipient, subject, body)
}

// NotifyStatusChanged emails the applicant after an admin transition or
// reopen.
func (m *Mailer) NotifyStatusChanged(db *sql.DB, applicationID, recipient, scholarshipTitle string, to models.ApplicationStatus) {
	subject := fmt.Sprintf("Application update: %s", scholarshipTitle)
	body := fmt.Sprintf(
		"The status of your application for %s has changed to %s.\n\nApplication reference: %s\n",
		scholarshipTitle, to, applicationID)
	m.send(db, applicationID, recipient, subject, body)
}

func (m *Mailer) send(db *sql.DB, applicationID, recipient, subject, body string) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", recipient)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	entry := &models.EmailLog{
		ApplicationID: &applicationID,
		Recipient:     recipient,
		Subject:       subject,
		Status:        models.EmailSent,
	}
	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("Failed to send email to %s: %v", recipient, err)
		entry.Status = models.EmailFailed
		entry.ErrorMessage = err.Error()
	}
	if err := database.InsertEmailLog(db, entry); err != nil {
		log.Printf("Failed to record email log for %s: %v", recipient, err)
	}
}
