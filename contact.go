package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/mail"
	"net/smtp"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/knightofkalki/portfolio/internal/store"
)

const maxMessageLength = 5000

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

// mailer relays a contact message to the site owner.
type mailer interface {
	Send(m store.Message) error
}

type smtpMailer struct {
	host, port string
	user, pass string
	to         string
}

// Email configuration comes from environment variables.
func smtpMailerFromEnv() *smtpMailer {
	m := &smtpMailer{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
		to:   os.Getenv("TO_EMAIL"),
	}
	if m.host == "" {
		m.host = "smtp.gmail.com"
	}
	if m.port == "" {
		m.port = "587"
	}
	if m.to == "" {
		m.to = m.user
	}
	return m
}

func (m *smtpMailer) Send(msg store.Message) error {
	if m.user == "" || m.pass == "" {
		return errSMTPNotConfigured
	}

	subject := fmt.Sprintf("Portfolio Contact: %s", msg.Name)
	if msg.Subject != "" {
		subject += " - " + msg.Subject
	}
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, msg.Name, msg.Email, msg.Subject, msg.Body)

	raw := []byte("To: " + m.to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + m.user + "\r\n" +
		"Reply-To: " + msg.Email + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.user, []string{m.to}, raw)
}

// contactForm mirrors the fields of the contact section.
type contactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// problem returns a message for the visitor if the form cannot be
// accepted, or "" if it can.
func (f contactForm) problem() string {
	switch {
	case f.Name == "":
		return "Please tell me your name."
	case f.Email == "":
		return "Please provide an email address."
	case f.Message == "":
		return "Please write a message."
	case len(f.Message) > maxMessageLength:
		return fmt.Sprintf("Messages are limited to %d characters.", maxMessageLength)
	case strings.ContainsAny(f.Name+f.Email+f.Subject, "\r\n"):
		return "Name, email and subject must be a single line."
	}
	if _, err := mail.ParseAddress(f.Email); err != nil {
		return "Please provide a valid email address."
	}
	return ""
}

// Handle contact form submission with HTMX
func (a *app) handleContact(c *gin.Context) {
	form := contactForm{
		Name:    strings.TrimSpace(c.PostForm("name")),
		Email:   strings.TrimSpace(c.PostForm("email")),
		Subject: strings.TrimSpace(c.PostForm("subject")),
		Message: strings.TrimSpace(c.PostForm("message")),
	}
	if problem := form.problem(); problem != "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": problem,
		})
		return
	}

	msg, err := a.store.SaveMessage(c.Request.Context(), store.Message{
		Name:    form.Name,
		Email:   form.Email,
		Subject: form.Subject,
		Body:    form.Message,
	})
	if err != nil {
		log.Printf("Error saving contact message: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	// The message is stored, so a relay failure is only logged; the
	// admin messages page shows it as undelivered.
	if err := a.mailer.Send(msg); err != nil {
		log.Printf("Error sending email for message %s: %v", msg.ID, err)
	} else if err := a.store.MarkDelivered(c.Request.Context(), msg.ID); err != nil {
		log.Printf("Error marking message %s delivered: %v", msg.ID, err)
	} else {
		log.Printf("Email sent successfully for message %s", msg.ID)
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
