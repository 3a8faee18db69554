package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContactForm is the HTMX contact form payload.
type ContactForm struct {
	Name    string `form:"fullName" binding:"required,max=100"`
	Email   string `form:"email" binding:"required,email,max=254"`
	Message string `form:"message" binding:"required,max=5000"`
}

// ContactMessage is a stored contact form submission.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	HashedIP  string    `json:"hashed_ip"`
	Delivered bool      `json:"delivered"`
	CreatedAt time.Time `json:"created_at"`
}

type smtpConfig struct {
	Host, Port, User, Pass, To string
}

var errSMTPNotConfigured = errors.New("SMTP credentials not configured")

// sendMail is swapped out in tests.
var sendMail = smtp.SendMail

func smtpConfigFromEnv() smtpConfig {
	cfg := smtpConfig{
		Host: os.Getenv("SMTP_HOST"),
		Port: os.Getenv("SMTP_PORT"),
		User: os.Getenv("SMTP_USER"),
		Pass: os.Getenv("SMTP_PASS"),
		To:   os.Getenv("TO_EMAIL"),
	}
	if cfg.Host == "" {
		cfg.Host = "smtp.gmail.com"
	}
	if cfg.Port == "" {
		cfg.Port = "587"
	}
	if cfg.To == "" {
		cfg.To = cfg.User
	}
	return cfg
}

// headerSafe drops line breaks so form input cannot add mail headers.
func headerSafe(s string) string {
	return strings.NewReplacer("\r", "", "\n", " ").Replace(strings.TrimSpace(s))
}

func composeMessage(cfg smtpConfig, form ContactForm) []byte {
	subject := fmt.Sprintf("Portfolio Contact: %s", headerSafe(form.Name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, form.Name, form.Email, form.Message)

	return []byte("To: " + cfg.To + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + headerSafe(form.Email) + "\r\n" +
		"\r\n" +
		body + "\r\n")
}

func sendContactEmail(cfg smtpConfig, form ContactForm) error {
	if cfg.User == "" || cfg.Pass == "" {
		return errSMTPNotConfigured
	}
	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	if err := sendMail(cfg.Host+":"+cfg.Port, auth, cfg.User, []string{cfg.To}, composeMessage(cfg, form)); err != nil {
		return fmt.Errorf("send mail via %s: %w", cfg.Host, err)
	}
	return nil
}

func saveContactMessage(msg ContactMessage) error {
	if db == nil {
		return errors.New("database not initialised")
	}
	_, err := db.Exec(`
		INSERT INTO messages (id, name, email, message, hashed_ip, delivered, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, msg.ID, msg.Name, msg.Email, msg.Message, msg.HashedIP, msg.Delivered, msg.CreatedAt)
	return err
}

func setupContactRoutes(r *gin.Engine) {
	// Handle contact form submission with HTMX
	r.POST("/contact", func(c *gin.Context) {
		var form ContactForm
		if err := c.ShouldBind(&form); err != nil {
			log.Printf("Rejected contact form: %v", err)
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Please provide your name, a valid email address and a message.",
			})
			return
		}

		msg := ContactMessage{
			ID:        uuid.NewString(),
			Name:      strings.TrimSpace(form.Name),
			Email:     strings.TrimSpace(form.Email),
			Message:   form.Message,
			HashedIP:  hashIP(c.ClientIP()),
			CreatedAt: time.Now().UTC(),
		}

		mailErr := sendContactEmail(smtpConfigFromEnv(), form)
		if mailErr != nil {
			log.Printf("Error sending email: %v", mailErr)
		} else {
			msg.Delivered = true
			log.Printf("Email sent successfully for message %s", msg.ID)
		}

		storeErr := saveContactMessage(msg)
		if storeErr != nil {
			log.Printf("Error storing message %s: %v", msg.ID, storeErr)
		}

		if mailErr != nil && storeErr != nil {
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error": "Sorry, there was an error sending your message. Please try again later.",
			})
			return
		}

		c.HTML(http.StatusOK, "contact-success.html", gin.H{
			"success": "Thank you for your message! I'll get back to you soon.",
		})
	})
}
