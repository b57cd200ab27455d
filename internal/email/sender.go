package email

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jwemail "github.com/jordan-wright/email"

	"tenderhunt-engine/internal/config"
)

const (
	maxRetries = 3
	retryDelay = 2 * time.Second
)

// Sender delivers tender notifications through the Resend HTTP API, falling
// back to plain SMTP when the API is unreachable or no key is configured.
type Sender struct {
	cfg          config.Email
	client       *resty.Client
	resendKey    string
	smtpPassword string
}

// SendResult records the outcome for one recipient.
type SendResult struct {
	Recipient string `json:"recipient"`
	OK        bool   `json:"ok"`
	Detail    string `json:"detail"`
}

func NewSender(cfg config.Email, resendKey, smtpPassword string) *Sender {
	return &Sender{
		cfg:          cfg,
		client:       resty.New().SetTimeout(30 * time.Second),
		resendKey:    resendKey,
		smtpPassword: smtpPassword,
	}
}

// Send delivers the message to every configured recipient and returns a
// per-recipient summary. One failed recipient never aborts the rest.
func (s *Sender) Send(subject, body, proposal string) []SendResult {
	results := make([]SendResult, 0, len(s.cfg.Recipients))
	for _, recipient := range s.cfg.Recipients {
		detail, err := s.sendOne(recipient, subject, body, proposal)
		if err != nil {
			log.Printf("[email] send to %s failed: %v", recipient, err)
			results = append(results, SendResult{Recipient: recipient, OK: false, Detail: err.Error()})
			continue
		}
		results = append(results, SendResult{Recipient: recipient, OK: true, Detail: detail})
	}

	ok := 0
	for _, r := range results {
		if r.OK {
			ok++
		}
	}
	log.Printf("[email] sending completed: %d successful, %d failed", ok, len(results)-ok)
	return results
}

func (s *Sender) sendOne(to, subject, body, proposal string) (string, error) {
	if s.resendKey != "" {
		detail, err := s.sendViaResend(to, subject, body, proposal)
		if err == nil {
			return detail, nil
		}
		log.Printf("[email] resend failed for %s, trying smtp: %v", to, err)
	}
	return s.sendViaSMTP(to, subject, body, proposal)
}

func (s *Sender) sendViaResend(to, subject, body, proposal string) (string, error) {
	payload := map[string]any{
		"from":    s.cfg.From,
		"to":      []string{to},
		"subject": subject,
		"html":    htmlBody(body, proposal),
		"text":    textBody(body, proposal),
	}
	if len(s.cfg.CC) > 0 {
		payload["cc"] = s.cfg.CC
	}
	if len(s.cfg.BCC) > 0 {
		payload["bcc"] = s.cfg.BCC
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		var result struct {
			ID string `json:"id"`
		}
		res, err := s.client.R().
			SetAuthToken(s.resendKey).
			SetBody(payload).
			SetResult(&result).
			Post(s.cfg.ResendBaseURL + "/emails")
		if err != nil {
			lastErr = err
			continue
		}
		if res.IsError() {
			lastErr = fmt.Errorf("resend api status %d: %s", res.StatusCode(), res.String())
			// 4xx will not heal on retry
			if res.StatusCode() < 500 {
				return "", lastErr
			}
			continue
		}
		return fmt.Sprintf("sent via resend (id: %s)", result.ID), nil
	}
	return "", fmt.Errorf("resend send: %w", lastErr)
}

func (s *Sender) sendViaSMTP(to, subject, body, proposal string) (string, error) {
	smtpCfg := s.cfg.SMTP
	if smtpCfg.Host == "" {
		return "", fmt.Errorf("smtp host not configured")
	}

	m := jwemail.NewEmail()
	m.From = s.cfg.From
	m.To = []string{to}
	m.Cc = s.cfg.CC
	m.Bcc = s.cfg.BCC
	m.Subject = subject
	m.Text = []byte(textBody(body, proposal))
	m.HTML = []byte(htmlBody(body, proposal))

	addr := fmt.Sprintf("%s:%d", smtpCfg.Host, smtpCfg.Port)
	auth := smtp.PlainAuth("", smtpCfg.Username, s.smtpPassword, smtpCfg.Host)
	if err := m.Send(addr, auth); err != nil {
		return "", fmt.Errorf("smtp send: %w", err)
	}
	return "sent via smtp", nil
}

func htmlBody(body, proposal string) string {
	var b strings.Builder
	b.WriteString("<html><body style=\"font-family:Arial,sans-serif;line-height:1.6;color:#333;max-width:800px;margin:0 auto;padding:20px\">")
	b.WriteString("<div style=\"background:#f8f9fa;padding:20px;border-radius:5px;margin-bottom:20px\">")
	b.WriteString("<h1 style=\"color:#007bff\">New Tender Opportunity</h1>")
	fmt.Fprintf(&b, "<p><strong>Generated:</strong> %s</p></div>", time.Now().Format("January 2, 2006 at 3:04 PM"))
	fmt.Fprintf(&b, "<div style=\"padding:20px;border:1px solid #dee2e6;border-radius:5px\">%s</div>",
		strings.ReplaceAll(body, "\n", "<br>"))
	if proposal != "" {
		fmt.Fprintf(&b, "<div style=\"background:#f8f9fa;padding:20px;border-left:4px solid #007bff;margin-top:20px\"><h2>Generated Proposal</h2><pre style=\"white-space:pre-wrap\">%s</pre></div>", proposal)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func textBody(body, proposal string) string {
	if proposal == "" {
		return body
	}
	return body + "\n\n--- Generated Proposal ---\n\n" + proposal
}
