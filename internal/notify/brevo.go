package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBrevoURL is the Brevo transactional email endpoint.
const DefaultBrevoURL = "https://api.brevo.com/v3/smtp/email"

// BrevoSender posts emails to the Brevo (ex-Sendinblue) transactional API.
type BrevoSender struct {
	apiKey      string
	senderEmail string
	senderName  string
	baseURL     string
	client      *http.Client
}

// NewBrevoSender constructs a BrevoSender. baseURL is normally
// DefaultBrevoURL; tests point it at an httptest server.
func NewBrevoSender(apiKey, senderEmail, senderName, baseURL string) *BrevoSender {
	if baseURL == "" {
		baseURL = DefaultBrevoURL
	}
	return &BrevoSender{
		apiKey:      apiKey,
		senderEmail: senderEmail,
		senderName:  senderName,
		baseURL:     baseURL,
		client:      &http.Client{Timeout: 10 * time.Second},
	}
}

// brevoRequest is the subset of Brevo's send-email payload this service uses.
type brevoRequest struct {
	Sender      brevoAddress   `json:"sender"`
	To          []brevoAddress `json:"to"`
	Subject     string         `json:"subject"`
	HTMLContent string         `json:"htmlContent"`
}

type brevoAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Send posts one email to the Brevo API. Any non-2xx response is an error;
// the caller decides whether to swallow it.
func (s *BrevoSender) Send(ctx context.Context, email Email) error {
	payload := brevoRequest{
		Sender:      brevoAddress{Email: s.senderEmail, Name: s.senderName},
		To:          []brevoAddress{{Email: email.To, Name: email.ToName}},
		Subject:     email.Subject,
		HTMLContent: email.HTMLContent,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("notify.BrevoSender.Send: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("notify.BrevoSender.Send: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("api-key", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("notify.BrevoSender.Send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Brevo returns a JSON error body; keep a short prefix for the log line.
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("notify.BrevoSender.Send: status %d: %s", resp.StatusCode, detail)
	}
	return nil
}
