// Package mail delivers transactional email (OTP codes, hire confirmations)
// through an asynq queue so HTTP requests never wait on the mail provider.
package mail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Mailer sends one message. Implementations must be safe for concurrent use.
type Mailer interface {
	Send(to, subject, body string) error
}

// HTTPMailer posts messages to a Plunk-compatible send endpoint.
type HTTPMailer struct {
	APIKey string
	From   string
	APIURL string
	Client *http.Client
}

func NewHTTPMailer(apiKey, from, apiURL string) *HTTPMailer {
	return &HTTPMailer{
		APIKey: apiKey,
		From:   from,
		APIURL: apiURL,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

type sendBody struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	From    string `json:"from,omitempty"`
}

func (m *HTTPMailer) Send(to, subject, body string) error {
	payload, err := json.Marshal(sendBody{To: to, Subject: subject, Body: body, From: m.From})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, m.APIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.APIKey)

	resp, err := m.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail api returned %d: %s", resp.StatusCode, raw)
	}
	return nil
}

// LogMailer writes messages to the log instead of sending them. Used in
// dev when no mail API key is configured.
type LogMailer struct{}

func (LogMailer) Send(to, subject, body string) error {
	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("mail (log only): " + body)
	return nil
}
