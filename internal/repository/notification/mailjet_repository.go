package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"myStarCompanion/pkg/config"
	"myStarCompanion/pkg/logger"
	"net/http"
	"time"

	"github.com/pobyzaarif/goshortcute"
)

type MailjetRepository struct {
	cfg    config.MailjetConfig
	client *http.Client
}

func NewMailjetRepository(cfg config.MailjetConfig) *MailjetRepository {
	return &MailjetRepository{
		cfg:    cfg,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type mailjetAddress struct {
	Email string `json:"Email"`
	Name  string `json:"Name"`
}

type mailjetMessage struct {
	From     mailjetAddress   `json:"From"`
	To       []mailjetAddress `json:"To"`
	Subject  string           `json:"Subject"`
	TextPart string           `json:"TextPart"`
	HTMLPart string           `json:"HTMLPart"`
}

type mailjetPayload struct {
	Messages []mailjetMessage `json:"Messages"`
}

// SendEmail delivers a single message through the Mailjet v3.1 send API.
func (r *MailjetRepository) SendEmail(toName, toEmail, subject, message string) error {
	payload := mailjetPayload{
		Messages: []mailjetMessage{{
			From: mailjetAddress{
				Email: r.cfg.MailjetSenderEmail,
				Name:  r.cfg.MailjetSenderName,
			},
			To:       []mailjetAddress{{Email: toEmail, Name: toName}},
			Subject:  subject,
			TextPart: message,
			HTMLPart: message,
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal json payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.cfg.MailjetBaseUrl+"/v3.1/send", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build mailjet request: %w", err)
	}

	basicAuth := goshortcute.StringtoBase64Encode(r.cfg.MailjetBasicAuthUsername + ":" + r.cfg.MailjetBasicAuthPassword)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Authorization", "Basic "+basicAuth)

	res, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call mailjet: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 200 && res.StatusCode <= 299 {
		return nil
	}

	resBody, _ := io.ReadAll(res.Body)
	logger.Warn("Mailjet rejected message", "status", res.StatusCode, "body", string(resBody))

	return fmt.Errorf("mailer service return negative response %v", res.StatusCode)
}
