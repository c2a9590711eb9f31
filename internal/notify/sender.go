package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type Sender interface {
	Send(ctx context.Context, phone string, text string) error
	ProviderID() string
}

// WhatsAppSender talks to an Evolution API instance.
type WhatsAppSender struct {
	baseURL  string
	instance string
	apiKey   string
	http     *http.Client
}

func NewWhatsAppSender(baseURL, instance, apiKey string) *WhatsAppSender {
	return &WhatsAppSender{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		instance: strings.TrimSpace(instance),
		apiKey:   strings.TrimSpace(apiKey),
		http: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func (s *WhatsAppSender) ProviderID() string {
	return "whatsapp-evolution"
}

func (s *WhatsAppSender) Send(ctx context.Context, phone string, text string) error {
	if s.baseURL == "" || s.instance == "" {
		return fmt.Errorf("whatsapp sender not configured")
	}

	number := FormatPhone(phone)
	if number == "" {
		return fmt.Errorf("whatsapp: empty phone number")
	}

	raw, err := json.Marshal(map[string]string{
		"number": number,
		"text":   text,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/message/sendText/%s", s.baseURL, s.instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp send: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// FormatPhone keeps digits only and prefixes the Brazilian country code.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}
	// already international: 55 + DDD + 8/9 digits
	if strings.HasPrefix(digits, "55") && len(digits) >= 12 {
		return digits
	}
	return "55" + digits
}

type NoopSender struct{}

func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

func (s *NoopSender) ProviderID() string {
	return "whatsapp-noop"
}

func (s *NoopSender) Send(_ context.Context, _ string, _ string) error {
	return nil
}
