// Package notify pushes run summaries to external sinks: a Telegram chat
// and a GitHub portfolio README. Both are best-effort consumers of the
// final lead collection; nothing flows back into the pipeline.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/law-makers/leadgen/pkg/models"
)

const telegramAPIBase = "https://api.telegram.org"

// Telegram sends a run summary message to a configured chat.
type Telegram struct {
	client  *http.Client
	baseURL string
	token   string
	chatID  string
	log     zerolog.Logger
}

func NewTelegram(client *http.Client, token, chatID string, logger zerolog.Logger) *Telegram {
	return &Telegram{
		client:  client,
		baseURL: telegramAPIBase,
		token:   token,
		chatID:  chatID,
		log:     logger.With().Str("component", "telegram").Logger(),
	}
}

// Enabled reports whether the sink has credentials to work with.
func (t *Telegram) Enabled() bool {
	return t.token != "" && t.chatID != ""
}

// SendSummary posts the run summary. Missing credentials or an empty run
// skip silently; delivery failures are returned to the caller for
// logging only.
func (t *Telegram) SendSummary(ctx context.Context, leads []*models.Lead) error {
	if !t.Enabled() || len(leads) == 0 {
		t.log.Debug().Msg("Telegram sink disabled or nothing to report")
		return nil
	}

	text := fmt.Sprintf("*Lead Generation Run Complete*\n\n- Leads Found: %d\n- Top Lead: %s (Score: %d)",
		len(leads), leads[0].CompanyName, leads[0].QualityScore)

	payload, err := json.Marshal(map[string]string{
		"chat_id":    t.chatID,
		"text":       text,
		"parse_mode": "Markdown",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram send: unexpected status %d", resp.StatusCode)
	}

	t.log.Info().Int("leads", len(leads)).Msg("Telegram summary sent")
	return nil
}
