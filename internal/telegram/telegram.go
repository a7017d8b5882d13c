package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"civicfund-go/internal/model"
)

const defaultAPIBase = "https://api.telegram.org"

// Sender announces project activity in a Telegram chat. Messages are queued
// and delivered by a single worker at no more than one per minInterval.
type Sender struct {
	token    string
	chat     string
	threadID *int
	apiBase  string
	siteURL  string

	client       *http.Client
	queue        chan string
	minInterval  time.Duration
	lastSentTime time.Time
	done         chan struct{}
}

type Option func(*Sender)

func WithAPIBase(base string) Option {
	return func(s *Sender) {
		s.apiBase = strings.TrimSuffix(base, "/")
	}
}

func WithSiteURL(url string) Option {
	return func(s *Sender) {
		s.siteURL = strings.TrimSuffix(url, "/")
	}
}

func WithMinInterval(d time.Duration) Option {
	return func(s *Sender) {
		s.minInterval = d
	}
}

func NewSender(token, chat string, threadID *int, options ...Option) *Sender {
	s := &Sender{
		token:       token,
		chat:        chat,
		threadID:    threadID,
		apiBase:     defaultAPIBase,
		client:      &http.Client{Timeout: 15 * time.Second},
		queue:       make(chan string, 100),
		minInterval: 1200 * time.Millisecond,
		done:        make(chan struct{}),
	}
	for _, option := range options {
		option(s)
	}

	go s.worker()
	return s
}

// Notify queues an announcement for the event. Votes are not announced.
func (s *Sender) Notify(ctx context.Context, event model.Event) error {
	if event.Action != model.ActionContribute {
		return nil
	}
	for _, part := range splitMessage(s.formatMessage(event), 4096) {
		select {
		case s.queue <- part:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Close stops accepting messages and waits for the queue to drain.
func (s *Sender) Close() {
	close(s.queue)
	<-s.done
}

func (s *Sender) worker() {
	defer close(s.done)
	for msg := range s.queue {
		s.sendWithRateLimit(msg)
	}
}

func (s *Sender) sendWithRateLimit(text string) {
	wait := time.Until(s.lastSentTime.Add(s.minInterval))
	if wait > 0 {
		time.Sleep(wait)
	}

	retryAfter, err := s.postMessage(text)
	if err != nil {
		if retryAfter > 0 {
			zap.L().Warn("telegram rate limit hit", zap.Duration("retry_after", retryAfter))
			time.Sleep(retryAfter)
			if _, retryErr := s.postMessage(text); retryErr != nil {
				zap.L().Error("telegram retry failed", zap.Error(retryErr))
				return
			}
			s.lastSentTime = time.Now()
			zap.L().Info("telegram announcement sent after retry")
			return
		}

		zap.L().Error("telegram send error", zap.Error(err))
		return
	}

	s.lastSentTime = time.Now()
	zap.L().Debug("telegram announcement sent")
}

func (s *Sender) postMessage(text string) (time.Duration, error) {
	payload := map[string]any{
		"chat_id":    s.chat,
		"text":       text,
		"parse_mode": "HTML",
	}
	if s.threadID != nil {
		payload["message_thread_id"] = *s.threadID
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/bot%s/sendMessage", s.apiBase, s.token), bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var parsed telegramResponse
	_ = json.NewDecoder(resp.Body).Decode(&parsed)

	if resp.StatusCode == http.StatusTooManyRequests && parsed.Parameters.RetryAfter > 0 {
		return time.Duration(parsed.Parameters.RetryAfter) * time.Second, fmt.Errorf("rate limited")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("telegram error: %d %s", resp.StatusCode, parsed.Description)
	}

	return 0, nil
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

func (s *Sender) formatMessage(event model.Event) string {
	p := event.Project
	message := fmt.Sprintf("💶 Nueva aportación de %s\n📢 %s\n🏷 %s · %s\n",
		model.FormatEuros(event.Amount), escapeHTML(p.Name), escapeHTML(p.Category), p.Status.Label())
	message += fmt.Sprintf("📊 %s (%d%%)\n", model.FormatFunding(p.Raised, p.Budget), p.Progress())
	message += fmt.Sprintf("👥 %d contribuyentes", p.Contributors)
	if model.FullyFunded(p.Raised, p.Budget) {
		message += "\n🎉 ¡Objetivo de financiación alcanzado!"
	}
	if s.siteURL != "" {
		message += fmt.Sprintf("\n🔗 %s/proyectos/%s", s.siteURL, p.ID)
	}
	return message
}

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

func splitMessage(message string, limit int) []string {
	runes := []rune(message)
	if len(runes) <= limit {
		return []string{message}
	}

	parts := []string{}
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
