// Copyright (c) 2026 TrendHive. All rights reserved.

package mail

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendhive/trendhive/internal/platform/ctxutil"
)

// collectingHandler records every log entry it receives.
type collectingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *collectingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *collectingHandler) Handle(_ context.Context, record slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
	return nil
}

func (h *collectingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *collectingHandler) WithGroup(string) slog.Handler { return h }

func (h *collectingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.records))
	for _, record := range h.records {
		out = append(out, record.Message)
	}
	return out
}

func TestSendAsync_FailureLogsThroughRequestLogger(t *testing.T) {
	requestLog := &collectingHandler{}
	fallbackLog := &collectingHandler{}

	// Port 1 is never listening, so delivery fails fast.
	sender := NewSMTPSender("127.0.0.1", 1, "", "", "noreply@trendhive.example", slog.New(fallbackLog))

	ctx := ctxutil.WithLogger(context.Background(), slog.New(requestLog))
	sender.SendAsync(ctx, Message{To: "dana@example.com", Subject: "Hi"})

	require.Eventually(t, func() bool {
		return len(requestLog.messages()) > 0
	}, 5*time.Second, 10*time.Millisecond)

	assert.Contains(t, requestLog.messages(), "mail_delivery_failed")
	assert.Empty(t, fallbackLog.messages())
}

func TestBuildMIMEPayload(t *testing.T) {
	payload := string(buildMIMEPayload("noreply@trendhive.example", Message{
		To:       "dana@example.com",
		Subject:  "Welcome",
		HTMLBody: "<p>Hello</p>",
	}))

	assert.Contains(t, payload, "From: noreply@trendhive.example\r\n")
	assert.Contains(t, payload, "To: dana@example.com\r\n")
	assert.Contains(t, payload, "Subject: Welcome\r\n")
	assert.Contains(t, payload, "Content-Type: text/html")
	assert.Contains(t, payload, "\r\n\r\n<p>Hello</p>")
}
