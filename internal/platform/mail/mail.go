// Copyright (c) 2026 TrendHive. All rights reserved.

/*
Package mail implements outbound transactional email delivery over SMTP.

# Architecture

Delivery is strictly fire-and-forget: account flows (registration, password
reset, contact receipts) enqueue a message via [Sender.SendAsync] and return
immediately. A failed delivery is logged and dropped, never surfaced to the
HTTP request that triggered it. A broken mail server must not block signups.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/trendhive/trendhive/internal/platform/ctxutil"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	// HTMLBody is the rendered message body.
	HTMLBody string
}

// Sender delivers transactional email.
type Sender interface {
	// Send delivers the message synchronously. Used by tests and batch jobs.
	Send(ctx context.Context, message Message) error

	// SendAsync delivers the message on a background goroutine and logs
	// any failure instead of returning it.
	SendAsync(ctx context.Context, message Message)
}

// SMTPSender delivers mail through a plain-auth SMTP relay.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// NewSMTPSender builds a sender for the given relay.
func NewSMTPSender(host string, port int, username, password, from string, logger *slog.Logger) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// Send delivers a single message through the relay.
func (sender *SMTPSender) Send(_ context.Context, message Message) error {
	auth := smtp.PlainAuth("", sender.username, sender.password, sender.host)

	payload := buildMIMEPayload(sender.from, message)

	err := smtp.SendMail(
		fmt.Sprintf("%s:%d", sender.host, sender.port),
		auth,
		sender.from,
		[]string{message.To},
		payload,
	)
	if err != nil {
		return fmt.Errorf("mail: delivery to %s failed: %w", message.To, err)
	}

	return nil
}

// SendAsync delivers the message in the background.
//
// The passed context is only used for log correlation; delivery continues
// even after the originating request finishes.
func (sender *SMTPSender) SendAsync(ctx context.Context, message Message) {
	requestLogger := ctxutil.GetLogger(ctx)
	go func() {
		if err := sender.Send(context.Background(), message); err != nil {
			requestLogger.Error("mail_delivery_failed",
				slog.String("to", message.To),
				slog.String("subject", message.Subject),
				slog.Any("error", err),
			)
			return
		}

		requestLogger.Info("mail_delivered",
			slog.String("to", message.To),
			slog.String("subject", message.Subject),
		)
	}()
}

// buildMIMEPayload assembles the raw RFC 5322 message bytes.
func buildMIMEPayload(from string, message Message) []byte {
	var builder strings.Builder

	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + message.To + "\r\n")
	builder.WriteString("Subject: " + message.Subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(message.HTMLBody)

	return []byte(builder.String())
}

// NoopSender discards all messages. Used when SMTP is not configured
// (local development) so account flows still work end to end.
type NoopSender struct {
	logger *slog.Logger
}

// NewNoopSender builds a sender that only logs.
func NewNoopSender(logger *slog.Logger) *NoopSender {
	return &NoopSender{logger: logger}
}

// Send logs the message instead of delivering it.
func (sender *NoopSender) Send(_ context.Context, message Message) error {
	sender.logger.Info("mail_skipped_no_smtp",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
	)
	return nil
}

// SendAsync logs the message instead of delivering it.
func (sender *NoopSender) SendAsync(ctx context.Context, message Message) {
	_ = sender.Send(ctx, message)
}
