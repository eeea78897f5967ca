package sender

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// LogSender writes mail to the log instead of delivering it. Used when no
// SMTP credentials are configured.
type LogSender struct{}

func NewLogSender() *LogSender { return &LogSender{} }

func (s *LogSender) SendEmail(ctx context.Context, to, subject, body string) (SendResult, error) {
	zap.L().Info("Email (mock)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return SendResult{
		MessageID: fmt.Sprintf("mock-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}
