// Package notification provides alert delivery to external channels
// (Telegram, webhooks) for trend-change events.
package notification

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ranjananubhav7/algobot/internal/model"
)

// AlertLevel represents the severity of an alert.
type AlertLevel string

const (
	AlertInfo     AlertLevel = "INFO"
	AlertWarning  AlertLevel = "WARNING"
	AlertCritical AlertLevel = "CRITICAL"
)

// Alert represents a notification to be sent.
type Alert struct {
	Level   AlertLevel `json:"level"`
	Title   string     `json:"title"`
	Message string     `json:"message"`
}

// TrendAlert builds the alert sent when a strategy changes classification.
func TrendAlert(strategyName, symbol string, from, to model.Trend, ts time.Time) Alert {
	return Alert{
		Level: AlertInfo,
		Title: fmt.Sprintf("%s: %s %s", symbol, strategyName, to),
		Message: fmt.Sprintf("%s switched from %s to %s at %s",
			strategyName, from, to, ts.UTC().Format(time.RFC3339)),
	}
}

// Notifier is the interface for all notification backends.
type Notifier interface {
	// Send delivers an alert. Returns error if delivery fails.
	Send(ctx context.Context, alert Alert) error
}

// LogNotifier is a simple notifier that logs alerts (useful for development).
type LogNotifier struct{}

// NewLogNotifier creates a log-based notifier.
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Send(ctx context.Context, alert Alert) error {
	log.Printf("[notify] [%s] %s: %s", alert.Level, alert.Title, alert.Message)
	return nil
}

// Multi fans an alert out to several backends; delivery failures are logged
// but do not block the remaining backends.
type Multi struct {
	notifiers []Notifier
}

// NewMulti creates a fan-out notifier.
func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers}
}

func (m *Multi) Send(ctx context.Context, alert Alert) error {
	for _, n := range m.notifiers {
		if err := n.Send(ctx, alert); err != nil {
			log.Printf("[notify] delivery failed: %v", err)
		}
	}
	return nil
}
