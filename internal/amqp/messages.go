package amqp

import (
	"encoding/json"
	"time"

	"finadvisor/internal/core"
)

// AlertMessage is the wire form of a triggered alert. Period names the
// reporting window the alert was computed for.
type AlertMessage struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Period    string    `json:"period"`
	Timestamp time.Time `json:"timestamp"`
}

// NewAlertMessage wraps a core alert for publishing.
func NewAlertMessage(a core.Alert, period string) *AlertMessage {
	return &AlertMessage{
		Type:      string(a.Type),
		Severity:  string(a.Severity),
		Message:   a.Message,
		Period:    period,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *AlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// AlertMessageFromJSON decodes a published alert.
func AlertMessageFromJSON(data []byte) (*AlertMessage, error) {
	var msg AlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
