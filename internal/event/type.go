package event

const AlertQueue string = "push_alert_events"

type AlertEvent struct {
	ID         string         `json:"id"`
	EventType  AlertEventType `json:"event_type"`
	CropID     string         `json:"crop_id"`
	AlertID    string         `json:"alert_id"`
	Severity   string         `json:"severity"`
	Additional map[string]any `json:"additional"`
}

type AlertEventType string

const (
	AlertRaised   AlertEventType = "alert_raised"
	AlertResolved AlertEventType = "alert_resolved"
)
