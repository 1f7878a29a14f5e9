package entity

import "time"

// Alert is raised locally by the threshold rules over a fraud batch.
type Alert struct {
	ID          string    `json:"id"`
	Type        AlertType `json:"type"`
	Severity    Severity  `json:"severity"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	Count       int       `json:"count"`
	TotalAmount *float64  `json:"totalAmount,omitempty"`
}

// Notification is the transient banner raised when the overall risk level changes.
type Notification struct {
	From      RiskLevel `json:"from"`
	To        RiskLevel `json:"to"`
	RaisedAt  time.Time `json:"raisedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// RiskEvent is published whenever the overall risk level changes.
type RiskEvent struct {
	EventID   string    `json:"eventId"`
	From      RiskLevel `json:"from"`
	To        RiskLevel `json:"to"`
	Alerts    []Alert   `json:"alerts"`
	Timestamp time.Time `json:"timestamp"`
}
