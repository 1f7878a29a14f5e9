package entity

import "time"

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type HealthView struct {
	Connectivity Connectivity `json:"connectivity"`
	Status       string       `json:"status,omitempty"`
	Timestamp    string       `json:"timestamp,omitempty"`
	CheckedAt    time.Time    `json:"checkedAt"`
}
