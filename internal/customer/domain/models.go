package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

const (
	StatusInProgress = "in_progress"
	StatusConverted  = "converted"
	StatusLost       = "lost"
)

// ValidStatus reports whether value is one of the customer statuses.
func ValidStatus(value string) bool {
	switch value {
	case StatusInProgress, StatusConverted, StatusLost:
		return true
	default:
		return false
	}
}

type Customer struct {
	ID          snowflake.ID  `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"not null" json:"name"`
	Phone       string        `json:"phone,omitempty"`
	Email       string        `json:"email,omitempty"`
	Source      string        `json:"source,omitempty"`
	RequestType string        `json:"request_type,omitempty"`
	Destination string        `json:"destination,omitempty"`
	Status      string        `gorm:"not null;default:in_progress;index" json:"status"`
	AgentID     *snowflake.ID `gorm:"index" json:"agent_id,omitempty"`
	CreatedAt   time.Time     `gorm:"not null" json:"created_at"`
}
