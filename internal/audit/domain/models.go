package domain

import (
	"time"

	customerdomain "github.com/aventcrm/relance/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
)

// AuditEntry is an append-only trace of what happened to a customer.
// Entries are never mutated; they only disappear with their customer.
type AuditEntry struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	CustomerID snowflake.ID  `gorm:"not null;index" json:"customer_id"`
	AgentID    *snowflake.ID `json:"agent_id,omitempty"`
	Action     string        `gorm:"not null" json:"action"`
	Detail     string        `json:"detail,omitempty"`
	CreatedAt  time.Time     `gorm:"not null" json:"created_at"`

	Customer customerdomain.Customer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// EntryWithAgent joins the acting agent's display name onto an entry.
type EntryWithAgent struct {
	AuditEntry
	AgentName string `json:"agent_name,omitempty"`
}
