package domain

import (
	"time"

	customerdomain "github.com/aventcrm/relance/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
)

const (
	StatusScheduled = "scheduled"
	StatusDone      = "done"
)

type FollowUp struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	CustomerID  snowflake.ID `gorm:"not null;index" json:"customer_id"`
	TargetDate  time.Time    `gorm:"not null;index" json:"target_date"`
	Kind        string       `json:"kind,omitempty"`
	Priority    Priority     `gorm:"not null;default:medium" json:"priority"`
	Status      string       `gorm:"not null;default:scheduled;index" json:"status"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	Outcome     string       `json:"outcome,omitempty"`

	Customer customerdomain.Customer `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// TargetDateText renders the target date in the DD/MM/YYYY contract.
func (f FollowUp) TargetDateText() string {
	return FormatDate(f.TargetDate)
}

// FollowUpWithCustomer joins the owning customer's name onto a
// follow-up for listing and digest views.
type FollowUpWithCustomer struct {
	FollowUp
	CustomerName string `json:"customer_name"`
}
