package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, followUp *FollowUp) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*FollowUp, error)
	// ListDueOn returns scheduled follow-ups targeting exactly day, in
	// insertion order.
	ListDueOn(ctx context.Context, db *gorm.DB, day time.Time) ([]*FollowUpWithCustomer, error)
	// ListBefore returns scheduled follow-ups strictly before day,
	// oldest target first.
	ListBefore(ctx context.Context, db *gorm.DB, day time.Time) ([]*FollowUpWithCustomer, error)
	// ListBetween returns scheduled follow-ups with from <= target <= to,
	// target ascending.
	ListBetween(ctx context.Context, db *gorm.DB, from, to time.Time) ([]*FollowUpWithCustomer, error)
	Complete(ctx context.Context, db *gorm.DB, id snowflake.ID, completedAt time.Time, outcome, notes string) error
	ListForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*FollowUp, error)
}
