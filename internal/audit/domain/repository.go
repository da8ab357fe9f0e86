package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, entry *AuditEntry) error
	ListForCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]*EntryWithAgent, error)
}
