package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	Search(ctx context.Context, db *gorm.DB, query string) ([]*Customer, error)
	ListByStatus(ctx context.Context, db *gorm.DB, status string) ([]*Customer, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status string) error
}
