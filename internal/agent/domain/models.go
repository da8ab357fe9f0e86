package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// Agent is an operator identity, keyed by the external chat identity.
type Agent struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	ExternalID int64        `gorm:"uniqueIndex;not null" json:"external_id"`
	Name       string       `json:"name,omitempty"`
	Role       string       `gorm:"not null;default:agent" json:"role"`
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, agent *Agent) error
	FindByExternalID(ctx context.Context, db *gorm.DB, externalID int64) (*Agent, error)
	List(ctx context.Context, db *gorm.DB) ([]*Agent, error)
}

type Service interface {
	// Register upserts the identity; registering an existing external ID
	// returns the stored agent unchanged.
	Register(ctx context.Context, externalID int64, name, role string) (Agent, error)
	Get(ctx context.Context, externalID int64) (Agent, error)
	List(ctx context.Context) ([]Agent, error)
}

var (
	ErrInvalidExternalID = errors.New("invalid_external_id")
	ErrInvalidRole       = errors.New("invalid_role")
	ErrNotFound          = errors.New("not_found")
)
