package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type CreateCustomerRequest struct {
	Name        string
	Phone       string
	Email       string
	Source      string
	RequestType string
	Destination string
	AgentID     *snowflake.ID
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	GetByID(ctx context.Context, id snowflake.ID) (Customer, error)
	// Search matches the query as a substring of name, phone or email.
	Search(ctx context.Context, query string) ([]Customer, error)
	ListByStatus(ctx context.Context, status string) ([]Customer, error)
	UpdateStatus(ctx context.Context, id snowflake.ID, status string) error
}

var (
	ErrInvalidName   = errors.New("invalid_name")
	ErrInvalidStatus = errors.New("invalid_status")
	ErrNotFound      = errors.New("not_found")
)
