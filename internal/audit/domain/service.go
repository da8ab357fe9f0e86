package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type Service interface {
	Record(ctx context.Context, customerID snowflake.ID, agentID *snowflake.ID, action, detail string) error
	ListForCustomer(ctx context.Context, customerID snowflake.ID) ([]EntryWithAgent, error)
}

var (
	ErrInvalidAction   = errors.New("invalid_action")
	ErrInvalidCustomer = errors.New("invalid_customer")
)
