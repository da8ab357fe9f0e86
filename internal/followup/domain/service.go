package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type ScheduleDirectRequest struct {
	CustomerID snowflake.ID
	// TargetDate in DD/MM/YYYY text.
	TargetDate string
	Kind       string
	Notes      string
	AgentID    *snowflake.ID
}

type ScheduleBeforeRequest struct {
	CustomerID snowflake.ID
	DaysBefore int
	// ReferenceDate in DD/MM/YYYY text; the follow-up lands DaysBefore
	// days earlier.
	ReferenceDate string
	Notes         string
	AgentID       *snowflake.ID
}

type Service interface {
	ScheduleDirect(context.Context, ScheduleDirectRequest) (FollowUp, error)
	ScheduleBeforeDate(context.Context, ScheduleBeforeRequest) (FollowUp, error)
	DueToday(ctx context.Context) ([]FollowUpWithCustomer, error)
	Overdue(ctx context.Context) ([]FollowUpWithCustomer, error)
	Upcoming(ctx context.Context, windowDays int) ([]FollowUpWithCustomer, error)
	Complete(ctx context.Context, id snowflake.ID, outcome, notes string) (FollowUp, error)
	ListForCustomer(ctx context.Context, customerID snowflake.ID) ([]FollowUp, error)
}

var (
	ErrInvalidDate       = errors.New("invalid_date")
	ErrInvalidDaysBefore = errors.New("invalid_days_before")
	ErrInvalidWindow     = errors.New("invalid_window")
	ErrCustomerNotFound  = errors.New("customer_not_found")
	ErrNotFound          = errors.New("not_found")
)
