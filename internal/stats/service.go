package stats

import (
	"context"
	"time"

	"github.com/aventcrm/relance/internal/clock"
	customerdomain "github.com/aventcrm/relance/internal/customer/domain"
	followupdomain "github.com/aventcrm/relance/internal/followup/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Overview is the operator dashboard snapshot.
type Overview struct {
	ConvertedThisMonth int64 `json:"converted_this_month"`
	InProgress         int64 `json:"in_progress"`
	OverdueFollowUps   int64 `json:"overdue_follow_ups"`
	DueTodayFollowUps  int64 `json:"due_today_follow_ups"`
}

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Clock clock.Clock
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	clock clock.Clock
}

var Module = fx.Module("stats",
	fx.Provide(New),
)

func New(p Params) *Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("stats.service"),
		clock: p.Clock,
	}
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	now := s.clock.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	today := followupdomain.DateOf(now)

	var out Overview

	err := s.db.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Where("status = ? AND created_at >= ?", customerdomain.StatusConverted, monthStart).
		Count(&out.ConvertedThisMonth).Error
	if err != nil {
		return Overview{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&customerdomain.Customer{}).
		Where("status = ?", customerdomain.StatusInProgress).
		Count(&out.InProgress).Error
	if err != nil {
		return Overview{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&followupdomain.FollowUp{}).
		Where("target_date < ? AND status = ?", today, followupdomain.StatusScheduled).
		Count(&out.OverdueFollowUps).Error
	if err != nil {
		return Overview{}, err
	}

	err = s.db.WithContext(ctx).
		Model(&followupdomain.FollowUp{}).
		Where("target_date = ? AND status = ?", today, followupdomain.StatusScheduled).
		Count(&out.DueTodayFollowUps).Error
	if err != nil {
		return Overview{}, err
	}

	return out, nil
}
