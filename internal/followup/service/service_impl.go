package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	auditdomain "github.com/aventcrm/relance/internal/audit/domain"
	"github.com/aventcrm/relance/internal/clock"
	customerdomain "github.com/aventcrm/relance/internal/customer/domain"
	"github.com/aventcrm/relance/internal/followup/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Repo        domain.Repository
	CustomerSvc customerdomain.Service
	AuditSvc    auditdomain.Service
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	repo        domain.Repository
	customerSvc customerdomain.Service
	auditSvc    auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("followup.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		repo:        p.Repo,
		customerSvc: p.CustomerSvc,
		auditSvc:    p.AuditSvc,
	}
}

func (s *Service) ScheduleDirect(ctx context.Context, req domain.ScheduleDirectRequest) (domain.FollowUp, error) {
	target, err := domain.ParseDate(req.TargetDate)
	if err != nil {
		return domain.FollowUp{}, domain.ErrInvalidDate
	}

	kind := strings.TrimSpace(req.Kind)
	if kind == "" {
		kind = "custom"
	}

	return s.schedule(ctx, req.CustomerID, target, kind, req.Notes, req.AgentID,
		fmt.Sprintf("follow-up scheduled for %s", domain.FormatDate(target)))
}

func (s *Service) ScheduleBeforeDate(ctx context.Context, req domain.ScheduleBeforeRequest) (domain.FollowUp, error) {
	if req.DaysBefore < 0 {
		return domain.FollowUp{}, domain.ErrInvalidDaysBefore
	}
	reference, err := domain.ParseDate(req.ReferenceDate)
	if err != nil {
		return domain.FollowUp{}, domain.ErrInvalidDate
	}

	target := reference.AddDate(0, 0, -req.DaysBefore)
	kind := fmt.Sprintf("%dd before", req.DaysBefore)

	return s.schedule(ctx, req.CustomerID, target, kind, req.Notes, req.AgentID,
		fmt.Sprintf("follow-up scheduled %d days before %s", req.DaysBefore, domain.FormatDate(reference)))
}

// schedule is the single creation path. Priority is derived once here
// from today's date and frozen on the record.
func (s *Service) schedule(ctx context.Context, customerID snowflake.ID, target time.Time, kind, notes string, agentID *snowflake.ID, auditDetail string) (domain.FollowUp, error) {
	if _, err := s.customerSvc.GetByID(ctx, customerID); err != nil {
		if err == customerdomain.ErrNotFound {
			return domain.FollowUp{}, domain.ErrCustomerNotFound
		}
		return domain.FollowUp{}, err
	}

	now := s.clock.Now()
	followUp := domain.FollowUp{
		ID:         s.genID.Generate(),
		CustomerID: customerID,
		TargetDate: domain.DateOf(target),
		Kind:       kind,
		Priority:   domain.Derive(target, now),
		Status:     domain.StatusScheduled,
		Notes:      strings.TrimSpace(notes),
		CreatedAt:  now.UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &followUp); err != nil {
		return domain.FollowUp{}, err
	}

	if err := s.auditSvc.Record(ctx, customerID, agentID, "follow-up added", auditDetail); err != nil {
		s.log.Warn("audit record failed", zap.Error(err))
	}

	return followUp, nil
}

func (s *Service) DueToday(ctx context.Context) ([]domain.FollowUpWithCustomer, error) {
	today := domain.DateOf(s.clock.Now())
	items, err := s.repo.ListDueOn(ctx, s.db, today)
	if err != nil {
		return nil, err
	}

	due := collectJoined(items)
	// Highest urgency first; equal tiers keep insertion order.
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].Priority.Rank() > due[j].Priority.Rank()
	})
	return due, nil
}

func (s *Service) Overdue(ctx context.Context) ([]domain.FollowUpWithCustomer, error) {
	today := domain.DateOf(s.clock.Now())
	items, err := s.repo.ListBefore(ctx, s.db, today)
	if err != nil {
		return nil, err
	}
	return collectJoined(items), nil
}

func (s *Service) Upcoming(ctx context.Context, windowDays int) ([]domain.FollowUpWithCustomer, error) {
	if windowDays < 0 {
		return nil, domain.ErrInvalidWindow
	}
	today := domain.DateOf(s.clock.Now())
	items, err := s.repo.ListBetween(ctx, s.db, today, today.AddDate(0, 0, windowDays))
	if err != nil {
		return nil, err
	}
	return collectJoined(items), nil
}

func (s *Service) Complete(ctx context.Context, id snowflake.ID, outcome, notes string) (domain.FollowUp, error) {
	completedAt := s.clock.Now().UTC()
	err := s.repo.Complete(ctx, s.db, id, completedAt, outcome, notes)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.FollowUp{}, domain.ErrNotFound
		}
		return domain.FollowUp{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.FollowUp{}, err
	}
	if item == nil {
		return domain.FollowUp{}, domain.ErrNotFound
	}

	if err := s.auditSvc.Record(ctx, item.CustomerID, nil, "follow-up completed", outcome); err != nil {
		s.log.Warn("audit record failed", zap.Error(err))
	}
	return *item, nil
}

func (s *Service) ListForCustomer(ctx context.Context, customerID snowflake.ID) ([]domain.FollowUp, error) {
	items, err := s.repo.ListForCustomer(ctx, s.db, customerID)
	if err != nil {
		return nil, err
	}

	followUps := make([]domain.FollowUp, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		followUps = append(followUps, *item)
	}
	return followUps, nil
}

func collectJoined(items []*domain.FollowUpWithCustomer) []domain.FollowUpWithCustomer {
	out := make([]domain.FollowUpWithCustomer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		out = append(out, *item)
	}
	return out
}
