package service

import (
	"context"
	"strings"

	auditdomain "github.com/aventcrm/relance/internal/audit/domain"
	"github.com/aventcrm/relance/internal/clock"
	"github.com/aventcrm/relance/internal/customer/domain"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB       *gorm.DB
	Log      *zap.Logger
	GenID    *snowflake.Node
	Clock    clock.Clock
	Repo     domain.Repository
	AuditSvc auditdomain.Service
}

type Service struct {
	db       *gorm.DB
	log      *zap.Logger
	genID    *snowflake.Node
	clock    clock.Clock
	repo     domain.Repository
	auditSvc auditdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:       p.DB,
		log:      p.Log.Named("customer.service"),
		genID:    p.GenID,
		clock:    p.Clock,
		repo:     p.Repo,
		auditSvc: p.AuditSvc,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateCustomerRequest) (domain.Customer, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.Customer{}, domain.ErrInvalidName
	}

	customer := domain.Customer{
		ID:          s.genID.Generate(),
		Name:        name,
		Phone:       strings.TrimSpace(req.Phone),
		Email:       strings.TrimSpace(req.Email),
		Source:      strings.TrimSpace(req.Source),
		RequestType: strings.TrimSpace(req.RequestType),
		Destination: strings.TrimSpace(req.Destination),
		Status:      domain.StatusInProgress,
		AgentID:     req.AgentID,
		CreatedAt:   s.clock.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, s.db, &customer); err != nil {
		return domain.Customer{}, err
	}

	if err := s.auditSvc.Record(ctx, customer.ID, req.AgentID, "created", "customer record created"); err != nil {
		s.log.Warn("audit record failed", zap.Error(err))
	}

	return customer, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (domain.Customer, error) {
	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Customer{}, err
	}
	if item == nil {
		return domain.Customer{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	items, err := s.repo.Search(ctx, s.db, query)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]domain.Customer, error) {
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	items, err := s.repo.ListByStatus(ctx, s.db, status)
	if err != nil {
		return nil, err
	}
	return collect(items), nil
}

func (s *Service) UpdateStatus(ctx context.Context, id snowflake.ID, status string) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	err := s.repo.UpdateStatus(ctx, s.db, id, status)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return domain.ErrNotFound
		}
		return err
	}

	if err := s.auditSvc.Record(ctx, id, nil, "status changed", "status set to "+status); err != nil {
		s.log.Warn("audit record failed", zap.Error(err))
	}
	return nil
}

func collect(items []*domain.Customer) []domain.Customer {
	customers := make([]domain.Customer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		customers = append(customers, *item)
	}
	return customers
}
