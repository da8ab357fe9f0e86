package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	auditdomain "github.com/aventcrm/relance/internal/audit/domain"
	"github.com/aventcrm/relance/internal/clock"
	"github.com/aventcrm/relance/internal/customer/domain"
	"github.com/aventcrm/relance/internal/customer/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type auditStub struct {
	mu      sync.Mutex
	actions []string
	fail    bool
}

func (a *auditStub) Record(_ context.Context, _ snowflake.ID, _ *snowflake.ID, action, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail {
		return fmt.Errorf("audit store unavailable")
	}
	a.actions = append(a.actions, action)
	return nil
}

func (a *auditStub) ListForCustomer(context.Context, snowflake.ID) ([]auditdomain.EntryWithAgent, error) {
	return nil, nil
}

func setupService(t *testing.T) (domain.Service, *auditStub) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	if err := gdb.AutoMigrate(&domain.Customer{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	audit := &auditStub{}
	svc := New(Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clock.NewFakeClock(time.Date(2024, time.May, 10, 9, 0, 0, 0, time.UTC)),
		Repo:     repository.Provide(),
		AuditSvc: audit,
	})
	return svc, audit
}

func TestCreateTrimsAndDefaultsStatus(t *testing.T) {
	svc, audit := setupService(t)

	customer, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "  Alice Martin  ",
		Phone: " +33612345678 ",
	})
	require.NoError(t, err)
	require.Equal(t, "Alice Martin", customer.Name)
	require.Equal(t, "+33612345678", customer.Phone)
	require.Equal(t, domain.StatusInProgress, customer.Status)
	require.Contains(t, audit.actions, "created")

	stored, err := svc.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Equal(t, customer.Name, stored.Name)
}

func TestCreateRequiresName(t *testing.T) {
	svc, _ := setupService(t)

	for _, name := range []string{"", "   "} {
		_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Name: name})
		require.ErrorIs(t, err, domain.ErrInvalidName)
	}
}

func TestCreateSucceedsWhenAuditFails(t *testing.T) {
	svc, audit := setupService(t)
	audit.fail = true

	customer, err := svc.Create(context.Background(), domain.CreateCustomerRequest{Name: "Alice Martin"})
	require.NoError(t, err)

	stored, err := svc.GetByID(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice Martin", stored.Name)
}

func TestGetByIDUnknown(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.GetByID(context.Background(), snowflake.ID(404))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchMatchesNamePhoneAndEmail(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	for _, req := range []domain.CreateCustomerRequest{
		{Name: "Alice Martin", Phone: "+33612345678", Email: "alice@example.com"},
		{Name: "Bob Dupont", Phone: "+33798765432", Email: "bob@example.com"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	byName, err := svc.Search(ctx, "Martin")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	require.Equal(t, "Alice Martin", byName[0].Name)

	byPhone, err := svc.Search(ctx, "3379")
	require.NoError(t, err)
	require.Len(t, byPhone, 1)
	require.Equal(t, "Bob Dupont", byPhone[0].Name)

	byEmail, err := svc.Search(ctx, "example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 2)

	none, err := svc.Search(ctx, "nobody")
	require.NoError(t, err)
	require.Empty(t, none)

	blank, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	require.Empty(t, blank)
}

func TestUpdateStatusLifecycle(t *testing.T) {
	svc, audit := setupService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Alice Martin"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, customer.ID, domain.StatusConverted))
	require.Contains(t, audit.actions, "status changed")

	stored, err := svc.GetByID(ctx, customer.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StatusConverted, stored.Status)

	converted, err := svc.ListByStatus(ctx, domain.StatusConverted)
	require.NoError(t, err)
	require.Len(t, converted, 1)

	inProgress, err := svc.ListByStatus(ctx, domain.StatusInProgress)
	require.NoError(t, err)
	require.Empty(t, inProgress)
}

func TestUpdateStatusValidation(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	customer, err := svc.Create(ctx, domain.CreateCustomerRequest{Name: "Alice Martin"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.UpdateStatus(ctx, customer.ID, "archived"), domain.ErrInvalidStatus)
	require.ErrorIs(t, svc.UpdateStatus(ctx, snowflake.ID(404), domain.StatusLost), domain.ErrNotFound)

	_, err = svc.ListByStatus(ctx, "archived")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)
}
