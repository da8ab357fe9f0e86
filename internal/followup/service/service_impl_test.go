package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	auditdomain "github.com/aventcrm/relance/internal/audit/domain"
	"github.com/aventcrm/relance/internal/clock"
	customerdomain "github.com/aventcrm/relance/internal/customer/domain"
	customerrepo "github.com/aventcrm/relance/internal/customer/repository"
	customerservice "github.com/aventcrm/relance/internal/customer/service"
	"github.com/aventcrm/relance/internal/followup/domain"
	"github.com/aventcrm/relance/internal/followup/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type auditStub struct {
	mu      sync.Mutex
	actions []string
}

func (a *auditStub) Record(_ context.Context, _ snowflake.ID, _ *snowflake.ID, action, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.actions = append(a.actions, action)
	return nil
}

func (a *auditStub) ListForCustomer(context.Context, snowflake.ID) ([]auditdomain.EntryWithAgent, error) {
	return nil, nil
}

func (a *auditStub) Actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.actions...)
}

func setupServices(t *testing.T, clk clock.Clock) (domain.Service, customerdomain.Service, *auditStub, *gorm.DB) {
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
	if err := gdb.AutoMigrate(&customerdomain.Customer{}, &domain.FollowUp{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake: %v", err)
	}

	audit := &auditStub{}
	customerSvc := customerservice.New(customerservice.Params{
		DB:       gdb,
		Log:      zap.NewNop(),
		GenID:    node,
		Clock:    clk,
		Repo:     customerrepo.Provide(),
		AuditSvc: audit,
	})
	followUpSvc := New(Params{
		DB:          gdb,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       clk,
		Repo:        repository.Provide(),
		CustomerSvc: customerSvc,
		AuditSvc:    audit,
	})
	return followUpSvc, customerSvc, audit, gdb
}

func mustCreateCustomer(t *testing.T, svc customerdomain.Service, name string) customerdomain.Customer {
	t.Helper()
	customer, err := svc.Create(context.Background(), customerdomain.CreateCustomerRequest{Name: name})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func TestScheduleBeforeDateComputesTarget(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 12, 0, 0, 0, time.UTC))
	followUpSvc, customerSvc, _, _ := setupServices(t, clk)
	customer := mustCreateCustomer(t, customerSvc, "Alice Martin")

	followUp, err := followUpSvc.ScheduleBeforeDate(context.Background(), domain.ScheduleBeforeRequest{
		CustomerID:    customer.ID,
		DaysBefore:    5,
		ReferenceDate: "20/05/2024",
	})
	require.NoError(t, err)
	require.Equal(t, "15/05/2024", followUp.TargetDateText())
	require.Equal(t, "5d before", followUp.Kind)
	require.Equal(t, domain.PriorityMedium, followUp.Priority)
	require.Equal(t, domain.StatusScheduled, followUp.Status)
}

func TestScheduleBeforeDateViaSameCreationPath(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	followUpSvc, customerSvc, audit, _ := setupServices(t, clk)
	customer := mustCreateCustomer(t, customerSvc, "Alice Martin")

	_, err := followUpSvc.ScheduleBeforeDate(context.Background(), domain.ScheduleBeforeRequest{
		CustomerID:    customer.ID,
		DaysBefore:    0,
		ReferenceDate: "10/05/2024",
	})
	require.NoError(t, err)
	require.Contains(t, audit.Actions(), "follow-up added")
}

func TestScheduleDirectRejectsBadDate(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	followUpSvc, customerSvc, _, _ := setupServices(t, clk)
	customer := mustCreateCustomer(t, customerSvc, "Alice Martin")

	for _, text := range []string{"2024-05-20", "tomorrow", ""} {
		_, err := followUpSvc.ScheduleDirect(context.Background(), domain.ScheduleDirectRequest{
			CustomerID: customer.ID,
			TargetDate: text,
		})
		require.ErrorIs(t, err, domain.ErrInvalidDate, "input %q", text)
	}

	followUps, err := followUpSvc.ListForCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Empty(t, followUps)
}

func TestScheduleDirectUnknownCustomer(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	followUpSvc, _, _, _ := setupServices(t, clk)

	_, err := followUpSvc.ScheduleDirect(context.Background(), domain.ScheduleDirectRequest{
		CustomerID: snowflake.ID(12345),
		TargetDate: "20/05/2024",
	})
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestScheduleDirectNegativeDaysBefore(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	followUpSvc, customerSvc, _, _ := setupServices(t, clk)
	customer := mustCreateCustomer(t, customerSvc, "Alice Martin")

	_, err := followUpSvc.ScheduleBeforeDate(context.Background(), domain.ScheduleBeforeRequest{
		CustomerID:    customer.ID,
		DaysBefore:    -1,
		ReferenceDate: "20/05/2024",
	})
	require.ErrorIs(t, err, domain.ErrInvalidDaysBefore)
}

func TestCompleteRoundTrip(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 9, 30, 0, 0, time.UTC))
	followUpSvc, customerSvc, _, _ := setupServices(t, clk)
	customer := mustCreateCustomer(t, customerSvc, "Alice Martin")

	scheduled, err := followUpSvc.ScheduleDirect(context.Background(), domain.ScheduleDirectRequest{
		CustomerID: customer.ID,
		TargetDate: "12/05/2024",
		Kind:       "precise date",
	})
	require.NoError(t, err)

	clk.Advance(48 * time.Hour)
	done, err := followUpSvc.Complete(context.Background(), scheduled.ID, "converted", "booked the trip")
	require.NoError(t, err)
	require.Equal(t, domain.StatusDone, done.Status)
	require.NotNil(t, done.CompletedAt)
	require.True(t, done.CompletedAt.Equal(clk.Now()))
	require.Equal(t, "converted", done.Outcome)
	require.Equal(t, "booked the trip", done.Notes)

	followUps, err := followUpSvc.ListForCustomer(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Len(t, followUps, 1)
	require.Equal(t, domain.StatusDone, followUps[0].Status)
}

func TestCompleteUnknownID(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC))
	followUpSvc, _, _, _ := setupServices(t, clk)

	_, err := followUpSvc.Complete(context.Background(), snowflake.ID(999), "", "")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDueTodayExcludesDoneAndOrdersByPriority(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC))
	followUpSvc, customerSvc, _, _ := setupServices(t, clk)
	ctx := context.Background()

	high := mustCreateCustomer(t, customerSvc, "High Customer")
	urgent := mustCreateCustomer(t, customerSvc, "Urgent Customer")
	completed := mustCreateCustomer(t, customerSvc, "Completed Customer")

	// Due today, created today: high tier.
	_, err := followUpSvc.ScheduleDirect(ctx, domain.ScheduleDirectRequest{
		CustomerID: high.ID,
		TargetDate: "10/05/2024",
	})
	require.NoError(t, err)

	// Same target date but created later, when it was already overdue:
	// the frozen tier is urgent.
	clk.Set(time.Date(2024, time.May, 12, 8, 0, 0, 0, time.UTC))
	_, err = followUpSvc.ScheduleDirect(ctx, domain.ScheduleDirectRequest{
		CustomerID: urgent.ID,
		TargetDate: "10/05/2024",
	})
	require.NoError(t, err)
	clk.Set(time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC))

	doneFollowUp, err := followUpSvc.ScheduleDirect(ctx, domain.ScheduleDirectRequest{
		CustomerID: completed.ID,
		TargetDate: "10/05/2024",
	})
	require.NoError(t, err)
	_, err = followUpSvc.Complete(ctx, doneFollowUp.ID, "reached", "")
	require.NoError(t, err)

	due, err := followUpSvc.DueToday(ctx)
	require.NoError(t, err)
	require.Len(t, due, 2)
	require.Equal(t, "Urgent Customer", due[0].CustomerName)
	require.Equal(t, "High Customer", due[1].CustomerName)
}

func TestOverdueOrderedByDateWithStableTies(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 1, 8, 0, 0, 0, time.UTC))
	followUpSvc, customerSvc, _, _ := setupServices(t, clk)
	ctx := context.Background()

	first := mustCreateCustomer(t, customerSvc, "First")
	second := mustCreateCustomer(t, customerSvc, "Second")
	third := mustCreateCustomer(t, customerSvc, "Third")

	for _, item := range []struct {
		customerID snowflake.ID
		date       string
	}{
		{first.ID, "10/05/2024"},
		{second.ID, "05/05/2024"},
		{third.ID, "10/05/2024"},
	} {
		_, err := followUpSvc.ScheduleDirect(ctx, domain.ScheduleDirectRequest{
			CustomerID: item.customerID,
			TargetDate: item.date,
		})
		require.NoError(t, err)
	}

	clk.Set(time.Date(2024, time.May, 20, 8, 0, 0, 0, time.UTC))

	for i := 0; i < 3; i++ {
		overdue, err := followUpSvc.Overdue(ctx)
		require.NoError(t, err)
		require.Len(t, overdue, 3)
		require.Equal(t, "Second", overdue[0].CustomerName)
		require.Equal(t, "First", overdue[1].CustomerName)
		require.Equal(t, "Third", overdue[2].CustomerName)
	}
}

func TestUpcomingWindowInclusive(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, time.May, 10, 8, 0, 0, 0, time.UTC))
	followUpSvc, customerSvc, _, _ := setupServices(t, clk)
	ctx := context.Background()

	customer := mustCreateCustomer(t, customerSvc, "Alice Martin")
	for _, date := range []string{"10/05/2024", "17/05/2024", "18/05/2024"} {
		_, err := followUpSvc.ScheduleDirect(ctx, domain.ScheduleDirectRequest{
			CustomerID: customer.ID,
			TargetDate: date,
		})
		require.NoError(t, err)
	}

	upcoming, err := followUpSvc.Upcoming(ctx, 7)
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	require.Equal(t, "10/05/2024", upcoming[0].TargetDateText())
	require.Equal(t, "17/05/2024", upcoming[1].TargetDateText())
}
