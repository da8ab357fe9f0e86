package digest

import (
	"context"
	"fmt"
	"strings"

	"github.com/aventcrm/relance/internal/config"
	followupdomain "github.com/aventcrm/relance/internal/followup/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type ComposerParams struct {
	fx.In

	Log         *zap.Logger
	FollowUpSvc followupdomain.Service
	Policy      *config.DigestPolicyHolder
}

// Composer builds the daily digest text: overdue, due today, then the
// upcoming window grouped by date.
type Composer struct {
	log         *zap.Logger
	followUpSvc followupdomain.Service
	policy      *config.DigestPolicyHolder
}

func NewComposer(p ComposerParams) *Composer {
	return &Composer{
		log:         p.Log.Named("digest.composer"),
		followUpSvc: p.FollowUpSvc,
		policy:      p.Policy,
	}
}

func (c *Composer) Compose(ctx context.Context) (string, error) {
	policy := c.policy.Current()

	overdue, err := c.followUpSvc.Overdue(ctx)
	if err != nil {
		return "", err
	}
	dueToday, err := c.followUpSvc.DueToday(ctx)
	if err != nil {
		return "", err
	}
	upcoming, err := c.followUpSvc.Upcoming(ctx, policy.UpcomingWindowDays)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Daily follow-up digest\n")

	if len(overdue) > 0 {
		b.WriteString("\nOVERDUE\n")
		for i, item := range overdue {
			if i == policy.MaxOverdueEntries {
				break
			}
			fmt.Fprintf(&b, "- %s - %s\n", item.CustomerName, item.TargetDateText())
		}
		if extra := len(overdue) - policy.MaxOverdueEntries; extra > 0 {
			fmt.Fprintf(&b, "... and %d more\n", extra)
		}
	}

	if len(dueToday) > 0 {
		b.WriteString("\nTODAY\n")
		for _, item := range dueToday {
			fmt.Fprintf(&b, "- %s\n", item.CustomerName)
		}
	} else {
		b.WriteString("\nNo follow-ups due today.\n")
	}

	fmt.Fprintf(&b, "\nNEXT %d DAYS\n", policy.UpcomingWindowDays)
	for i, group := range groupByDate(upcoming) {
		if i == policy.MaxUpcomingDates {
			break
		}
		if len(group.names) > policy.MaxNamesPerDate {
			fmt.Fprintf(&b, "- %s: %s and %d more\n",
				group.date,
				strings.Join(group.names[:policy.MaxNamesPerDate], ", "),
				len(group.names)-policy.MaxNamesPerDate,
			)
		} else {
			fmt.Fprintf(&b, "- %s: %s\n", group.date, strings.Join(group.names, ", "))
		}
	}

	return b.String(), nil
}

type dateGroup struct {
	date  string
	names []string
}

// groupByDate collapses date-ordered follow-ups into per-date name
// lists, preserving the incoming order.
func groupByDate(items []followupdomain.FollowUpWithCustomer) []dateGroup {
	var groups []dateGroup
	for _, item := range items {
		date := item.TargetDateText()
		if n := len(groups); n > 0 && groups[n-1].date == date {
			groups[n-1].names = append(groups[n-1].names, item.CustomerName)
			continue
		}
		groups = append(groups, dateGroup{date: date, names: []string{item.CustomerName}})
	}
	return groups
}
