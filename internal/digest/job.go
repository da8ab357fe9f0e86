package digest

import (
	"context"
	"time"

	agentdomain "github.com/aventcrm/relance/internal/agent/domain"
	"github.com/aventcrm/relance/internal/clock"
	"github.com/aventcrm/relance/internal/config"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type JobParams struct {
	fx.In

	Log      *zap.Logger
	Config   config.Config
	Clock    clock.Clock
	AgentSvc agentdomain.Service
	Composer *Composer
	Notifier Notifier
}

// Job pushes the digest to every registered agent once per calendar
// day at the configured local hour. It never blocks interactive work.
type Job struct {
	log      *zap.Logger
	hour     int
	clock    clock.Clock
	agentSvc agentdomain.Service
	composer *Composer
	notifier Notifier
}

func NewJob(p JobParams) *Job {
	return &Job{
		log:      p.Log.Named("digest.job"),
		hour:     p.Config.DigestHour,
		clock:    p.Clock,
		agentSvc: p.AgentSvc,
		composer: p.Composer,
		notifier: p.Notifier,
	}
}

func (j *Job) RunForever(ctx context.Context) {
	for {
		next := j.NextRun()
		timer := time.NewTimer(next.Sub(j.clock.Now()))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		j.Deliver(ctx)
	}
}

// NextRun returns the next occurrence of the configured hour, local time.
func (j *Job) NextRun() time.Time {
	now := j.clock.Now()
	next := time.Date(now.Year(), now.Month(), now.Day(), j.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Deliver composes the digest once and fans it out. A failed send is
// logged and skipped; it never aborts delivery to remaining agents.
func (j *Job) Deliver(ctx context.Context) {
	log := j.log.With(zap.String("run_id", uuid.NewString()))

	text, err := j.composer.Compose(ctx)
	if err != nil {
		log.Warn("digest compose failed", zap.Error(err))
		return
	}

	agents, err := j.agentSvc.List(ctx)
	if err != nil {
		log.Warn("digest recipient listing failed", zap.Error(err))
		return
	}

	delivered := 0
	for _, agent := range agents {
		if err := j.notifier.Notify(ctx, agent.ExternalID, text); err != nil {
			log.Warn("digest delivery failed",
				zap.Int64("recipient", agent.ExternalID),
				zap.Error(err),
			)
			continue
		}
		delivered++
	}

	log.Info("digest delivered",
		zap.Int("recipients", len(agents)),
		zap.Int("delivered", delivered),
	)
}
