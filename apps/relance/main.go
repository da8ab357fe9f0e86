package main

import (
	"context"

	"github.com/aventcrm/relance/internal/agent"
	agentdomain "github.com/aventcrm/relance/internal/agent/domain"
	"github.com/aventcrm/relance/internal/audit"
	auditdomain "github.com/aventcrm/relance/internal/audit/domain"
	"github.com/aventcrm/relance/internal/clock"
	"github.com/aventcrm/relance/internal/config"
	"github.com/aventcrm/relance/internal/customer"
	customerdomain "github.com/aventcrm/relance/internal/customer/domain"
	"github.com/aventcrm/relance/internal/digest"
	"github.com/aventcrm/relance/internal/entryflow"
	"github.com/aventcrm/relance/internal/followup"
	followupdomain "github.com/aventcrm/relance/internal/followup/domain"
	"github.com/aventcrm/relance/internal/stats"
	"github.com/aventcrm/relance/pkg/db"
	"github.com/aventcrm/relance/pkg/log"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		audit.Module,
		agent.Module,
		customer.Module,
		followup.Module,
		entryflow.Module,
		stats.Module,
		digest.Module,

		// The chat transport binds its own Notifier; until then digests
		// land in the log.
		fx.Provide(func(logger *zap.Logger) digest.Notifier {
			return digest.NewLogNotifier(logger)
		}),

		fx.Invoke(Migrate),
		fx.Invoke(RegisterAdmins),
		fx.Invoke(StartDigestJob),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}

func Migrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&agentdomain.Agent{},
		&customerdomain.Customer{},
		&followupdomain.FollowUp{},
		&auditdomain.AuditEntry{},
	)
}

// RegisterAdmins grants agent rights to the identities listed in
// ADMIN_IDS at startup. Registration is idempotent across restarts.
func RegisterAdmins(lc fx.Lifecycle, cfg config.Config, agentSvc agentdomain.Service, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			for _, externalID := range cfg.AdminIDs {
				if _, err := agentSvc.Register(ctx, externalID, "", agentdomain.RoleAdmin); err != nil {
					logger.Warn("admin registration failed",
						zap.Int64("external_id", externalID),
						zap.Error(err),
					)
				}
			}
			return nil
		},
	})
}

func StartDigestJob(lc fx.Lifecycle, job *digest.Job) {
	ctx, cancel := context.WithCancel(context.Background())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go job.RunForever(ctx)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
