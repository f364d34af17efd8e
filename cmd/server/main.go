package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/koltukutsu/listele/internal/account"
	"github.com/koltukutsu/listele/internal/billing"
	"github.com/koltukutsu/listele/internal/entitlement"
	"github.com/koltukutsu/listele/internal/httpapi"
	"github.com/koltukutsu/listele/internal/lead"
	"github.com/koltukutsu/listele/internal/notify"
	"github.com/koltukutsu/listele/internal/plan"
	"github.com/koltukutsu/listele/internal/project"
	"github.com/koltukutsu/listele/pkg/config"
	"github.com/koltukutsu/listele/pkg/email"
	"github.com/koltukutsu/listele/pkg/httpserver"
	"github.com/koltukutsu/listele/pkg/logger"
	"github.com/koltukutsu/listele/pkg/mongo"
	"github.com/koltukutsu/listele/pkg/ratelimit"
	"github.com/koltukutsu/listele/pkg/redis"
)

type appConfig struct {
	// PlansFile overrides the built-in plan catalog when set.
	PlansFile string `env:"PLANS_FILE"`

	CaptureRateLimit  int           `env:"CAPTURE_RATE_LIMIT" envDefault:"10"`
	CaptureRateWindow time.Duration `env:"CAPTURE_RATE_WINDOW" envDefault:"1m"`
}

func main() {
	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log := logger.FromConfig(logCfg, "listele")

	if err := run(log); err != nil {
		log.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	ctx := context.Background()

	var (
		app        appConfig
		mongoCfg   mongo.Config
		redisCfg   redis.Config
		serverCfg  httpserver.Config
		billingCfg billing.Config
		emailCfg   email.Config
	)
	config.MustLoad(&app)
	config.MustLoad(&mongoCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&billingCfg)
	config.MustLoad(&emailCfg)

	db, err := mongo.NewWithDatabase(ctx, mongoCfg)
	if err != nil {
		return err
	}
	defer func() {
		_ = db.Client().Disconnect(context.Background())
	}()

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	var source plan.Source = plan.NewStaticSource(plan.Default())
	if app.PlansFile != "" {
		source = plan.NewFileSource(app.PlansFile)
	}
	catalog, err := source.Load(ctx)
	if err != nil {
		return err
	}

	accounts := account.NewRepository(db)
	projectRepo := project.NewRepository(db)
	leadRepo := lead.NewRepository(db)
	if err := projectRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := leadRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	var sender email.Sender
	if emailCfg.Enabled() {
		sender, err = email.NewPostmarkSender(emailCfg)
		if err != nil {
			return err
		}
	} else {
		log.Warn("postmark tokens missing, lead notifications disabled")
		sender = email.NewNoopSender()
	}

	gate := entitlement.NewService(catalog)
	projects := project.NewService(projectRepo, accounts, leadRepo, gate, log)
	leads := lead.NewService(leadRepo, projectRepo, accounts, gate, notify.NewLeadNotifier(sender), log)
	payments := billing.NewService(billing.NewClient(billingCfg, nil), accounts, catalog, log)

	captureLimiter, err := ratelimit.New(ratelimit.NewRedisStore(redisClient, "capture"), ratelimit.Config{
		Limit:  app.CaptureRateLimit,
		Window: app.CaptureRateWindow,
	})
	if err != nil {
		return err
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Projects:       projects,
		Leads:          leads,
		Billing:        payments,
		Accounts:       accounts,
		Public:         projectRepo,
		Entitlements:   gate,
		PublicBaseURL:  billingCfg.AppBaseURL,
		CaptureLimiter: captureLimiter,
		Healthchecks: map[string]func(context.Context) error{
			"mongodb": mongo.Healthcheck(db.Client()),
			"redis":   redis.Healthcheck(redisClient),
		},
		Log: log,
	})

	return httpserver.New(serverCfg, log).Run(ctx, router)
}
