// Package wire assembles the application service from configuration. It is
// shared by the HTTP server and erpctl so both run against the same stack.
package wire

import (
	"context"
	"fmt"

	"erp-admin/internal/app"
	"erp-admin/internal/config"
	"erp-admin/internal/core"
	"erp-admin/internal/db"
	"erp-admin/internal/logger"
	"erp-admin/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Runtime is a fully wired application. Close releases the pool and, for the
// redis driver, the client.
type Runtime struct {
	Service  app.ApplicationService
	Pool     *pgxpool.Pool
	Modules  *core.ModuleRegistry
	Switcher *core.Switcher

	closers []func()
}

// Options tweak Build.
type Options struct {
	// Migrate applies pending migrations before wiring the services.
	Migrate bool
}

// Build connects to the configured stores and wires every service.
func Build(ctx context.Context, cfg config.Config, opts Options) (*Runtime, error) {
	log := logger.From(ctx)

	modules, err := core.LoadRegistry(cfg.ModulesFile)
	if err != nil {
		return nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}
	rt := &Runtime{Pool: pool, Modules: modules, closers: []func(){pool.Close}}

	if opts.Migrate {
		applied, err := db.RunMigrations(ctx, pool, migrations.FS)
		if err != nil {
			rt.Close()
			return nil, err
		}
		if len(applied) > 0 {
			log.Info("migrations applied", zap.Strings("files", applied))
		}
	}

	store, err := rt.openStore(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}
	cached := core.NewCachedStore(store, cfg.OptionCacheTTL)

	users := core.NewUserService(pool)
	companies := core.NewCompanyService(pool)
	audit := core.NewAuditLog(pool)
	nonces := core.NewNonceManager(cfg.NonceSecret, cfg.NonceTTL)
	prefs := core.NewPreferences(cached, modules, companies)

	switcher := core.NewSwitcher(core.SwitcherDeps{
		Preferences:                     prefs,
		Modules:                         modules,
		Companies:                       companies,
		Nonces:                          nonces,
		Audit:                           audit,
		AdminHomeURL:                    cfg.AdminHomeURL,
		CompanySwitchRequiresCapability: cfg.CompanySwitchRequiresCapability,
	})
	switcher.OnModuleSwitch(modules.ModuleRedirectHook())
	rt.Switcher = switcher

	rt.Service = app.NewAppService(app.Deps{
		Users:        users,
		Companies:    companies,
		Modules:      modules,
		Nonces:       nonces,
		Audit:        audit,
		Preferences:  prefs,
		Switcher:     switcher,
		Visibility:   core.NewVisibility(cached, nonces, audit),
		MenuPosition: cfg.MenuPosition,
	})

	log.Info("services wired",
		zap.String("store", cfg.StoreDriver),
		zap.Int("modules", len(modules.Modules())),
		zap.Int("menu_position", cfg.MenuPosition))
	return rt, nil
}

func (rt *Runtime) openStore(ctx context.Context, cfg config.Config) (core.Store, error) {
	switch cfg.StoreDriver {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		rt.closers = append(rt.closers, func() { _ = client.Close() })
		return core.NewRedisStore(client, ""), nil
	default:
		return core.NewPostgresStore(rt.Pool), nil
	}
}

// Close releases resources in reverse order of acquisition.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		rt.closers[i]()
	}
	rt.closers = nil
}
