// Package bootstrap arma el grafo de dependencias compartido por la API y la CLI.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Taller-api/internal/application/auth"
	"github.com/jhoicas/Taller-api/internal/application/masterdata"
	"github.com/jhoicas/Taller-api/internal/infrastructure/geocoding"
	"github.com/jhoicas/Taller-api/internal/infrastructure/identity"
	"github.com/jhoicas/Taller-api/internal/infrastructure/lock"
	"github.com/jhoicas/Taller-api/internal/infrastructure/mail"
	"github.com/jhoicas/Taller-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Taller-api/pkg/config"
	"github.com/jhoicas/Taller-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// App dependencias construidas a partir de la configuración.
type App struct {
	Pool     *pgxpool.Pool
	ImportUC *masterdata.ImportUseCase
	AuthUC   *auth.AuthUseCase

	redis *redis.Client
}

// Close libera conexiones a PostgreSQL y Redis.
func (a *App) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}

// New conecta PostgreSQL (y Redis si REDIS_ADDR está definido) y construye los casos de uso.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg.Import.DefaultStaffPassword == "" {
		return nil, fmt.Errorf("IMPORT_DEFAULT_STAFF_PASSWORD es requerido")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	app := &App{Pool: pool}

	var geocoder masterdata.Geocoder = geocoding.NewGoogleGeocoder(cfg.Geocoding.APIKey, cfg.Geocoding.Region, cfg.Geocoding.Timeout())
	var importLock masterdata.ImportLock = lock.NewMemoryLock()
	if cfg.Redis.Addr != "" {
		client, err := lock.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.redis = client
		importLock = lock.NewRedisLock(client, cfg.Import.LockTTL(), log.Component("import-lock"))
		geocoder = geocoding.NewCachedGeocoder(geocoder, client, time.Duration(cfg.Geocoding.CacheTTLHours)*time.Hour, log.Component("geocoding"))
	} else {
		log.Warn().Msg("REDIS_ADDR no definido: lock de importación en memoria (solo un proceso)")
	}

	var sender masterdata.EmailSender = mail.NoopSender{}
	if cfg.Import.NotifyEnabled && cfg.SMTP.Host != "" {
		sender = mail.NewSMTPSender(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}
	notifier := masterdata.NewPostCommitNotifier(sender, cfg.App.Name, log.Component("notifier"))

	roleRepo := postgres.NewRoleRepository(pool)
	store := postgres.NewMasterDataStore(postgres.NewTxRunner(pool))
	app.ImportUC = masterdata.NewImportUseCase(
		store, geocoder, identity.NewProvider(roleRepo, 0), notifier,
		masterdata.Config{DefaultStaffPassword: cfg.Import.DefaultStaffPassword},
		log.Component("masterdata"),
	).WithLock(importLock)

	app.AuthUC = auth.NewAuthUseCase(postgres.NewUserRepository(pool), roleRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	return app, nil
}
