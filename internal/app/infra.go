package app

import (
	"context"
	"fmt"

	"otraveznose/internal/auth/credentials"
	"otraveznose/internal/config"
	"otraveznose/internal/db"
	"otraveznose/internal/logger"
	"otraveznose/internal/redis"
	"otraveznose/internal/session"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

type Infra struct {
	Credentials *credentials.Store
	Sessions    session.Store
	Redis       *redis.Client
}

func (i *Infra) Close() error {
	if i.Redis != nil {
		return i.Redis.Close()
	}
	return nil
}

func setupInfra(ctx context.Context, cfg config.Config) (*Infra, error) {
	creds, err := setupCredentials(ctx, cfg)
	if err != nil {
		return nil, err
	}

	infra := &Infra{Credentials: creds}

	switch cfg.SessionBackend {
	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		infra.Redis = client
		infra.Sessions = session.NewRedisStore(client.Client)
		logger.Info("redis ready", map[string]any{"addr": cfg.RedisAddr})
	default:
		infra.Sessions = session.NewMemoryStore()
		logger.Info("in-memory session store ready", nil)
	}

	return infra, nil
}

// setupCredentials loads the credential set once. Without a DSN the
// built-in defaults are hashed in memory; with one, the stored bcrypt
// hashes are used as they are.
func setupCredentials(ctx context.Context, cfg config.Config) (*credentials.Store, error) {
	if cfg.CredentialsDSN == "" {
		store, err := credentials.NewStore(credentials.Defaults(), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("app: credentials: %w", err)
		}
		return store, nil
	}

	database, err := db.Open(ctx, cfg.CredentialsDriver, cfg.CredentialsDSN)
	if err != nil {
		return nil, err
	}
	defer database.Close()

	records, err := credentials.LoadFromDB(ctx, database.DB)
	if err != nil {
		return nil, err
	}

	store, err := credentials.NewStoreFromHashes(records)
	if err != nil {
		return nil, fmt.Errorf("app: credentials: %w", err)
	}

	logger.Info("credentials loaded from database", map[string]any{
		"driver": cfg.CredentialsDriver,
		"count":  store.Len(),
	})
	return store, nil
}
