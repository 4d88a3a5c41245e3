package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"time"

	"github.com/dmitrijs2005/budgettracker/internal/flagx"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// lookupFunc matches os.LookupEnv.
type lookupFunc func(key string) (string, bool)

// parseEnv overlays values from environment variables. Variables missing
// from the process environment are looked up in the .env file named by
// -env (default ".env", silently skipped when absent).
func parseEnv(cfg *Config, args []string, lookup lookupFunc) error {
	envFile := flagx.EnvFileFlag(args)
	explicit := envFile != ""
	if !explicit {
		envFile = defaultEnvFile
	}

	dotenv, err := godotenv.Read(envFile)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("read %s: %w", envFile, err)
		}
		dotenv = map[string]string{}
	}

	get := func(keys ...string) (string, bool) {
		for _, k := range keys {
			if v, ok := lookup(k); ok && v != "" {
				return v, true
			}
			if v, ok := dotenv[k]; ok && v != "" {
				return v, true
			}
		}
		return "", false
	}

	str := func(dst *string, keys ...string) {
		if v, ok := get(keys...); ok {
			*dst = v
		}
	}
	dur := func(dst *time.Duration, key string) error {
		v, ok := get(key)
		if !ok {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = d
		return nil
	}

	str(&cfg.HTTPAddr, "BUDGET_HTTP_ADDR")
	str(&cfg.DatabaseDSN, "BUDGET_DATABASE_DSN", "DATABASE_URL")
	str(&cfg.SecretKey, "BUDGET_SECRET_KEY", "SECRET_KEY")
	str(&cfg.LogLevel, "BUDGET_LOG_LEVEL")
	str(&cfg.S3RootUser, "BUDGET_S3_ROOT_USER")
	str(&cfg.S3RootPassword, "BUDGET_S3_ROOT_PASSWORD")
	str(&cfg.S3Bucket, "BUDGET_S3_BUCKET")
	str(&cfg.S3Region, "BUDGET_S3_REGION")
	str(&cfg.S3BaseEndpoint, "BUDGET_S3_BASE_ENDPOINT")

	if err := errors.Join(
		dur(&cfg.AccessTokenValidityDuration, "BUDGET_ACCESS_TOKEN_TTL"),
		dur(&cfg.RefreshTokenValidityDuration, "BUDGET_REFRESH_TOKEN_TTL"),
		dur(&cfg.TokenPurgeInterval, "BUDGET_TOKEN_PURGE_INTERVAL"),
		dur(&cfg.ShutdownTimeout, "BUDGET_SHUTDOWN_TIMEOUT"),
		dur(&cfg.ExportURLValidityDuration, "BUDGET_EXPORT_URL_TTL"),
	); err != nil {
		return err
	}

	if v, ok := get("BUDGET_BCRYPT_COST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("BUDGET_BCRYPT_COST: %w", err)
		}
		cfg.BcryptCost = n
	}

	return nil
}
