package config

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type secrets struct {
	PrimaryDatabaseHost     string `validate:"required"`
	PrimaryDatabasePort     string `validate:"required"`
	PrimaryDatabaseName     string `validate:"required"`
	PrimaryDatabaseUser     string `validate:"required"`
	PrimaryDatabasePassword string `validate:"required"`

	ReplicaDatabaseHost     string `validate:"required"`
	ReplicaDatabasePort     string `validate:"required"`
	ReplicaDatabaseName     string `validate:"required"`
	ReplicaDatabaseUser     string `validate:"required"`
	ReplicaDatabasePassword string `validate:"required"`

	// Tokens are issued by the identity service, this API only verifies them.
	AccessTokenPublicKey ed25519.PublicKey `validate:"required,len=32"`

	CacheURI      string `validate:"required"`
	CachePassword string `validate:"exists"`
	CacheDB       int    `validate:"exists"`

	MailerEmailPassword string `validate:"required"`
	MailerEmail         string `validate:"required,email"`

	// Empty DSN disables error tracking.
	SentryDSN string `validate:"exists"`
}

var Secret secrets

var requiredEnvVars = []string{
	"PRIMARY_DB_HOST",
	"PRIMARY_DB_PORT",
	"PRIMARY_DB_NAME",
	"PRIMARY_DB_USER",
	"PRIMARY_DB_PASSWORD",

	"REPLICA_DB_HOST",
	"REPLICA_DB_PORT",
	"REPLICA_DB_NAME",
	"REPLICA_DB_USER",
	"REPLICA_DB_PASSWORD",

	"ACCESS_TOKEN_PUBLIC_KEY",

	"CACHE_URI",
	"CACHE_DB",

	"MAILER_EMAIL_PASSWORD",
	"MAILER_EMAIL",
}

func getEnv(key string) string {
	env, _ := os.LookupEnv(key)

	configLogger.Trace("Loaded: "+key, nil)

	return env
}

// Reads secrets from environment.
func readSecrets() (secrets, error) {
	var s secrets

	for _, variable := range requiredEnvVars {
		if _, exists := os.LookupEnv(variable); !exists {
			return s, errors.New("missing required env variable: " + variable)
		}
	}

	cacheDB, err := strconv.Atoi(getEnv("CACHE_DB"))
	if err != nil {
		return s, errors.New("invalid CACHE_DB: " + err.Error())
	}

	// base64 of the raw 32-byte ed25519 public key
	publicKey, err := base64.StdEncoding.DecodeString(getEnv("ACCESS_TOKEN_PUBLIC_KEY"))
	if err != nil {
		return s, errors.New("invalid ACCESS_TOKEN_PUBLIC_KEY: " + err.Error())
	}

	s.PrimaryDatabaseHost = getEnv("PRIMARY_DB_HOST")
	s.PrimaryDatabasePort = getEnv("PRIMARY_DB_PORT")
	s.PrimaryDatabaseName = getEnv("PRIMARY_DB_NAME")
	s.PrimaryDatabaseUser = getEnv("PRIMARY_DB_USER")
	s.PrimaryDatabasePassword = getEnv("PRIMARY_DB_PASSWORD")

	s.ReplicaDatabaseHost = getEnv("REPLICA_DB_HOST")
	s.ReplicaDatabasePort = getEnv("REPLICA_DB_PORT")
	s.ReplicaDatabaseName = getEnv("REPLICA_DB_NAME")
	s.ReplicaDatabaseUser = getEnv("REPLICA_DB_USER")
	s.ReplicaDatabasePassword = getEnv("REPLICA_DB_PASSWORD")

	s.AccessTokenPublicKey = ed25519.PublicKey(publicKey)

	s.CacheURI = getEnv("CACHE_URI")
	s.CachePassword = getEnv("CACHE_PASSWORD")
	s.CacheDB = cacheDB

	s.MailerEmailPassword = getEnv("MAILER_EMAIL_PASSWORD")
	s.MailerEmail = getEnv("MAILER_EMAIL")

	s.SentryDSN = getEnv("SENTRY_DSN")

	if err := newValidator().Struct(s); err != nil {
		return s, err
	}

	return s, nil
}

func loadSecrets() {
	configLogger.Info("Loading environment variables...", nil)

	// .env is optional, variables may be already set by environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		configLogger.Fatal("Failed to load .env file", err.Error(), nil)
	}

	s, err := readSecrets()
	if err != nil {
		configLogger.Fatal("Failed to load environment variables", err.Error(), nil)
	}

	Secret = s

	configLogger.Info("Loading environment variables: OK", nil)
}
