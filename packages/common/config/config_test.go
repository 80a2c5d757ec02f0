package config

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"hoa/packages/core/paging"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
db-query-timeout: 5s
db-min-conns: 2
db-max-conns: 10
db-skip-post-connection: false
db-migrations-path: ./migrations
domain: localhost
http-secured: false
http-port: "8080"
http-allowed-origins: ["http://localhost:3000"]
http-rate-limit: 20
http-rate-limit-burst: 40
paging-default-page-size: 5
paging-max-page-size: 10
paging-overrides:
  comment:
    default-page-size: 20
    max-page-size: 100
  event:
    max-page-size: 50
board-role: board
access-token-issuer: ""
cache-socket-timeout: 1s
cache-operation-timeout: 500ms
cache-ttl: 1m
debug-mode: false
debug-log-db-queries: false
show-logs: true
trace-logs: false
service-id: hoa-1
logs-dir: ./logs
community-name: Oak Hills
smtp-host: smtp.example.com
smtp-port: 587
smtp-send-timeout: 10s
email-queue-size: 100
`

func TestParse(t *testing.T) {
	c, err := parse([]byte(validConfig))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, c.dbConfig.QueryTimeout())
	assert.Equal(t, 500*time.Millisecond, c.cacheConfig.OperationTimeout())
	assert.Equal(t, []string{"http://localhost:3000"}, c.AllowedOrigins)
	assert.Equal(t, "Oak Hills", c.CommunityName)

	cases := []struct {
		entity string
		def    int
		max    int
	}{
		{"post", 5, 10},
		{"comment", 20, 100},
		{"Comment", 20, 100},
		{"event", 5, 50},
	}

	for _, tc := range cases {
		pc, err := c.pagingConfig.For(tc.entity)
		require.NoError(t, err)
		assert.Equal(t, tc.def, pc.DefaultPageSize, tc.entity)
		assert.Equal(t, tc.max, pc.MaxPageSize, tc.entity)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		replace [2]string
	}{
		{"invalid duration", [2]string{"db-query-timeout: 5s", "db-query-timeout: soon"}},
		{"missing required", [2]string{"board-role: board", ""}},
		{"max conns less than min", [2]string{"db-max-conns: 10", "db-max-conns: 1"}},
		{"default page size greater than max", [2]string{"paging-default-page-size: 5", "paging-default-page-size: 50"}},
		{"missing page size", [2]string{"paging-max-page-size: 10", "paging-max-page-size: 0"}},
		{"invalid override", [2]string{"max-page-size: 100", "max-page-size: 10"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			raw := strings.Replace(validConfig, c.replace[0], c.replace[1], 1)

			_, err := parse([]byte(raw))
			assert.Error(t, err)
		})
	}

	t.Run("paging errors are configuration errors", func(t *testing.T) {
		raw := strings.Replace(validConfig, "paging-default-page-size: 5", "paging-default-page-size: 50", 1)

		_, err := parse([]byte(raw))

		var configErr *paging.ConfigurationError
		assert.True(t, errors.As(err, &configErr))
	})
}

func setEnv(t *testing.T, overrides map[string]string) {
	t.Helper()

	publicKey, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	env := map[string]string{
		"PRIMARY_DB_HOST":         "localhost",
		"PRIMARY_DB_PORT":         "5432",
		"PRIMARY_DB_NAME":         "hoa",
		"PRIMARY_DB_USER":         "hoa",
		"PRIMARY_DB_PASSWORD":     "secret",
		"REPLICA_DB_HOST":         "localhost",
		"REPLICA_DB_PORT":         "5433",
		"REPLICA_DB_NAME":         "hoa",
		"REPLICA_DB_USER":         "hoa",
		"REPLICA_DB_PASSWORD":     "secret",
		"ACCESS_TOKEN_PUBLIC_KEY": base64.StdEncoding.EncodeToString(publicKey),
		"CACHE_URI":               "localhost:6379",
		"CACHE_DB":                "0",
		"MAILER_EMAIL_PASSWORD":   "secret",
		"MAILER_EMAIL":            "board@example.com",
	}
	for k, v := range overrides {
		env[k] = v
	}
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestReadSecrets(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		setEnv(t, nil)

		s, err := readSecrets()
		require.NoError(t, err)
		assert.Len(t, s.AccessTokenPublicKey, ed25519.PublicKeySize)
		assert.Equal(t, "board@example.com", s.MailerEmail)
	})

	t.Run("invalid public key", func(t *testing.T) {
		setEnv(t, map[string]string{"ACCESS_TOKEN_PUBLIC_KEY": base64.StdEncoding.EncodeToString([]byte("short"))})

		_, err := readSecrets()
		assert.Error(t, err)
	})

	t.Run("invalid cache db", func(t *testing.T) {
		setEnv(t, map[string]string{"CACHE_DB": "zero"})

		_, err := readSecrets()
		assert.Error(t, err)
	})
}
