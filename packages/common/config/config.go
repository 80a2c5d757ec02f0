package config

import (
	"errors"
	"hoa/packages/common/logger"
	"hoa/packages/core/paging"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"gopkg.in/yaml.v3"
)

var configLogger = logger.NewSource("CONFIG", logger.Default)

// Wrapper for time.ParseDuration. Panics on error.
func parseDuration(raw string) time.Duration {
	v, e := time.ParseDuration(raw)

	if e != nil {
		panic(e)
	}

	return v
}

type dbConfig struct {
	RawQueryTimeout    string `yaml:"db-query-timeout" validate:"required,duration"`
	MinConns           int32  `yaml:"db-min-conns" validate:"required,min=1"`
	MaxConns           int32  `yaml:"db-max-conns" validate:"required,gtefield=MinConns"`
	SkipPostConnection bool   `yaml:"db-skip-post-connection" validate:"exists"`
	MigrationsPath     string `yaml:"db-migrations-path" validate:"required"`
}

func (c *dbConfig) QueryTimeout() time.Duration {
	return parseDuration(c.RawQueryTimeout)
}

type httpServerConfig struct {
	Domain         string   `yaml:"domain" validate:"required"`
	Secured        bool     `yaml:"http-secured" validate:"exists"`
	Port           string   `yaml:"http-port" validate:"required"`
	AllowedOrigins []string `yaml:"http-allowed-origins" validate:"required,min=1"`
	// Requests per second per client, zero disables rate limiting.
	RateLimit      float64 `yaml:"http-rate-limit" validate:"min=0"`
	RateLimitBurst int     `yaml:"http-rate-limit-burst" validate:"min=0"`
}

type pageSizes struct {
	Default int `yaml:"default-page-size" validate:"exists"`
	Max     int `yaml:"max-page-size" validate:"exists"`
}

type pagingConfig struct {
	DefaultPageSize int `yaml:"paging-default-page-size" validate:"exists"`
	MaxPageSize     int `yaml:"paging-max-page-size" validate:"exists"`
	// Per-entity page sizes, keys are entity names (e.g. "event").
	Overrides map[string]pageSizes `yaml:"paging-overrides"`
}

// Returns paging config of the entity.
// Overrides replace only sizes that are set (non-zero).
func (c *pagingConfig) For(entity string) (*paging.Config, error) {
	defaultPageSize, maxPageSize := c.DefaultPageSize, c.MaxPageSize

	if o, ok := c.Overrides[strings.ToLower(entity)]; ok {
		if o.Default != 0 {
			defaultPageSize = o.Default
		}
		if o.Max != 0 {
			maxPageSize = o.Max
		}
	}

	return paging.NewConfig(defaultPageSize, maxPageSize)
}

func (c *pagingConfig) validate() error {
	if _, err := c.For(""); err != nil {
		return err
	}
	for entity := range c.Overrides {
		if _, err := c.For(entity); err != nil {
			return errors.New(entity + ": " + err.Error())
		}
	}
	return nil
}

type authConfig struct {
	// Value of "roles" claim, which grants board member permissions.
	BoardRole string `yaml:"board-role" validate:"required"`
	Issuer    string `yaml:"access-token-issuer" validate:"exists"`
}

type cacheConfig struct {
	RawSocketTimeout    string `yaml:"cache-socket-timeout" validate:"required,duration"`
	RawOperationTimeout string `yaml:"cache-operation-timeout" validate:"required,duration"`
	RawTTL              string `yaml:"cache-ttl" validate:"required,duration"`
}

func (c *cacheConfig) SocketTimeout() time.Duration {
	return parseDuration(c.RawSocketTimeout)
}

func (c *cacheConfig) OperationTimeout() time.Duration {
	return parseDuration(c.RawOperationTimeout)
}

func (c *cacheConfig) TTL() time.Duration {
	return parseDuration(c.RawTTL)
}

type debugConfig struct {
	Enabled      bool `yaml:"debug-mode" validate:"exists"`
	LogDBQueries bool `yaml:"debug-log-db-queries" validate:"exists"`
}

type appConfig struct {
	ShowLogs         bool   `yaml:"show-logs" validate:"exists"`
	TraceLogsEnabled bool   `yaml:"trace-logs" validate:"exists"`
	ServiceID        string `yaml:"service-id" validate:"required"`
	LogsDir          string `yaml:"logs-dir" validate:"required"`
	CommunityName    string `yaml:"community-name" validate:"required"`
}

type emailConfig struct {
	SmtpHost       string `yaml:"smtp-host" validate:"required"`
	SmtpPort       int    `yaml:"smtp-port" validate:"required"`
	RawSendTimeout string `yaml:"smtp-send-timeout" validate:"required,duration"`
	// Size of the queue of the pending emails.
	QueueSize int `yaml:"email-queue-size" validate:"required,min=1"`
}

func (c *emailConfig) SendTimeout() time.Duration {
	return parseDuration(c.RawSendTimeout)
}

type configs struct {
	dbConfig         `yaml:",inline"`
	httpServerConfig `yaml:",inline"`
	pagingConfig     `yaml:",inline"`
	authConfig       `yaml:",inline"`
	cacheConfig      `yaml:",inline"`
	debugConfig      `yaml:",inline"`
	appConfig        `yaml:",inline"`
	emailConfig      `yaml:",inline"`
}

var DB *dbConfig
var HTTP *httpServerConfig
var Paging *pagingConfig
var Auth *authConfig
var Cache *cacheConfig
var Debug *debugConfig
var App *appConfig
var Email *emailConfig

var isInit bool = false

func newValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterValidation("exists", func(fl validator.FieldLevel) bool {
		return true // Always pass (just ensure that the field exists)
	})

	validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		_, err := time.ParseDuration(fl.Field().String())
		return err == nil
	})

	return validate
}

// Parses and validates raw YAML config.
func parse(raw []byte) (*configs, error) {
	dest := new(configs)

	if err := yaml.Unmarshal(raw, dest); err != nil {
		return nil, err
	}

	if err := newValidator().Struct(dest); err != nil {
		return nil, err
	}

	if err := dest.pagingConfig.validate(); err != nil {
		return nil, err
	}

	return dest, nil
}

func loadConfig(path string) *configs {
	configLogger.Info("Reading config file...", nil)

	rawConfig, err := os.ReadFile(path)
	if err != nil {
		configLogger.Fatal("Failed to read config file", err.Error(), nil)
	}

	configLogger.Info("Reading config file: OK", nil)

	configLogger.Info("Parsing config file...", nil)

	dest, err := parse(rawConfig)
	if err != nil {
		configLogger.Fatal("Failed to parse config file", err.Error(), nil)
	}

	configLogger.Info("Parsing config file: OK", nil)

	return dest
}

func set(c *configs) {
	DB = &c.dbConfig
	HTTP = &c.httpServerConfig
	Paging = &c.pagingConfig
	Auth = &c.authConfig
	Cache = &c.cacheConfig
	Debug = &c.debugConfig
	App = &c.appConfig
	Email = &c.emailConfig
}

// Loads config from the file at path and secrets from environment (and .env file if it exists).
func Init(path string) {
	if isInit {
		configLogger.Fatal("Failed to initialize config", "Config already initialized", nil)
	}

	configLogger.Info("Initializing...", nil)

	set(loadConfig(path))
	loadSecrets()

	jwt.RegisterSigningMethod(jwt.SigningMethodEdDSA.Alg(), func() jwt.SigningMethod { return jwt.SigningMethodEdDSA })

	configLogger.Info("Initializing: OK", nil)

	isInit = true
}
