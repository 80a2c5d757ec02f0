package paging

import (
	"strconv"
)

// Invalid paging configuration. Must be detected on startup,
// before any request is served.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return "invalid paging configuration: " + e.Setting + " " + e.Reason
}

type Config struct {
	DefaultPageSize int
	MaxPageSize     int
}

func NewConfig(defaultPageSize int, maxPageSize int) (*Config, error) {
	c := &Config{
		DefaultPageSize: defaultPageSize,
		MaxPageSize:     maxPageSize,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Config) Validate() error {
	if c.DefaultPageSize <= 0 {
		return &ConfigurationError{
			Setting: "default page size",
			Reason:  "must be positive, got " + strconv.Itoa(c.DefaultPageSize),
		}
	}
	if c.MaxPageSize <= 0 {
		return &ConfigurationError{
			Setting: "max page size",
			Reason:  "must be positive, got " + strconv.Itoa(c.MaxPageSize),
		}
	}
	if c.DefaultPageSize > c.MaxPageSize {
		return &ConfigurationError{
			Setting: "default page size",
			Reason: "can't be greater than max page size (" +
				strconv.Itoa(c.DefaultPageSize) + " > " + strconv.Itoa(c.MaxPageSize) + ")",
		}
	}
	return nil
}

// Returns effective page size for the requested one.
// Unset (zero or negative) and too large sizes fall back to default page size.
func (c *Config) PageSize(requested int) int {
	if requested <= 0 || requested > c.MaxPageSize {
		return c.DefaultPageSize
	}
	return requested
}
