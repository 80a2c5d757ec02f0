package api

import "hoa/packages/common/config"

// Version prefix of all API routes.
const Version = "/v1"

// Returns auto generated base URL of this service (based on config)
//
// Example: http://localhost:1234
func GetBaseURL() string {
	scheme := "http"
	if config.HTTP.Secured {
		scheme = "https"
	}

	return scheme + "://" + config.HTTP.Domain + ":" + config.HTTP.Port
}

// Returns absolute URL of the versioned API path, e.g. "/meetings" -> "http://localhost:1234/v1/meetings"
func URL(path string) string {
	return GetBaseURL() + Version + path
}
