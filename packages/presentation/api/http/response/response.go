package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

var FailedToReadRequestBody = echo.NewHTTPError(
	http.StatusBadRequest,
	"Failed to read request body",
)

var FailedToDecodeRequestBody = echo.NewHTTPError(
	http.StatusBadRequest,
	"Failed to decode request body",
)

type Message struct {
	Message string `json:"message"`
}

type Error struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Returned on invalid filters, sorts or paging parameters.
type ParseError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	// Query parameter, e.g. "filters" or "pageSize"
	Param string `json:"param"`
	Field string `json:"field,omitempty"`
	// Part of the parameter which failed to parse
	Token    string   `json:"token,omitempty"`
	Expected []string `json:"expected,omitempty"`
}
