package controller

import (
	Error "hoa/packages/common/errors"
	"hoa/packages/core/sieve"

	"github.com/labstack/echo/v4"
)

func ConvertErrorStatusToHTTP(err *Error.Status) *echo.HTTPError {
	return echo.NewHTTPError(err.Status(), err.Error())
}

// Converts errors of data sources and repositories.
// Parse errors are returned as is, so error handler can describe them.
func convertError(err error) error {
	if _, ok := sieve.IsParseError(err); ok {
		return err
	}
	return ConvertErrorStatusToHTTP(Error.ToStatus(err))
}
