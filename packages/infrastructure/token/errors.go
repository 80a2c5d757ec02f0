package token

import (
	Error "hoa/packages/common/errors"
	"net/http"
)

// According to RFC 7235 (https://datatracker.ietf.org/doc/html/rfc7235#section-3.1)
// 401 response status code indicates that the request lacks VALID authentication credentials,
// no matter if token was invalid, missing or auth credentials are invalid.

var TokenMissing = Error.NewStatusError(
	"Authorization token is missing",
	http.StatusUnauthorized,
)

var TokenMalformed = Error.NewStatusError(
	"Token is malformed or has invalid format",
	http.StatusUnauthorized,
)

var TokenExpired = Error.NewStatusError(
	"Token expired",
	http.StatusUnauthorized,
)

var TokenNotValidYet = Error.NewStatusError(
	"Token is not valid yet",
	http.StatusUnauthorized,
)

var TokenInvalidSignature = Error.NewStatusError(
	"Invalid Token Signature",
	http.StatusUnauthorized,
)

var TokenIssuerMismatch = Error.NewStatusError(
	"Token was issued by unknown issuer",
	http.StatusUnauthorized,
)

var TokenMissingRequiredClaims = Error.NewStatusError(
	"At least one of required token claims is missing",
	http.StatusUnauthorized,
)

var TokenInvalidSubject = Error.NewStatusError(
	"Token subject is not a valid user id",
	http.StatusUnauthorized,
)

func IsTokenError(err *Error.Status) bool {
	return err == TokenMissing ||
		err == TokenMalformed ||
		err == TokenExpired ||
		err == TokenNotValidYet ||
		err == TokenInvalidSignature ||
		err == TokenIssuerMismatch ||
		err == TokenMissingRequiredClaims ||
		err == TokenInvalidSubject
}
