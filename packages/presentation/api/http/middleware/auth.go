package middleware

import (
	"crypto/ed25519"
	Error "hoa/packages/common/errors"
	"hoa/packages/infrastructure/token"
	"hoa/packages/presentation/api/http/request"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	claimsKey = "access_token_claims"
	userIDKey = "user_id"
)

var invalidAuthorizationHeaderFormat = echo.NewHTTPError(
	http.StatusUnauthorized,
	"Authorization header has invalid format. Expected token bearer format. ('Bearer <token>')",
)

func applyWWWAuthenticate(ctx echo.Context, errCode string, description string) {
	ctx.Response().Header().Set(
		echo.HeaderWWWAuthenticate,
		`Bearer realm="api", error="`+errCode+`", error_description="`+description+`"`,
	)
}

func handleTokenError(ctx echo.Context, err *Error.Status) *echo.HTTPError {
	switch {
	case err == token.TokenMissing:
		applyWWWAuthenticate(ctx, "invalid_request", "No token provided")
	case err == token.TokenExpired:
		applyWWWAuthenticate(ctx, "expired_token", err.Error())
	case token.IsTokenError(err):
		applyWWWAuthenticate(ctx, "invalid_token", err.Error())
	}

	return echo.NewHTTPError(err.Status(), err.Error())
}

// Returns bearer token from Authorization header.
func extractBearer(header string) (string, *echo.HTTPError) {
	if strings.TrimSpace(header) == "" {
		return "", nil
	}

	tokenStr, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(tokenStr) == "" || strings.Contains(strings.TrimSpace(tokenStr), " ") {
		return "", invalidAuthorizationHeaderFormat
	}

	return strings.TrimSpace(tokenStr), nil
}

// Allows access only for requests with valid access token.
// Token must be signed by the key and issued by the issuer (if it's not empty).
func Authenticate(key ed25519.PublicKey, issuer string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			reqMeta := request.FindMetadata(ctx)

			log.Trace("Extracting access token from the request...", reqMeta)

			tokenStr, httpErr := extractBearer(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if httpErr != nil {
				applyWWWAuthenticate(ctx, "invalid_request", "Malformed Authorization header")
				return httpErr
			}

			claims, err := token.ParseSignedToken(tokenStr, key, issuer)
			if err != nil {
				log.Trace("Access token rejected: "+err.Error(), reqMeta)
				return handleTokenError(ctx, err)
			}

			userID, err := claims.UserID()
			if err != nil {
				return handleTokenError(ctx, err)
			}

			ctx.Set(claimsKey, claims)
			ctx.Set(userIDKey, userID)
			request.SetUserID(ctx, userID.String())

			log.Trace("Extracting access token from the request: OK", request.FindMetadata(ctx))

			return next(ctx)
		}
	}
}

// Allows access only for users with specified role.
// Route must be secured via Authenticate middleware.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, ok := GetClaims(ctx)
			if !ok {
				log.Error(
					"Failed to check user role",
					"Invalid usage of RequireRole middleware: route must be secured via Authenticate middleware",
					request.FindMetadata(ctx),
				)
				return echo.NewHTTPError(http.StatusInternalServerError, "Internal Server Error")
			}

			if !claims.HasRole(role) {
				log.Info("Access denied: missing role '"+role+"'", request.FindMetadata(ctx))
				return echo.NewHTTPError(http.StatusForbidden, "Only board members can perform this action")
			}

			return next(ctx)
		}
	}
}

// Returns claims of the verified access token.
func GetClaims(ctx echo.Context) (*token.Claims, bool) {
	claims, ok := ctx.Get(claimsKey).(*token.Claims)
	return claims, ok
}

// Returns id of authenticated user.
func GetUserID(ctx echo.Context) (uuid.UUID, bool) {
	id, ok := ctx.Get(userIDKey).(uuid.UUID)
	return id, ok
}
