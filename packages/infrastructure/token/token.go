package token

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"hoa/packages/common/config"
	Error "hoa/packages/common/errors"
	"hoa/packages/common/logger"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var tokenLogger = logger.NewSource("TOKEN", logger.Default)

// Access tokens are issued by the identity service (RFC 9068),
// this service only verifies them.
type Claims struct {
	Roles []string `json:"roles"`
	Email string   `json:"email"`

	jwt.RegisteredClaims
}

// Returns token subject as user id.
func (c *Claims) UserID() (uuid.UUID, *Error.Status) {
	id, err := uuid.Parse(c.Subject)
	if err != nil {
		return uuid.Nil, TokenInvalidSubject
	}
	return id, nil
}

func (c *Claims) HasRole(role string) bool {
	return slices.Contains(c.Roles, role)
}

var jwtParserOptions = []jwt.ParserOption{
	jwt.WithLeeway(5 * time.Second),
	jwt.WithIssuedAt(),
	jwt.WithExpirationRequired(),
	jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
}

func ed25519KeyFunc(key ed25519.PublicKey) func(token *jwt.Token) (any, error) {
	return func(token *jwt.Token) (any, error) {
		// RFC 9068 p2.1
		if _, ok := token.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	}
}

// Parses and validates given token.
// If issuer isn't empty, token must be issued by it.
func ParseSignedToken(tokenStr string, key ed25519.PublicKey, issuer string) (*Claims, *Error.Status) {
	if tokenStr == "" {
		return nil, TokenMissing
	}

	claims := &Claims{}

	opts := jwtParserOptions
	if issuer != "" {
		opts = append(slices.Clone(opts), jwt.WithIssuer(issuer))
	}

	_, err := jwt.ParseWithClaims(tokenStr, claims, ed25519KeyFunc(key), opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, TokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, TokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
			return nil, TokenNotValidYet
		case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, TokenInvalidSignature
		case errors.Is(err, jwt.ErrTokenInvalidIssuer):
			return nil, TokenIssuerMismatch
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return nil, TokenMissingRequiredClaims
		default:
			tokenLogger.Error("Failed to parse signed token", err.Error(), nil)
			return nil, TokenMalformed
		}
	}

	// RFC 9068 p2.2
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, TokenMissingRequiredClaims
	}

	return claims, nil
}

// Parses access token using public key and issuer from config.
func ParseAccessToken(tokenStr string) (*Claims, *Error.Status) {
	return ParseSignedToken(tokenStr, config.Secret.AccessTokenPublicKey, config.Auth.Issuer)
}
