package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/JonnyWalker81/energy/backend/internal/apierror"
	"github.com/JonnyWalker81/energy/backend/internal/logger"
)

// OwnerIDKey is the gin context key holding the authenticated owner.
const OwnerIDKey = "owner_id"

// AuthConfig holds the HS256 verification parameters.
type AuthConfig struct {
	Secret string
	Issuer string // empty skips the issuer check
}

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid bearer token")
)

// parseOwner validates token and returns its subject, which is the owner ID.
func parseOwner(token string, cfg AuthConfig) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingToken
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("%w: missing subject", errInvalidToken)
	}
	return subject, nil
}

// Auth middleware to verify bearer JWTs. The token subject becomes the
// owner every downstream read and write is scoped to.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		log := logger.Ctx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(authHeader, " ")
		if authHeader == "" || !ok || !strings.EqualFold(scheme, "Bearer") {
			log.Debug("authentication failed: missing or malformed authorization header")
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		ownerID, err := parseOwner(token, cfg)
		if err != nil {
			log.Warn("authentication failed: token verification error", logger.Err(err))
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(apierror.GetRequestID(c)))
			c.Abort()
			return
		}

		c.Set(OwnerIDKey, ownerID)
		c.Request = c.Request.WithContext(logger.WithOwnerID(c.Request.Context(), ownerID))

		c.Next()
	}
}
