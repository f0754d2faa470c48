package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/fynbooks/fynbooks_backend/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = contextKey("identity")

// Identity is the resolved request principal the core consumes. The company a
// caller belongs to and their role arrive as token claims; the core never
// performs token verification beyond this thin layer.
type Identity struct {
	CompanyID string
	UserID    string
	Role      domain.Role
}

// Actor converts the identity to the domain actor shape used by services.
func (i Identity) Actor() domain.Actor {
	return domain.Actor{UserID: i.UserID, Role: i.Role, Type: domain.ActorUser}
}

type identityClaims struct {
	CompanyID string `json:"companyID"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// IdentityMiddleware validates the bearer token and resolves
// {companyID, userID, role} into the request context.
func IdentityMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &identityClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*identityClaims)
		if !ok || !token.Valid || claims.Subject == "" || claims.CompanyID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		identity := Identity{
			CompanyID: claims.CompanyID,
			UserID:    claims.Subject,
			Role:      domain.Role(claims.Role),
		}

		ctx := context.WithValue(c.Request.Context(), identityKey, identity)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetIdentityFromCtx retrieves the resolved identity from the context.
func GetIdentityFromCtx(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}
