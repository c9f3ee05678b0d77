package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"member-portal/internal/pkg/jwt"
	"member-portal/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TokenValidator decodes a bearer token into member claims.
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

type AuthMiddleware struct {
	tokenValidator TokenValidator
}

const (
	ctxMemberIDKey    = "member_id"
	ctxMemberEmailKey = "member_email"
	ctxOrgIDKey       = "organization_id"
)

func NewAuthMiddleware(tokenValidator TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxMemberIDKey, claims.MemberID)
		c.Set(ctxMemberEmailKey, claims.Email)
		if claims.OrganizationID != nil {
			c.Set(ctxOrgIDKey, *claims.OrganizationID)
		}
		c.Set("jwt_claims", map[string]any{
			"member_id":    claims.MemberID.String(),
			"member_email": claims.Email,
		})
		c.Next()
	}
}

// GetMember assembles the authenticated member from context. Returns
// false when called outside RequireAuth.
func GetMember(c *gin.Context) (shared.Member, bool) {
	rawID, exists := c.Get(ctxMemberIDKey)
	if !exists {
		return shared.Member{}, false
	}
	id, ok := rawID.(uuid.UUID)
	if !ok {
		return shared.Member{}, false
	}

	email, _ := c.Get(ctxMemberEmailKey)
	emailStr, ok := email.(string)
	if !ok || emailStr == "" {
		return shared.Member{}, false
	}

	member := shared.Member{ID: id, Email: emailStr}
	if rawOrg, hasOrg := c.Get(ctxOrgIDKey); hasOrg {
		if orgID, orgOK := rawOrg.(uuid.UUID); orgOK {
			member.OrganizationID = &orgID
		}
	}
	return member, true
}
