package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/reserva-top/internal/config"
	domain "github.com/BruksfildServices01/reserva-top/internal/domain/appointment"
	"github.com/BruksfildServices01/reserva-top/internal/models"
)

const (
	ContextUserID         = "userID"
	ContextProfessionalID = "professionalID"
	ContextUserRole       = "userRole"
)

const tokenTTL = 24 * time.Hour

// IssueToken signs the claims AuthMiddleware expects.
func IssueToken(cfg *config.Config, user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(tokenTTL).Unix(),
	}
	if user.ProfessionalID != nil {
		claims["professionalId"] = *user.ProfessionalID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		userID, ok := claims["sub"].(float64)
		role, _ := claims["role"].(string)
		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		// admins have no professional
		if pid, ok := claims["professionalId"].(float64); ok {
			c.Set(ContextProfessionalID, uint(pid))
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)

		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextUserRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ProfessionalLookup is satisfied by the appointment repository.
type ProfessionalLookup interface {
	GetProfessionalByID(ctx context.Context, id uint) (*models.Professional, error)
}

// RequireProfessional rejects tokens that carry no professional id and
// re-reads the status, so a block applies before the token expires.
func RequireProfessional(lookup ProfessionalLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		professionalID := c.GetUint(ContextProfessionalID)
		if professionalID == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "professional_only"})
			return
		}

		professional, err := lookup.GetProfessionalByID(c.Request.Context(), professionalID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "professional_not_found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_professional"})
			return
		}
		if professional.Status == models.ProfessionalBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "professional_blocked"})
			return
		}

		c.Next()
	}
}
