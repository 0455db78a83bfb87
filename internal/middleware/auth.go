package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"course-hub-api/internal/domain"
	"course-hub-api/internal/response"
)

// actorKey is the gin context key the authenticated actor is stored under.
const actorKey = "actor"

// Auth returns a middleware that validates a Bearer JWT signed with the
// shared HMAC secret and stores the resulting actor in the gin context.
// Requests without a valid token never reach the handler.
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "Invalid token claims")
			c.Abort()
			return
		}

		actor, ok := actorFromClaims(claims)
		if !ok {
			response.SendError(c, http.StatusUnauthorized, response.ErrCodeUnauthorized, "User ID not found in token")
			c.Abort()
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// actorFromClaims extracts the actor identity from token claims. The user id
// may arrive as user_id or sub; the role claim is optional and defaults to
// member.
func actorFromClaims(claims jwt.MapClaims) (domain.Actor, bool) {
	var id string
	if uid, ok := claims["user_id"].(string); ok && uid != "" {
		id = uid
	} else if sub, ok := claims["sub"].(string); ok && sub != "" {
		id = sub
	} else {
		return domain.Actor{}, false
	}

	role := domain.RoleMember
	if r, ok := claims["role"].(string); ok && r == domain.RoleAdmin {
		role = domain.RoleAdmin
	}

	return domain.Actor{ID: id, Role: role}, true
}

// SetActor stores the authenticated actor in the gin context.
func SetActor(c *gin.Context, actor domain.Actor) {
	c.Set(actorKey, actor)
}

// GetActor returns the authenticated actor from the gin context. The second
// return is false when the request never passed the Auth middleware.
func GetActor(c *gin.Context) (domain.Actor, bool) {
	v, exists := c.Get(actorKey)
	if !exists {
		return domain.Actor{}, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}
