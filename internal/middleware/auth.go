package middleware

import (
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"tobacco/internal/model"
	"tobacco/internal/repository"
	"tobacco/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const currentUserKey = "currentUser"

// TokenTTL is the lifetime of issued bearer tokens.
const TokenTTL = 24 * time.Hour

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only, DO NOT use in production
	}
	return []byte(secret)
}

// GenerateToken issues an HS256 bearer token for the user.
func GenerateToken(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"username": user.Username,
		"iat":      now.Unix(),
		"exp":      now.Add(TokenTTL).Unix(),
	})
	return token.SignedString(GetJWTSecret())
}

// Authenticate resolves the acting user from either HTTP Basic credentials
// or a Bearer token and stores the full user row (authorities and groups
// preloaded) on the request context. Soft-deleted users cannot
// authenticate.
func Authenticate(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization is missing")
			return
		}

		scheme, credentials, found := strings.Cut(authHeader, " ")
		if !found {
			abortUnauthorized(c, "Invalid authorization format")
			return
		}

		var user *model.User
		switch scheme {
		case "Basic":
			user = basicAuth(c, users, credentials)
		case "Bearer":
			user = bearerAuth(c, users, credentials)
		default:
			abortUnauthorized(c, "Unsupported authorization scheme")
			return
		}
		if user == nil {
			return // aborted inside the scheme handler
		}
		if user.Deleted {
			abortUnauthorized(c, "Account is disabled")
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

func basicAuth(c *gin.Context, users repository.UserRepository, credentials string) *model.User {
	decoded, err := base64.StdEncoding.DecodeString(credentials)
	if err != nil {
		abortUnauthorized(c, "Invalid basic credentials")
		return nil
	}
	username, password, found := strings.Cut(string(decoded), ":")
	if !found {
		abortUnauthorized(c, "Invalid basic credentials")
		return nil
	}

	user, err := users.GetByUsername(c.Request.Context(), username)
	if err != nil {
		abortUnauthorized(c, "Invalid username or password")
		return nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		abortUnauthorized(c, "Invalid username or password")
		return nil
	}
	return user
}

func bearerAuth(c *gin.Context, users repository.UserRepository, tokenString string) *model.User {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil || !token.Valid {
		abortUnauthorized(c, "Invalid token")
		return nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		abortUnauthorized(c, "Invalid token claims")
		return nil
	}
	subject, ok := claims["sub"].(string)
	if !ok {
		abortUnauthorized(c, "Invalid token claims")
		return nil
	}
	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		abortUnauthorized(c, "Invalid token claims")
		return nil
	}

	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		abortUnauthorized(c, "Unknown user")
		return nil
	}
	return user
}

// CurrentUser returns the authenticated user set by Authenticate, nil when
// the middleware did not run.
func CurrentUser(c *gin.Context) *model.User {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return nil
	}
	user, _ := value.(*model.User)
	return user
}

// RequireAuthority guards a route group: the authenticated user must hold
// at least one of the given authority tags.
func RequireAuthority(authorities ...model.Authority) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			abortUnauthorized(c, "Not logged in")
			return
		}
		if !user.HasAnyAuthority(authorities...) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: insufficient permissions"))
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Basic realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, message))
}
