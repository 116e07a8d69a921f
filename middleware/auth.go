package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	jwtmiddleware "github.com/auth0/go-jwt-middleware/v2"
	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"

	"github.com/stridefoot/footwear-erp-api/config"
	"github.com/stridefoot/footwear-erp-api/logger"
)

const (
	// SystemActor is recorded on mutations when no identity is configured
	SystemActor = "system"

	// ScopeManageUsers guards user provisioning when tokens are validated
	ScopeManageUsers = "manage:users"

	actorKey           = "actor"
	userIDKey          = "user_id"
	accessTokenKey     = "access_token"
	validatedClaimsKey = "validated_claims"
)

// CustomClaims contains custom data we want from the token.
type CustomClaims struct {
	Scope string `json:"scope"`
}

// Validate satisfies validator.CustomClaims; there is nothing to check.
func (c CustomClaims) Validate(ctx context.Context) error {
	return nil
}

// HasScope checks whether our claims have a specific scope.
func (c CustomClaims) HasScope(expectedScope string) bool {
	result := strings.Split(c.Scope, " ")
	for i := range result {
		if result[i] == expectedScope {
			return true
		}
	}

	return false
}

// EnsureValidToken validates the bearer JWT against the Auth0 tenant in cfg.
// The token subject becomes the request actor.
func EnsureValidToken(cfg *config.Config, log *logger.Logger) (gin.HandlerFunc, error) {
	issuerURL, err := url.Parse("https://" + cfg.Auth0Domain + "/")
	if err != nil {
		return nil, fmt.Errorf("failed to parse the issuer url: %w", err)
	}

	provider := jwks.NewCachingProvider(issuerURL, 5*time.Minute)

	jwtValidator, err := validator.New(
		provider.KeyFunc,
		validator.RS256,
		issuerURL.String(),
		[]string{cfg.Auth0Audience},
		validator.WithCustomClaims(
			func() validator.CustomClaims {
				return &CustomClaims{}
			},
		),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to set up the jwt validator: %w", err)
	}

	return tokenMiddleware(jwtValidator.ValidateToken, log), nil
}

// tokenMiddleware adapts a jwtmiddleware.ValidateToken func to gin
func tokenMiddleware(validate jwtmiddleware.ValidateToken, log *logger.Logger) gin.HandlerFunc {
	errorHandler := func(w http.ResponseWriter, r *http.Request, err error) {
		log.Warn("Encountered error while validating JWT", "error", err, "path", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if _, writeErr := w.Write([]byte(`{"success":false,"error":{"code":"INVALID_TOKEN","message":"Failed to validate JWT."}}`)); writeErr != nil {
			log.Error("Failed to write error response", "error", writeErr)
		}
	}

	middleware := jwtmiddleware.New(
		validate,
		jwtmiddleware.WithErrorHandler(errorHandler),
	)

	return func(c *gin.Context) {
		called := false
		var handler http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
			called = true
			claims := r.Context().Value(jwtmiddleware.ContextKey{}).(*validator.ValidatedClaims)

			token, _ := jwtmiddleware.AuthHeaderTokenExtractor(r)

			c.Request = r
			c.Set(userIDKey, claims.RegisteredClaims.Subject)
			c.Set(actorKey, claims.RegisteredClaims.Subject)
			c.Set(accessTokenKey, token)
			c.Set(validatedClaimsKey, claims)

			c.Next()
		}

		middleware.CheckJWT(handler).ServeHTTP(c.Writer, c.Request)
		if !called {
			c.Abort()
		}
	}
}

// StaticActor attributes every request to a fixed actor. It is used when no
// identity provider is configured.
func StaticActor(actor string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns who is performing the request, falling back to SystemActor
func ActorFrom(c *gin.Context) string {
	if actor := c.GetString(actorKey); actor != "" {
		return actor
	}
	return SystemActor
}

// GetUserID extracts the token subject from the Gin context
func GetUserID(c *gin.Context) (string, error) {
	userID, exists := c.Get(userIDKey)
	if !exists {
		return "", &AuthError{Code: "MISSING_USER_ID", Message: "User ID not found in context"}
	}

	userIDStr, ok := userID.(string)
	if !ok {
		return "", &AuthError{Code: "INVALID_USER_ID", Message: "User ID is not a string"}
	}

	return userIDStr, nil
}

// GetAccessToken returns the raw bearer token of a validated request
func GetAccessToken(c *gin.Context) (string, error) {
	token := c.GetString(accessTokenKey)
	if token == "" {
		return "", &AuthError{Code: "MISSING_TOKEN", Message: "Access token not found in context"}
	}
	return token, nil
}

// GetClaims extracts the validated JWT claims from the Gin context
func GetClaims(c *gin.Context) (*validator.ValidatedClaims, error) {
	claims, exists := c.Get(validatedClaimsKey)
	if !exists {
		return nil, &AuthError{Code: "MISSING_CLAIMS", Message: "Claims not found in context"}
	}

	validatedClaims, ok := claims.(*validator.ValidatedClaims)
	if !ok {
		return nil, &AuthError{Code: "INVALID_CLAIMS", Message: "Claims are not in the expected format"}
	}

	return validatedClaims, nil
}

// RequireScope is a middleware that checks if the token has a specific scope
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetClaims(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "MISSING_CLAIMS",
					"message": "Could not retrieve token claims",
				},
			})
			c.Abort()
			return
		}

		customClaims, ok := claims.CustomClaims.(*CustomClaims)
		if !ok || !customClaims.HasScope(scope) {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INSUFFICIENT_SCOPE",
					"message": "Insufficient permissions to access this resource",
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// AuthError represents an authentication error
type AuthError struct {
	Code    string
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}
