// Package security provides cookie and bearer token authentication for the
// catalog's web pages and API
package security

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/alchemorsel/catalog/internal/infrastructure/config"
	"github.com/alchemorsel/catalog/internal/ports/inbound"
	"github.com/alchemorsel/catalog/internal/ports/outbound"
	"github.com/alchemorsel/catalog/pkg/errors"
)

const (
	issuer   = "catalog"
	audience = "catalog-web"

	// Context keys set by the authentication middleware
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextClaims   = "claims"
)

var (
	ErrMissingToken = stderrors.New("missing token")
	ErrTokenRevoked = stderrors.New("token has been revoked")
)

// Claims represents JWT claims structure
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is an issued login token
type Session struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *inbound.UserDTO `json:"user"`
}

// AuthService provides authentication and authorization services
type AuthService struct {
	cfg       config.AuthConfig
	users     inbound.UserService
	tokens    outbound.TokenStore
	logger    *zap.Logger
	jwtSecret []byte
	now       func() time.Time
}

// NewAuthService creates a new authentication service. An empty secret is
// replaced with a random one, which invalidates sessions on restart.
func NewAuthService(cfg config.AuthConfig, users inbound.UserService, tokens outbound.TokenStore, logger *zap.Logger) *AuthService {
	logger = logger.Named("auth")

	secret := cfg.JWTSecret
	if secret == "" {
		logger.Warn("No JWT secret configured, using an ephemeral one")
		secret = uuid.NewString() + uuid.NewString()
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "catalog_session"
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.JWTExpiration <= 0 {
		cfg.JWTExpiration = 24 * time.Hour
	}

	return &AuthService{
		cfg:       cfg,
		users:     users,
		tokens:    tokens,
		logger:    logger,
		jwtSecret: []byte(secret),
		now:       time.Now,
	}
}

// LoginPath is where unauthenticated page requests are sent
func (a *AuthService) LoginPath() string {
	return a.cfg.LoginPath
}

// Login checks credentials and issues a session token
func (a *AuthService) Login(ctx context.Context, cmd inbound.LoginCommand) (*Session, error) {
	user, err := a.users.Authenticate(ctx, cmd)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := a.IssueToken(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	a.logger.Info("User logged in", zap.Uint("user_id", user.ID), zap.String("username", user.Username))
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// IssueToken signs an access token for user
func (a *AuthService) IssueToken(user *inbound.UserDTO) (string, time.Time, error) {
	now := a.now()
	expiresAt := now.Add(a.cfg.JWTExpiration)
	claims := &Claims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   fmt.Sprint(user.ID),
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			NotBefore: jwt.NewNumericDate(now),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.jwtSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// ValidateToken validates and parses a JWT token and checks it was not revoked
func (a *AuthService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	revoked, err := a.tokens.IsRevoked(ctx, claims.ID)
	switch {
	case err != nil:
		a.logger.Warn("Failed to check token revocation", zap.String("jti", claims.ID), zap.Error(err))
	case revoked:
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Logout revokes tokenString for the rest of its lifetime. Invalid or
// expired tokens need no revocation and are ignored.
func (a *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := a.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil
	}

	ttl := claims.ExpiresAt.Sub(a.now())
	if err := a.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		return errors.Wrap(err, "failed to revoke token")
	}

	a.logger.Info("User logged out", zap.Uint("user_id", claims.UserID))
	return nil
}

// TokenFromRequest extracts a bearer token, falling back to the session cookie
func (a *AuthService) TokenFromRequest(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}

	cookie, err := c.Cookie(a.cfg.CookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// SetSessionCookie stores the session token in an HTTP-only cookie
func (a *AuthService) SetSessionCookie(c *gin.Context, session *Session) {
	maxAge := int(session.ExpiresAt.Sub(a.now()).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cfg.CookieName, session.Token, maxAge, "/", "", a.cfg.CookieSecure, true)
}

// ClearSessionCookie removes the session cookie
func (a *AuthService) ClearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(a.cfg.CookieName, "", -1, "/", "", a.cfg.CookieSecure, true)
}

// authenticate validates the request's token and stores the claims on the context
func (a *AuthService) authenticate(c *gin.Context) bool {
	claims, err := a.ValidateToken(c.Request.Context(), a.TokenFromRequest(c))
	if err != nil {
		if !stderrors.Is(err, ErrMissingToken) {
			a.logger.Info("Token validation failed",
				zap.String("error", err.Error()),
				zap.String("ip", c.ClientIP()),
				zap.String("user_agent", c.Request.UserAgent()),
			)
		}
		return false
	}

	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextUsername, claims.Username)
	c.Set(ContextClaims, claims)
	return true
}

// RequireAuthenticatedUser redirects anonymous page requests to the login page
func (a *AuthService) RequireAuthenticatedUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.authenticate(c) {
			c.Next()
			return
		}

		target := a.cfg.LoginPath + "?next=" + url.QueryEscape(c.Request.URL.RequestURI())
		c.Redirect(http.StatusFound, target)
		c.Abort()
	}
}

// RequireAPIUser rejects anonymous API requests with 401
func (a *AuthService) RequireAPIUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if a.authenticate(c) {
			c.Next()
			return
		}

		appErr := errors.NewUnauthorizedError("Invalid or expired token")
		c.Header("WWW-Authenticate", `Bearer realm="catalog"`)
		c.AbortWithStatusJSON(appErr.StatusCode(), errors.ToErrorResponse(appErr, c.GetString("request_id")))
	}
}

// CurrentUsername returns the authenticated username, if any
func CurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// SafeRedirect returns next when it is a local path, otherwise fallback
func SafeRedirect(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	return next
}
