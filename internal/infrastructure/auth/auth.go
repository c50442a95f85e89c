package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"love-unlock/internal/config"
)

const (
	ownerIDKey = "auth_owner_id"
	// DevOwnerHeader names the owner when bearer auth is disabled.
	DevOwnerHeader = "X-Owner-Id"
	devOwnerID     = "local-dev"
)

var errMissingSubject = errors.New("token has no subject")

// Validator checks owner bearer tokens against a JWKS endpoint or a shared HS256 secret.
type Validator struct {
	cfg     *config.Config
	log     zerolog.Logger
	jwks    *keyfunc.JWKS
	secret  []byte
	methods []string
}

// NewValidator initializes JWKS fetching when auth is enabled and a JWKS URL is configured.
func NewValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Validator, error) {
	log = log.With().Str("component", "auth").Logger()
	v := &Validator{cfg: cfg, log: log}
	if !cfg.AuthEnabled {
		log.Warn().Msg("bearer auth disabled, owners are taken from " + DevOwnerHeader)
		return v, nil
	}

	if cfg.AuthJWKSURL == "" {
		v.secret = []byte(cfg.AuthJWTSecret)
		v.methods = []string{"HS256", "HS384", "HS512"}
		return v, nil
	}

	options := keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   time.Hour,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			log.Error().Err(err).Msg("jwks refresh error")
		},
	}
	jwks, err := keyfunc.Get(cfg.AuthJWKSURL, options)
	if err != nil {
		return nil, err
	}
	v.jwks = jwks
	v.methods = []string{"RS256", "RS384", "RS512", "ES256"}
	return v, nil
}

// OwnerID parses a bearer token and returns its subject.
func (v *Validator) OwnerID(tokenString string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods(v.methods), jwt.WithExpirationRequired()}
	if v.cfg.AuthAudience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.AuthAudience))
	}
	if v.cfg.AuthIssuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.AuthIssuer))
	}

	token, err := jwt.Parse(tokenString, v.keyfunc, opts...)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", jwt.ErrTokenUnverifiable
	}
	sub, err := token.Claims.GetSubject()
	if err != nil {
		return "", err
	}
	if sub == "" {
		return "", errMissingSubject
	}
	return sub, nil
}

func (v *Validator) keyfunc(token *jwt.Token) (any, error) {
	if v.jwks != nil {
		return v.jwks.Keyfunc(token)
	}
	return v.secret, nil
}

// Middleware enforces bearer auth when enabled and stores the owner id on the context.
func (v *Validator) Middleware() gin.HandlerFunc {
	if v == nil || !v.cfg.AuthEnabled {
		return func(c *gin.Context) {
			owner := strings.TrimSpace(c.GetHeader(DevOwnerHeader))
			if owner == "" {
				owner = devOwnerID
			}
			c.Set(ownerIDKey, owner)
			c.Next()
		}
	}

	return func(c *gin.Context) {
		tokenString := bearerToken(c.GetHeader("Authorization"))
		if tokenString == "" {
			abortUnauthorized(c, "missing bearer token")
			return
		}

		owner, err := v.OwnerID(tokenString)
		if err != nil {
			v.log.Debug().Err(err).Msg("bearer token rejected")
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(ownerIDKey, owner)
		c.Next()
	}
}

// OwnerFromContext returns the owner id set by Middleware.
func OwnerFromContext(c *gin.Context) (string, bool) {
	owner := c.GetString(ownerIDKey)
	return owner, owner != ""
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"code":  "UNAUTHORIZED",
		"error": message,
	})
}
