package auth

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/tasktracker/internal/api/models"
	"github.com/jon4hz/tasktracker/internal/cache"
	"github.com/jon4hz/tasktracker/internal/database"
)

const (
	sessionUserIDKey = "user_id"
	identityKey      = "identity"

	// IdentityCachePrefix is the key prefix for cached identities.
	IdentityCachePrefix = "identity-"

	loginPath = "/login"
)

func init() {
	// flashes are gob encoded into the session cookie
	gob.Register(models.Result{})
}

// Provider resolves the identity of the current request from the session cookie.
type Provider struct {
	db         database.DB
	identities *cache.PrefixedCache[models.Identity]
}

// NewProvider creates a session based identity provider.
func NewProvider(db database.DB, identities *cache.PrefixedCache[models.Identity]) *Provider {
	return &Provider{
		db:         db,
		identities: identities,
	}
}

// SignIn binds userID to the session.
func (p *Provider) SignIn(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserIDKey, userID)
	return session.Save()
}

// SignOut removes the identity from the session.
func (p *Provider) SignOut(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(sessionUserIDKey)
	return session.Save()
}

// RequireAuth returns middleware that resolves the identity or redirects to the login page.
func (p *Provider) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := p.CurrentIdentity(c)
		if err != nil {
			log.Error("failed to resolve identity", "error", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if identity == nil {
			if err := AddResult(c, models.Fail("Please log in to access this page.")); err != nil {
				log.Error("failed to save session", "error", err)
			}
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// WithIdentity adapts a handler that needs the resolved identity as an explicit argument.
// It must run behind RequireAuth.
func WithIdentity(fn func(c *gin.Context, identity *models.Identity)) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := c.Get(identityKey)
		if !ok {
			c.Redirect(http.StatusFound, loginPath)
			c.Abort()
			return
		}
		fn(c, identity.(*models.Identity))
	}
}

// CurrentIdentity returns the identity bound to the session, or nil for anonymous requests.
// A session pointing at a user that no longer exists is cleared.
func (p *Provider) CurrentIdentity(c *gin.Context) (*models.Identity, error) {
	session := sessions.Default(c)
	userID, ok := sessionUserID(session)
	if !ok {
		return nil, nil
	}

	identity, err := p.resolve(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			log.Warn("session references unknown user", "userID", userID)
			session.Delete(sessionUserIDKey)
			if err := session.Save(); err != nil {
				return nil, err
			}
			return nil, nil
		}
		return nil, err
	}
	return identity, nil
}

func (p *Provider) resolve(ctx context.Context, userID uint) (*models.Identity, error) {
	if identity, err := p.identities.Get(ctx, userID); err == nil {
		return &identity, nil
	}

	user, err := p.db.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			if err := p.identities.Delete(ctx, userID); err != nil {
				log.Debug("failed to evict identity", "error", err)
			}
			return nil, err
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	identity := models.ToIdentity(user)
	if err := p.identities.Set(ctx, userID, *identity); err != nil {
		log.Warn("failed to cache identity", "error", err)
	}
	return identity, nil
}

func sessionUserID(session sessions.Session) (uint, bool) {
	switch v := session.Get(sessionUserIDKey).(type) {
	case uint:
		return v, v != 0
	default:
		return 0, false
	}
}
