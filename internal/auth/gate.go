// Package auth implements the optional static-credential basic-auth gate.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrUnauthorized is returned when the gate is active and the request does
// not carry matching credentials.
var ErrUnauthorized = errors.New("unauthorized")

// Gate checks basic-auth credentials against two optionally configured
// secrets. With neither secret configured every request is allowed. A Gate is
// immutable after construction and safe for concurrent use.
type Gate struct {
	realm    string
	username []byte
	password []byte
}

// NewGate creates a gate. Empty strings mean "not configured".
func NewGate(realm, username, password string) *Gate {
	g := &Gate{realm: realm}
	if username != "" {
		g.username = digest(username)
	}
	if password != "" {
		g.password = digest(password)
	}
	return g
}

// Enabled reports whether at least one secret is configured.
func (g *Gate) Enabled() bool {
	return g.username != nil || g.password != nil
}

// Check decides access for the credentials as returned by
// (*http.Request).BasicAuth. ok is false when no usable credentials were sent.
func (g *Gate) Check(user, pass string, ok bool) error {
	if !g.Enabled() {
		return nil
	}
	if !ok {
		return fmt.Errorf("%w: not authenticated", ErrUnauthorized)
	}

	// Both comparisons always run so the response time does not reveal which
	// field was wrong.
	userOK := g.username == nil || equal(g.username, user)
	passOK := g.password == nil || equal(g.password, pass)
	if !userOK || !passOK {
		return fmt.Errorf("%w: incorrect username or password", ErrUnauthorized)
	}
	return nil
}

// Challenge is the WWW-Authenticate header value sent with a 401.
func (g *Gate) Challenge() string {
	return fmt.Sprintf("Basic realm=%q", g.realm)
}

// Middleware aborts unauthorised requests with 401 before any handler runs.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if err := g.Check(user, pass, ok); err != nil {
			c.Header("WWW-Authenticate", g.Challenge())
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": detail(ok)})
			return
		}
		c.Next()
	}
}

func detail(sent bool) string {
	if !sent {
		return "Not authenticated"
	}
	return "Incorrect username or password"
}

// digest hashes a secret so comparisons run over fixed-length input and do
// not leak its length.
func digest(s string) []byte {
	sum := sha256.Sum256([]byte(s))
	return sum[:]
}

func equal(want []byte, got string) bool {
	return subtle.ConstantTimeCompare(want, digest(got)) == 1
}
