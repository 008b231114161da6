// --- auth/token.go ---
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmorenoc/TaskAgenda/models"
	"github.com/dmorenoc/TaskAgenda/storage"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// token, or expiry in the past. Callers get no further detail.
var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer signs and verifies the stateless session tokens. There is no
// server-side session state and no revocation list; a token is valid until
// its expiry passes.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	users  *storage.UserStore
}

// NewIssuer returns an Issuer signing HS256 tokens with the given secret and
// validity window, authenticating against the given credential store.
func NewIssuer(secret []byte, ttl time.Duration, users *storage.UserStore) *Issuer {
	return &Issuer{secret: secret, ttl: ttl, users: users}
}

// Login checks the credentials and issues a token bound to the username.
// It fails with models.ErrUserNotFound or models.ErrInvalidCredentials.
func (i *Issuer) Login(username, password string) (string, error) {
	user, err := i.users.FindByUsername(username)
	if err != nil {
		return "", err
	}
	if !CheckPassword(password, user.PasswordHash) {
		return "", models.ErrInvalidCredentials
	}

	now := time.Now()
	claims := &models.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string and yields the embedded
// username. Expiry is checked here, lazily; nothing expires tokens early.
func (i *Issuer) Verify(tokenString string) (string, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid || claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}
