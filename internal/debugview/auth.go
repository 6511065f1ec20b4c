package debugview

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoToken = errors.New("missing bearer token")

// IssueToken signs an HS256 token for a debug view client.
func IssueToken(secret []byte, issuer, subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing debug token: %w", err)
	}
	return signed, nil
}

// authenticate validates the bearer token of r and returns its subject.
// Browsers cannot set headers on websocket upgrades, so ?token= is accepted too.
func (s *Server) authenticate(r *http.Request) (string, error) {
	raw := r.URL.Query().Get("token")
	if h := r.Header.Get("Authorization"); h != "" {
		var ok bool
		raw, ok = strings.CutPrefix(h, "Bearer ")
		if !ok {
			return "", errNoToken
		}
	}
	if raw == "" {
		return "", errNoToken
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("validating debug token: %w", err)
	}
	return claims.Subject, nil
}
