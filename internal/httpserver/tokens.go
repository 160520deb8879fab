package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const tokenIssuer = "scorekeeper"

// tableTokens signs and verifies HS256 tokens that grant control of one game.
type tableTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func newTableTokens(secret string, ttl time.Duration) *tableTokens {
	return &tableTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// sign issues a token for gameID.
func (t *tableTokens) sign(gameID string) (string, time.Time, error) {
	now := t.now()
	exp := now.Add(t.ttl)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   gameID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := tok.SignedString(t.secret)
	return ss, exp, err
}

// parse verifies tok and returns the game ID it grants.
func (t *tableTokens) parse(tok string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

// setTableCookie scopes the token cookie to the game's path so one browser
// can hold tokens for several tables.
func setTableCookie(w http.ResponseWriter, name, gameID, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/games/" + gameID,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// clearTableCookie deletes the token cookie of a game.
func clearTableCookie(w http.ResponseWriter, name, gameID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/games/" + gameID,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or the
// table cookie.
func bearerOrCookie(r *http.Request, cookieName string) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}
