package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "storefront_session"

// CookieClaims are the JWT claims embedded in the session cookie. The cookie
// carries only the opaque session ID; the session store remains the source of
// truth for who is logged in.
type CookieClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// CookieCodec signs and verifies session cookies. Signing makes the cookie
// tamper-evident: a client cannot forge or swap a session ID without the
// server secret.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewCookieCodec creates a codec with the given signing secret and cookie
// lifetime. secure controls the cookie's Secure attribute.
func NewCookieCodec(secret string, ttl time.Duration, secure bool) *CookieCodec {
	return &CookieCodec{
		secret: []byte(secret),
		ttl:    ttl,
		secure: secure,
	}
}

// Encode signs a token containing the session ID.
func (c *CookieCodec) Encode(sessionID string) (string, error) {
	now := time.Now().UTC()
	claims := &CookieClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			Issuer:    "storefront",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session cookie: %w", err)
	}

	return signed, nil
}

// Decode verifies a signed cookie value and returns the session ID.
func (c *CookieCodec) Decode(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &CookieClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("parse session cookie: %w", err)
	}

	claims, ok := token.Claims.(*CookieClaims)
	if !ok || !token.Valid || claims.SessionID == "" {
		return "", fmt.Errorf("invalid session cookie claims")
	}

	return claims.SessionID, nil
}

// SetCookie writes the session cookie for the given session ID.
func (c *CookieCodec) SetCookie(w http.ResponseWriter, sessionID string) error {
	value, err := c.Encode(sessionID)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(c.ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie.
func (c *CookieCodec) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// SessionIDFromRequest extracts and verifies the session ID from the request
// cookie. Returns an empty string when no valid cookie is present.
func (c *CookieCodec) SessionIDFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	sessionID, err := c.Decode(cookie.Value)
	if err != nil {
		return ""
	}
	return sessionID
}
