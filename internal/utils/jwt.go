package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string. Exp stores the
// expiration timestamp as a time.Time. Tokens are short-lived and carried
// in the Authorization header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// Claims is the verified content of an access token. Validity is a pure
// function of signature and expiry; nothing is persisted server-side and
// there is no revocation list. Expired tokens require a fresh login.
type Claims struct {
	UserID   uint64 // subject (sub)
	Username string // username claim
	IsAdmin  bool   // isAdmin claim, grants catalog mutation
}

// ErrInvalidToken is returned by ParseAccessToken for any token that fails
// signature, expiry or shape checks. Callers map it to 401.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user's identity and admin flag, and a TTL in minutes.
// The JWT carries the subject (sub), username, isAdmin, expiration (exp)
// and issued at (iat) claims.
func NewAccessToken(secret string, userID uint64, username string, isAdmin bool, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      userID,
		"username": username,
		"isAdmin":  isAdmin,
		"exp":      exp.Unix(),
		"iat":      now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token string
// and extracts its claims. Only HMAC-signed tokens are accepted; a token
// signed with any other method is rejected. The jwt library enforces the
// exp claim during Parse, so an expired token never reaches the claim
// extraction below.
func ParseAccessToken(secret, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Claims{}, ErrInvalidToken
	}
	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	var c Claims
	// Numeric claims decode as float64 from JSON.
	if sub, ok := mc["sub"].(float64); ok {
		c.UserID = uint64(sub)
	} else {
		return Claims{}, ErrInvalidToken
	}
	if name, ok := mc["username"].(string); ok {
		c.Username = name
	}
	if admin, ok := mc["isAdmin"].(bool); ok {
		c.IsAdmin = admin
	}
	return c, nil
}
