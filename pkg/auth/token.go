package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// DefaultTokenTTL is the validity window for issued tokens
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken is returned for any token that fails verification:
// malformed, wrong signature, or past expiry. The cause is deliberately
// not distinguished to the caller.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is the payload carried inside a signed session token
type Claims struct {
	Username  string `json:"username"`
	Subject   int64  `json:"sub"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// Signer issues and verifies HMAC-SHA256 signed session tokens.
// Tokens are self-contained; no server-side session state exists and
// expiry is the only revocation mechanism.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a signer with the given secret and token lifetime.
// A zero or negative ttl falls back to DefaultTokenTTL.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Signer{secret: secret, ttl: ttl}
}

// Issue encodes {username, sub, role} into a signed, time-boxed token.
// Format: base64url(claims JSON) + "." + base64url(HMAC-SHA256).
func (s *Signer) Issue(user User) (string, error) {
	now := time.Now()
	claims := Claims{
		Username:  user.Username,
		Subject:   user.ID,
		Role:      user.Role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + s.sign(encoded), nil
}

// Verify checks the signature and expiry of a token and returns its
// claims. Any failure yields ErrInvalidToken.
func (s *Signer) Verify(token string) (*Claims, error) {
	payload, sig, ok := strings.Cut(token, ".")
	if !ok || payload == "" || sig == "" {
		return nil, ErrInvalidToken
	}

	// Constant-time signature comparison
	if !hmac.Equal([]byte(s.sign(payload)), []byte(sig)) {
		return nil, ErrInvalidToken
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil, ErrInvalidToken
	}
	if !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}
	if time.Now().Unix() >= claims.ExpiresAt {
		return nil, ErrInvalidToken
	}

	return &claims, nil
}

// sign computes the base64url-encoded HMAC-SHA256 of the payload
func (s *Signer) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
