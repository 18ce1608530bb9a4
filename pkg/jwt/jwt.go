package jwt

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	headerType      = "JWT"
	headerAlgorithm = "HS256"
)

type header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
}

// StandardClaims carries the registered claims from RFC 7519 section 4.1.
// Zero temporal claims are treated as unset and skipped during validation.
type StandardClaims struct {
	ID        string `json:"jti,omitempty"`
	Subject   string `json:"sub,omitempty"`
	Issuer    string `json:"iss,omitempty"`
	Audience  string `json:"aud,omitempty"`
	ExpiresAt int64  `json:"exp,omitempty"`
	NotBefore int64  `json:"nbf,omitempty"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Valid checks the temporal claims against the current time.
func (c StandardClaims) Valid() error {
	now := time.Now().Unix()
	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return ErrExpiredToken
	}
	if c.NotBefore > 0 && now < c.NotBefore {
		return ErrInvalidToken
	}
	return nil
}

// Service signs and verifies HS256 tokens. The key stays in memory only.
type Service struct {
	signingKey []byte
}

// New creates a token service. The key should be at least 32 bytes.
func New(signingKey []byte) (*Service, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Service{signingKey: signingKey}, nil
}

// Generate signs the claims and returns the compact token string.
func (s *Service) Generate(claims any) (string, error) {
	if claims == nil {
		return "", ErrMissingClaims
	}

	headerJSON, err := json.Marshal(header{Type: headerType, Algorithm: headerAlgorithm})
	if err != nil {
		return "", err
	}
	claimsJSON, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	payload := base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(claimsJSON)

	return payload + "." + base64.RawURLEncoding.EncodeToString(s.sign(payload)), nil
}

// Parse verifies the signature and algorithm, unmarshals the claims, and
// runs their Valid method when they have one.
func (s *Service) Parse(token string, claims any) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return ErrInvalidToken
	}

	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return ErrInvalidToken
	}

	// Signature first so malformed headers never reach json.Unmarshal
	// unauthenticated. hmac.Equal is constant time.
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal(signature, s.sign(payload)) {
		return ErrInvalidSignature
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	var hdr header
	if err := json.Unmarshal(headerJSON, &hdr); err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if hdr.Algorithm != headerAlgorithm {
		return ErrUnexpectedSigningMethod
	}

	claimsJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return errors.Join(ErrInvalidToken, err)
	}
	if err := json.Unmarshal(claimsJSON, claims); err != nil {
		return errors.Join(ErrInvalidClaims, err)
	}

	if v, ok := claims.(interface{ Valid() error }); ok {
		return v.Valid()
	}
	return nil
}

func (s *Service) sign(payload string) []byte {
	h := hmac.New(sha256.New, s.signingKey)
	h.Write([]byte(payload))
	return h.Sum(nil)
}
