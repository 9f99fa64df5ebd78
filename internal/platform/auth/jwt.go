package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cardhub/internal/shared/identity"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken      = errors.New("invalid token")
	ErrSignerUnavailable = errors.New("token signer is not configured")
)

const defaultTTL = 24 * time.Hour

// Claims is the JWT payload carried by session tokens.
type Claims struct {
	IsAdmin    bool `json:"isAdmin"`
	IsBusiness bool `json:"isBusiness"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 session tokens with an injected secret.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewSigner(secret string, issuer string, ttl time.Duration) (*Signer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSignerUnavailable
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Signer{
		secret: []byte(secret),
		issuer: strings.TrimSpace(issuer),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (s *Signer) Issue(claim identity.Claim) (string, error) {
	if s == nil || len(s.secret) == 0 {
		return "", ErrSignerUnavailable
	}
	if !claim.Authenticated() {
		return "", fmt.Errorf("issue token: %w", ErrInvalidToken)
	}
	issuedAt := s.now().UTC()
	claims := Claims{
		IsAdmin:    claim.IsAdmin,
		IsBusiness: claim.IsBusiness,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claim.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes a token into a claim. Unsigned, tampered, expired or
// foreign-issuer tokens all fail with ErrInvalidToken.
func (s *Signer) Verify(tokenStr string) (identity.Claim, error) {
	if s == nil || len(s.secret) == 0 {
		return identity.Claim{}, ErrSignerUnavailable
	}
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		options = append(options, jwt.WithIssuer(s.issuer))
	}

	t, err := jwt.ParseWithClaims(strings.TrimSpace(tokenStr), &Claims{}, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, options...)
	if err != nil {
		return identity.Claim{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := t.Claims.(*Claims)
	if !ok || !t.Valid || strings.TrimSpace(claims.Subject) == "" {
		return identity.Claim{}, ErrInvalidToken
	}
	return identity.Claim{
		UserID:     claims.Subject,
		IsAdmin:    claims.IsAdmin,
		IsBusiness: claims.IsBusiness,
	}, nil
}

// BearerToken extracts the credential from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
