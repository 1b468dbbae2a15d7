package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/domain"
)

// DefaultTTL is the token lifetime when none is configured.
const DefaultTTL = 60 * time.Minute

// TokenIssuer implements ports.TokenIssuer with HS256.
//
// The signed expiry is now + TTL, nothing else. The legacy deployment added a
// fixed +7h display-timezone offset to the expiry instant, which silently
// extended every token's real lifetime; presentation concerns stay out of the
// signed claims here.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

type accessClaims struct {
	jwt.RegisteredClaims
	Username    string `json:"username"`
	Email       string `json:"email"`
	GivenName   string `json:"given_name"`
	FamilyName  string `json:"family_name"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	IsActive    bool   `json:"is_active"`
}

func NewTokenIssuer(secret []byte, issuer, audience string, ttl time.Duration) *TokenIssuer {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &TokenIssuer{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
	}
}

func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{t.audience},
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
		Username:    user.Username,
		Email:       user.Email,
		GivenName:   user.FirstName,
		FamilyName:  user.LastName,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
		IsActive:    user.IsActive,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Expiry returns the expiry instant a token issued now would carry.
func (t *TokenIssuer) Expiry() time.Time {
	return time.Now().Add(t.ttl)
}

// Validate checks signature, issuer, audience and expiry with zero leeway,
// and extracts the user id from the subject claim.
func (t *TokenIssuer) Validate(tokenString string) (int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &accessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	}, jwt.WithIssuer(t.issuer), jwt.WithAudience(t.audience), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, errors.New("invalid subject claim")
	}
	return userID, nil
}

var _ ports.TokenIssuer = (*TokenIssuer)(nil)
