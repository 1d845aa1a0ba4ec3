package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

const (
	AuthorizationHeader = "Authorization"
	Bearer              = "Bearer "
)

var (
	ErrNoToken      = errors.New("no token in Authorization header")
	ErrInvalidToken = errors.New("token is invalid")
)

type Config struct {
	JWTSecret string        `yaml:"jwtSecret" envconfig:"JWT_SECRET"`
	TokenTTL  time.Duration `yaml:"tokenTTL" envconfig:"JWT_TTL" default:"24h"`
}

type Profile struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type Claims struct {
	Profile Profile `json:"profile"`
	jwt.RegisteredClaims
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrNoToken
	}
	if !strings.HasPrefix(header, Bearer) {
		return "", ErrInvalidToken
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, Bearer))
	if token == "" {
		return "", ErrInvalidToken
	}
	return token, nil
}

func ParseToken(tokenStr string, key []byte) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.ExpiresAt == nil || time.Now().After(claims.ExpiresAt.Time) {
		return nil, errors.Wrap(ErrInvalidToken, "token expired")
	}
	return claims, nil
}

// SignToken issues an HS256 token for the profile. The identity provider
// owns issuing; this is what it signs with.
func SignToken(profile Profile, ttl time.Duration, key []byte) (string, error) {
	now := time.Now()
	claims := &Claims{
		Profile: profile,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   profile.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
}
