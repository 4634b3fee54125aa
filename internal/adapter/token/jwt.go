package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

// JWT issues and verifies HS256 bearer tokens whose subject is the user id.
type JWT struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

var _ ports.TokenManager = (*JWT)(nil)

func NewJWT(secret, issuer string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

func (j *JWT) Issue(userID string) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    j.issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})

	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

func (j *JWT) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	}
	if j.issuer != "" {
		opts = append(opts, jwt.WithIssuer(j.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	}, opts...)
	if err != nil {
		return "", errors.Join(domain.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", errors.Join(domain.ErrInvalidToken, errors.New("token has no subject"))
	}

	return claims.Subject, nil
}
