package utils

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Claims struct {
	UserID       uint `json:"uid"`
	IsFreelancer bool `json:"freelancer"`
	jwt.RegisteredClaims
}

func SignJWT(secret string, userID uint, isFreelancer bool, expiresMin int) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:       userID,
		IsFreelancer: isFreelancer,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiresMin) * time.Minute)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}
