package utils

import (
	"fmt"
	"os"
	"time"

	"lce-project/backend/models"

	"github.com/golang-jwt/jwt/v5"
)

// Tajni ključ se učitava iz okruženja
var jwtSecret = []byte(os.Getenv("JWT_SECRET"))

type Claims struct {
	UserID string       `json:"userId"`
	Email  string       `json:"email"`
	Level  models.Level `json:"level"`
	jwt.RegisteredClaims
}

func GenerateToken(userID, email string, level models.Level) (string, error) {
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Level:  level,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(12 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ValidateToken(tokenStr string) (*Claims, error) {
	claims, err := parseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("token has expired")
	}
	return claims, nil
}

func parseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
