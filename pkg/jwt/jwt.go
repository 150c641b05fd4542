package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptySecret   = errors.New("jwt: secret vacío")
	ErrInvalidClaims = errors.New("jwt: claims inválidos")
)

// leeway tolera relojes desfasados entre réplicas.
const leeway = 30 * time.Second

// Claims: el rol viaja en el token para que el middleware de capacidades no consulte la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"` // admin | vet | staff | client
}

// Generate firma un token HS256 con user_id y role.
func Generate(secret, userID, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID: userID,
		Role:   role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// Parse valida firma y expiración y devuelve userID y role. Solo acepta HS256.
func Parse(secret, tokenString string) (userID, role string, err error) {
	if secret == "" {
		return "", "", ErrEmptySecret
	}
	var claims Claims
	_, err = jwt.ParseWithClaims(tokenString, &claims,
		func(*jwt.Token) (interface{}, error) { return []byte(secret), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	if err != nil {
		return "", "", err
	}
	// rol vacío lo resuelve el middleware (MISSING_ROLE)
	if claims.UserID == "" {
		return "", "", ErrInvalidClaims
	}
	return claims.UserID, claims.Role, nil
}
