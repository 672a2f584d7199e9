package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session datos del usuario que viajan en la cookie de sesión.
type Session struct {
	UserID     string
	Email      string
	RolID      string
	ContactoID string
}

// Claims incluye los claims estándar JWT más los campos de sesión.
// Subject es el id del usuario.
type Claims struct {
	jwt.RegisteredClaims
	Email      string `json:"email"`
	RolID      string `json:"rol_id,omitempty"`
	ContactoID string `json:"contacto_id,omitempty"`
}

// Generate firma un token HS256 para la sesión indicada.
func Generate(secret string, s Session, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if s.UserID == "" {
		return "", fmt.Errorf("jwt: user id vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   s.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		Email:      s.Email,
		RolID:      s.RolID,
		ContactoID: s.ContactoID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve la sesión.
// Retorna error si el token es inválido, expirado, sin sub o con firma incorrecta.
func Parse(secret, tokenString string) (*Session, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &Session{
		UserID:     claims.Subject,
		Email:      claims.Email,
		RolID:      claims.RolID,
		ContactoID: claims.ContactoID,
	}, nil
}
