package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims claims de una clave de API de PostgREST/Supabase: el rol de base de datos con el
// que se ejecutan las consultas más los claims estándar.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"` // "anon" | "authenticated" | "service_role"
}

// KeyInfo datos de una clave inspeccionada sin verificar la firma.
type KeyInfo struct {
	Role      string
	Issuer    string
	ExpiresAt time.Time // cero si la clave no expira
}

// Expired indica si la clave ya venció en now.
func (k KeyInfo) Expired(now time.Time) bool {
	return !k.ExpiresAt.IsZero() && !now.Before(k.ExpiresAt)
}

// Sign genera una clave firmada (HS256) para el rol indicado. ttl 0 = sin vencimiento.
func Sign(secret, role, issuer string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	if role == "" {
		return "", fmt.Errorf("jwt: rol vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Role: role,
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Inspect lee los claims de la clave sin verificar la firma (el secreto lo tiene el servidor).
// Sirve para advertir al arrancar si la clave venció o no tiene rol.
func Inspect(key string) (KeyInfo, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(key, claims); err != nil {
		return KeyInfo{}, fmt.Errorf("jwt: clave ilegible: %w", err)
	}
	info := KeyInfo{Role: claims.Role, Issuer: claims.Issuer}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}

// Verify valida firma y vencimiento y devuelve el rol.
func Verify(secret, key string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(key, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("claims inválidos")
	}
	return claims.Role, nil
}
