package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims inclui os claims padrão JWT mais os campos próprios da aplicação.
// FazendaID é a conta (tenant) dona dos registros; todo escopo de dados parte dele.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	FazendaID string `json:"fazenda_id"`
}

// Generate gera um token JWT assinado que inclui userID e fazendaID.
func Generate(secret, userID, fazendaID, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:    userID,
		FazendaID: fazendaID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida o token e devolve userID e fazendaID.
// Se o token não trouxer fazenda_id (tokens antigos), cai no Subject:
// contas de dono único usam o id do usuário como id da fazenda.
// Retorna erro se o token for inválido, expirado ou com assinatura incorreta.
func Parse(secret, tokenString string) (userID, fazendaID string, err error) {
	if secret == "" {
		return "", "", fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", "", fmt.Errorf("claims inválidos")
	}
	fazendaID = claims.FazendaID
	if fazendaID == "" {
		fazendaID = claims.Subject
	}
	userID = claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	return userID, fazendaID, nil
}
