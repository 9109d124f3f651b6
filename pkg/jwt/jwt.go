package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims inclui os claims padrão JWT mais os campos próprios da aplicação.
// OrganizacaoID, EntidadeID e Role permitem que o middleware de autorização
// decida sem consultar o banco. EntidadeID é 0 para contas admin, que não
// ficam presas a uma loja.
type Claims struct {
	jwt.RegisteredClaims
	UserID        int64  `json:"user_id"`
	OrganizacaoID int64  `json:"organizacao_id"`
	EntidadeID    int64  `json:"entidade_id,omitempty"`
	Role          string `json:"role"` // "admin" | "user"
}

// Gerar assina um token HS256 com identidade do usuário, organização, loja e papel.
// expMinutes controla a janela de validade (8 horas no padrão da aplicação).
func Gerar(secret string, userID, organizacaoID, entidadeID int64, role, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vazio")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:        userID,
		OrganizacaoID: organizacaoID,
		EntidadeID:    entidadeID,
		Role:          role,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Validar verifica assinatura e expiração e devolve os claims da aplicação.
func Validar(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vazio")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de assinatura inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
