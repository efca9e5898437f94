package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/golang-jwt/jwt/v5"
)

// Claims do token de acesso. Papel viaja no token só para o frontend; o backend
// sempre relê papel e vínculo de vendedor do banco.
type Claims struct {
	UsuarioID string        `json:"id"`
	Email     string        `json:"email"`
	Nome      string        `json:"nome"`
	Papel     usuario.Papel `json:"papel"`
	jwt.RegisteredClaims
}

// Tokens emite e valida JWT HS256.
type Tokens struct {
	secret []byte
	ttl    time.Duration
	agora  func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl, agora: time.Now}
}

// Gerar gera o token do usuário com validade ttl.
func (t *Tokens) Gerar(u *usuario.Usuario) (string, time.Time, error) {
	now := t.agora()
	exp := now.Add(t.ttl)
	claims := &Claims{
		UsuarioID: u.ID.String(),
		Email:     u.Email,
		Nome:      u.Nome,
		Papel:     u.Papel,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("assinar token: %w", err)
	}
	return signed, exp, nil
}

// Validar confere assinatura e expiração e devolve as claims.
func (t *Tokens) Validar(raw string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.agora),
	)
	claims := &Claims{}
	tok, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return t.secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, errors.Join(common.ErrTokenInvalido, err)
	}
	return claims, nil
}
