package auth

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/google/uuid"
)

// Sessao é o chamador resolvido para a requisição corrente. Papel e VendedorID
// vêm do banco, nunca do token.
type Sessao struct {
	UsuarioID  uuid.UUID
	Nome       string
	Email      string
	Papel      usuario.Papel
	VendedorID *uuid.UUID
	ExpiraEm   time.Time
}

func (s *Sessao) Expirada(agora time.Time) bool {
	return !s.ExpiraEm.IsZero() && !agora.Before(s.ExpiraEm)
}

func (s *Sessao) TemPapel(papeis ...usuario.Papel) bool {
	for _, p := range papeis {
		if s.Papel == p {
			return true
		}
	}
	return false
}

// Exigir falha com ErrProibido quando o papel da sessão não está na lista.
func (s *Sessao) Exigir(papeis ...usuario.Papel) error {
	if s == nil {
		return common.ErrTokenInvalido
	}
	if !s.TemPapel(papeis...) {
		return common.ErrProibido
	}
	return nil
}

// PodeGerir cobre as operações restritas a Admin e Financeiro.
func (s *Sessao) PodeGerir() error {
	return s.Exigir(usuario.PapelAdmin, usuario.PapelFinanceiro)
}

func SessaoDoUsuario(u *usuario.Usuario, expira time.Time) *Sessao {
	return &Sessao{
		UsuarioID:  u.ID,
		Nome:       u.Nome,
		Email:      u.Email,
		Papel:      u.Papel,
		VendedorID: u.VendedorID,
		ExpiraEm:   expira,
	}
}

type ctxKey string

const sessaoKey ctxKey = "sessao"

func ComSessao(ctx context.Context, s *Sessao) context.Context {
	return context.WithValue(ctx, sessaoKey, s)
}

// SessaoDoContexto recupera a sessão posta pelo middleware.
func SessaoDoContexto(ctx context.Context) (*Sessao, error) {
	s, ok := ctx.Value(sessaoKey).(*Sessao)
	if !ok || s == nil {
		return nil, common.ErrTokenInvalido
	}
	return s, nil
}

// ExigirDoContexto combina SessaoDoContexto e Exigir.
func ExigirDoContexto(ctx context.Context, papeis ...usuario.Papel) (*Sessao, error) {
	s, err := SessaoDoContexto(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Exigir(papeis...); err != nil {
		return nil, err
	}
	return s, nil
}
