package auth

import (
	"context"
	"strings"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type fakeUsuarios struct {
	porID map[uuid.UUID]*usuario.Usuario
}

func newFakeUsuarios(us ...*usuario.Usuario) *fakeUsuarios {
	f := &fakeUsuarios{porID: map[uuid.UUID]*usuario.Usuario{}}
	for _, u := range us {
		f.porID[u.ID] = u
	}
	return f
}

func (f *fakeUsuarios) Criar(_ context.Context, u *usuario.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.porID[u.ID] = u
	return nil
}

func (f *fakeUsuarios) BuscarPorID(_ context.Context, id uuid.UUID) (*usuario.Usuario, error) {
	u, ok := f.porID[id]
	if !ok {
		return nil, common.ErrNaoEncontrado
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsuarios) BuscarPorEmail(_ context.Context, email string) (*usuario.Usuario, error) {
	for _, u := range f.porID {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNaoEncontrado
}

func (f *fakeUsuarios) Contar(context.Context) (int64, error) {
	return int64(len(f.porID)), nil
}

func (f *fakeUsuarios) ListarTodos(context.Context) ([]usuario.Usuario, error) {
	out := make([]usuario.Usuario, 0, len(f.porID))
	for _, u := range f.porID {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUsuarios) Atualizar(_ context.Context, u *usuario.Usuario) error {
	if _, ok := f.porID[u.ID]; !ok {
		return common.ErrNaoEncontrado
	}
	cp := *u
	f.porID[u.ID] = &cp
	return nil
}

func (f *fakeUsuarios) Deletar(_ context.Context, id uuid.UUID) error {
	if _, ok := f.porID[id]; !ok {
		return common.ErrNaoEncontrado
	}
	delete(f.porID, id)
	return nil
}

func hashRapido(senha string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.MinCost)
	return string(h), err
}

func novoUsuario(papel usuario.Papel, senha string) *usuario.Usuario {
	h, _ := hashRapido(senha)
	return &usuario.Usuario{
		ID:        uuid.New(),
		Nome:      "Ana",
		Email:     "ana@corretora.com",
		SenhaHash: h,
		Papel:     papel,
	}
}

func novoService(repo usuario.Repository, agora time.Time) *Service {
	tk := NewTokens("segredo-de-teste", time.Hour)
	tk.agora = func() time.Time { return agora }
	s := NewService(repo, tk)
	s.hash = hashRapido
	s.agora = func() time.Time { return agora }
	return s
}
