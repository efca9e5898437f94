package beneficiario

import (
	"context"
	"strings"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
)

// repoFake guarda beneficiários em memória e também serve de fonte para o
// resolver de visibilidade.
type repoFake struct {
	itens      map[uuid.UUID]*Beneficiario
	planos     map[uuid.UUID]bool
	vendedores map[uuid.UUID]bool
	listagens  int
}

func newRepoFake() *repoFake {
	return &repoFake{
		itens:      map[uuid.UUID]*Beneficiario{},
		planos:     map[uuid.UUID]bool{},
		vendedores: map[uuid.UUID]bool{},
	}
}

func (f *repoFake) add(nome string, vendedor *uuid.UUID) *Beneficiario {
	b := &Beneficiario{ID: uuid.New(), Nome: nome, CPF: uuid.NewString()[:14], VendedorID: vendedor, Status: StatusAtivo}
	f.itens[b.ID] = b
	return b
}

func (f *repoFake) BeneficiariosDoVendedor(_ context.Context, v uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, b := range f.itens {
		if b.VendedorID != nil && *b.VendedorID == v {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

func (f *repoFake) Criar(_ context.Context, b *Beneficiario) error {
	_ = b.BeforeCreate(nil)
	f.itens[b.ID] = b
	return nil
}

func (f *repoFake) BuscarPorID(_ context.Context, id uuid.UUID) (*Beneficiario, error) {
	b, ok := f.itens[id]
	if !ok {
		return nil, common.ErrNaoEncontrado
	}
	cp := *b
	return &cp, nil
}

func (f *repoFake) BuscarView(ctx context.Context, id uuid.UUID) (*BeneficiarioView, error) {
	b, err := f.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BeneficiarioView{Beneficiario: *b, PlanoNome: "Plano"}, nil
}

func (f *repoFake) Listar(_ context.Context, escopo visibilidade.Escopo, filtro Filtro) ([]BeneficiarioView, error) {
	f.listagens++
	out := []BeneficiarioView{}
	for _, b := range f.itens {
		if !escopo.Contem(b.ID) {
			continue
		}
		if filtro.Status != "" && b.Status != filtro.Status {
			continue
		}
		if filtro.Busca != "" && !strings.Contains(strings.ToLower(b.Nome+b.CPF), strings.ToLower(filtro.Busca)) {
			continue
		}
		out = append(out, BeneficiarioView{Beneficiario: *b})
	}
	return out, nil
}

func (f *repoFake) ExisteCPF(_ context.Context, cpf string) (bool, error) {
	for _, b := range f.itens {
		if b.CPF == cpf {
			return true, nil
		}
	}
	return false, nil
}

func (f *repoFake) PlanoExiste(_ context.Context, id uuid.UUID) (bool, error) {
	return f.planos[id], nil
}

func (f *repoFake) VendedorExiste(_ context.Context, id uuid.UUID) (bool, error) {
	return f.vendedores[id], nil
}

func (f *repoFake) Atualizar(_ context.Context, b *Beneficiario) error {
	cp := *b
	f.itens[b.ID] = &cp
	return nil
}

func (f *repoFake) Deletar(_ context.Context, id uuid.UUID) error {
	if _, ok := f.itens[id]; !ok {
		return common.ErrNaoEncontrado
	}
	delete(f.itens, id)
	return nil
}
