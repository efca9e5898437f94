// Package visibilidade calcula quais beneficiários o chamador pode enxergar.
package visibilidade

import (
	"context"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Escopo é o conjunto de beneficiários visíveis. Irrestrito ignora IDs.
type Escopo struct {
	Irrestrito bool
	IDs        []uuid.UUID
}

// Vazio informa se o chamador não enxerga nenhum beneficiário.
func (e Escopo) Vazio() bool {
	return !e.Irrestrito && len(e.IDs) == 0
}

func (e Escopo) Contem(id uuid.UUID) bool {
	if e.Irrestrito {
		return true
	}
	for _, v := range e.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Aplicar restringe a query à coluna de beneficiário informada.
func (e Escopo) Aplicar(db *gorm.DB, coluna string) *gorm.DB {
	switch {
	case e.Irrestrito:
		return db
	case len(e.IDs) == 0:
		return db.Where("1 = 0")
	default:
		return db.Where(coluna+" IN ?", e.IDs)
	}
}

// Restricao devolve o trecho " AND coluna IN ?" para subconsultas de contagem,
// com os argumentos correspondentes. Irrestrito não restringe.
func (e Escopo) Restricao(coluna string) (string, []any) {
	switch {
	case e.Irrestrito:
		return "", nil
	case len(e.IDs) == 0:
		return " AND 1 = 0", nil
	default:
		return " AND " + coluna + " IN ?", []any{e.IDs}
	}
}

// Fonte lista os beneficiários vinculados a um vendedor.
type Fonte interface {
	BeneficiariosDoVendedor(ctx context.Context, vendedorID uuid.UUID) ([]uuid.UUID, error)
}

type fonteGorm struct {
	db *gorm.DB
}

func NewFonte(db *gorm.DB) Fonte {
	return &fonteGorm{db: db}
}

func (f *fonteGorm) BeneficiariosDoVendedor(ctx context.Context, vendedorID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := f.db.WithContext(ctx).
		Table("beneficiarios").
		Where("vendedor_id = ?", vendedorID).
		Pluck("id", &ids).Error
	return ids, common.ErroDoBanco(err)
}

// Resolvedor é o que handlers e services precisam para obter o escopo.
type Resolvedor interface {
	Resolver(ctx context.Context, sessao *auth.Sessao) (Escopo, error)
}

// DoContexto resolve o escopo da sessão posta no contexto pelo middleware.
func DoContexto(ctx context.Context, r Resolvedor) (Escopo, error) {
	sessao, err := auth.SessaoDoContexto(ctx)
	if err != nil {
		return Escopo{}, err
	}
	return r.Resolver(ctx, sessao)
}

type Resolver struct {
	fonte Fonte
}

func NewResolver(fonte Fonte) *Resolver {
	return &Resolver{fonte: fonte}
}

// Resolver calcula o escopo a cada requisição. Vendedor sem vínculo recebe o
// conjunto vazio, nunca um erro.
func (r *Resolver) Resolver(ctx context.Context, sessao *auth.Sessao) (Escopo, error) {
	if sessao == nil {
		return Escopo{}, common.ErrTokenInvalido
	}
	if sessao.Papel != usuario.PapelVendedor {
		return Escopo{Irrestrito: true}, nil
	}
	if sessao.VendedorID == nil {
		return Escopo{}, nil
	}
	ids, err := r.fonte.BeneficiariosDoVendedor(ctx, *sessao.VendedorID)
	if err != nil {
		return Escopo{}, err
	}
	return Escopo{IDs: ids}, nil
}
