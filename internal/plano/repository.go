package plano

import (
	"context"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filtro struct {
	Tipo        Tipo
	OperadoraID *uuid.UUID
	Busca       string
}

type Repository interface {
	Criar(ctx context.Context, p *Plano) error
	BuscarPorID(ctx context.Context, escopo visibilidade.Escopo, id uuid.UUID) (*PlanoView, error)
	Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]PlanoView, error)
	Atualizar(ctx context.Context, p *Plano) error
	Deletar(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// base conta só os beneficiários que o escopo enxerga.
func (r *repositoryImpl) base(ctx context.Context, escopo visibilidade.Escopo) *gorm.DB {
	cond, args := escopo.Restricao("b.id")
	return r.db.WithContext(ctx).
		Table("planos").
		Select(`planos.*, operadoras.nome AS operadora_nome,
			(SELECT COUNT(*) FROM beneficiarios b WHERE b.plano_id = planos.id`+cond+`) AS total_beneficiarios`, args...).
		Joins("JOIN operadoras ON operadoras.id = planos.operadora_id")
}

func (r *repositoryImpl) Criar(ctx context.Context, p *Plano) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Create(p).Error)
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, escopo visibilidade.Escopo, id uuid.UUID) (*PlanoView, error) {
	var out []PlanoView
	if err := r.base(ctx, escopo).Where("planos.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, common.ErroDoBanco(err)
	}
	if len(out) == 0 {
		return nil, common.ErrNaoEncontrado
	}
	return &out[0], nil
}

func (r *repositoryImpl) Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]PlanoView, error) {
	q := r.base(ctx, escopo)
	if f.Tipo != "" {
		q = q.Where("planos.tipo = ?", f.Tipo)
	}
	if f.OperadoraID != nil {
		q = q.Where("planos.operadora_id = ?", *f.OperadoraID)
	}
	if f.Busca != "" {
		like := utils.PadraoBusca(f.Busca)
		q = q.Where("planos.nome ILIKE ? OR operadoras.nome ILIKE ?", like, like)
	}
	out := []PlanoView{}
	err := q.Order("operadoras.nome, planos.preco").Scan(&out).Error
	return out, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, p *Plano) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Save(p).Error)
}

func (r *repositoryImpl) Deletar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Plano{}, "id = ?", id)
	if res.Error != nil {
		return common.ErroDoBanco(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNaoEncontrado
	}
	return nil
}
