package vendedor

import (
	"context"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filtro struct {
	Status Status
	Busca  string
}

type Repository interface {
	Criar(ctx context.Context, v *Vendedor) error
	BuscarPorID(ctx context.Context, escopo visibilidade.Escopo, id uuid.UUID) (*VendedorView, error)
	Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]VendedorView, error)
	Atualizar(ctx context.Context, v *Vendedor) error
	Deletar(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func selectComContagem(escopo visibilidade.Escopo) (string, []any) {
	cond, args := escopo.Restricao("b.id")
	return `vendedores.*,
	(SELECT COUNT(*) FROM beneficiarios b WHERE b.vendedor_id = vendedores.id` + cond + `) AS total_beneficiarios`, args
}

func (r *repositoryImpl) Criar(ctx context.Context, v *Vendedor) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Create(v).Error)
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, escopo visibilidade.Escopo, id uuid.UUID) (*VendedorView, error) {
	var out []VendedorView
	colunas, args := selectComContagem(escopo)
	err := r.db.WithContext(ctx).
		Table("vendedores").
		Select(colunas, args...).
		Where("vendedores.id = ?", id).
		Limit(1).
		Scan(&out).Error
	if err != nil {
		return nil, common.ErroDoBanco(err)
	}
	if len(out) == 0 {
		return nil, common.ErrNaoEncontrado
	}
	return &out[0], nil
}

func (r *repositoryImpl) Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]VendedorView, error) {
	colunas, args := selectComContagem(escopo)
	q := r.db.WithContext(ctx).Table("vendedores").Select(colunas, args...)
	if f.Status != "" {
		q = q.Where("vendedores.status = ?", f.Status)
	}
	if f.Busca != "" {
		like := utils.PadraoBusca(f.Busca)
		q = q.Where("vendedores.nome ILIKE ? OR vendedores.email ILIKE ?", like, like)
	}
	out := []VendedorView{}
	err := q.Order("vendedores.nome").Scan(&out).Error
	return out, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, v *Vendedor) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Save(v).Error)
}

func (r *repositoryImpl) Deletar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Vendedor{}, "id = ?", id)
	if res.Error != nil {
		return common.ErroDoBanco(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNaoEncontrado
	}
	return nil
}
