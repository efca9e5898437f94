package operadora

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
	Criar(ctx context.Context, o *Operadora) error
	BuscarPorID(ctx context.Context, escopo visibilidade.Escopo, id uuid.UUID) (*OperadoraView, error)
	Existe(ctx context.Context, id uuid.UUID) (bool, error)
	Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]OperadoraView, error)
	Atualizar(ctx context.Context, o *Operadora) error
	Deletar(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// colunasComContagens traz as contagens vivas: planos da operadora e
// beneficiários nesses planos, estes limitados ao escopo do chamador.
func colunasComContagens(escopo visibilidade.Escopo) (string, []any) {
	cond, args := escopo.Restricao("b.id")
	return `operadoras.*,
	(SELECT COUNT(*) FROM planos p WHERE p.operadora_id = operadoras.id) AS total_planos,
	(SELECT COUNT(*) FROM beneficiarios b JOIN planos p ON p.id = b.plano_id
		WHERE p.operadora_id = operadoras.id` + cond + `) AS total_beneficiarios`, args
}

func (r *repositoryImpl) Criar(ctx context.Context, o *Operadora) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Create(o).Error)
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, escopo visibilidade.Escopo, id uuid.UUID) (*OperadoraView, error) {
	var out []OperadoraView
	colunas, args := colunasComContagens(escopo)
	err := r.db.WithContext(ctx).
		Table("operadoras").
		Select(colunas, args...).
		Where("operadoras.id = ?", id).
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

func (r *repositoryImpl) Existe(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Operadora{}).Where("id = ?", id).Count(&n).Error
	return n > 0, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]OperadoraView, error) {
	colunas, args := colunasComContagens(escopo)
	q := r.db.WithContext(ctx).Table("operadoras").Select(colunas, args...)
	if f.Status != "" {
		q = q.Where("operadoras.status = ?", f.Status)
	}
	if f.Busca != "" {
		q = q.Where("operadoras.nome ILIKE ?", utils.PadraoBusca(f.Busca))
	}
	out := []OperadoraView{}
	err := q.Order("operadoras.nome").Scan(&out).Error
	return out, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, o *Operadora) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Save(o).Error)
}

// Deletar falha com erro de armazenamento enquanto houver planos da operadora.
func (r *repositoryImpl) Deletar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Operadora{}, "id = ?", id)
	if res.Error != nil {
		return common.ErroDoBanco(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNaoEncontrado
	}
	return nil
}
