package financeiro

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Filtro struct {
	Status         Status
	BeneficiarioID *uuid.UUID
	Busca          string
}

type Repository interface {
	Criar(ctx context.Context, p *Pagamento) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*Pagamento, error)
	BuscarView(ctx context.Context, id uuid.UUID) (*PagamentoView, error)
	Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro, hoje time.Time) ([]PagamentoView, error)
	BeneficiarioExiste(ctx context.Context, id uuid.UUID) (bool, error)
	Atualizar(ctx context.Context, p *Pagamento) error
	Deletar(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) view(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("pagamentos").
		Select(`pagamentos.*,
			beneficiarios.nome AS beneficiario_nome, beneficiarios.cpf AS beneficiario_cpf,
			planos.nome AS plano_nome, operadoras.nome AS operadora_nome,
			beneficiarios.vendedor_id AS vendedor_id, vendedores.nome AS vendedor_nome,
			confirmador.nome AS confirmado_por_nome`).
		Joins("JOIN beneficiarios ON beneficiarios.id = pagamentos.beneficiario_id").
		Joins("JOIN planos ON planos.id = beneficiarios.plano_id").
		Joins("JOIN operadoras ON operadoras.id = planos.operadora_id").
		Joins("LEFT JOIN vendedores ON vendedores.id = beneficiarios.vendedor_id").
		Joins("LEFT JOIN usuarios confirmador ON confirmador.id = pagamentos.confirmado_por")
}

func (r *repositoryImpl) Criar(ctx context.Context, p *Pagamento) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Create(p).Error)
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, id uuid.UUID) (*Pagamento, error) {
	var p Pagamento
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, common.ErroDoBanco(err)
	}
	return &p, nil
}

func (r *repositoryImpl) BuscarView(ctx context.Context, id uuid.UUID) (*PagamentoView, error) {
	var out []PagamentoView
	if err := r.view(ctx).Where("pagamentos.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, common.ErroDoBanco(err)
	}
	if len(out) == 0 {
		return nil, common.ErrNaoEncontrado
	}
	return &out[0], nil
}

// Listar filtra pelo escopo antes de tudo. O filtro "atrasado" inclui os
// pendentes já vencidos além da carência.
func (r *repositoryImpl) Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro, hoje time.Time) ([]PagamentoView, error) {
	q := escopo.Aplicar(r.view(ctx), "pagamentos.beneficiario_id")
	switch f.Status {
	case "":
	case StatusAtrasado:
		q = q.Where("pagamentos.status = ? OR (pagamentos.status = ? AND pagamentos.data_vencimento < ?)",
			StatusAtrasado, StatusPendente, LimiteAtraso(hoje).Format(utils.LayoutData))
	default:
		q = q.Where("pagamentos.status = ?", f.Status)
	}
	if f.BeneficiarioID != nil {
		q = q.Where("pagamentos.beneficiario_id = ?", *f.BeneficiarioID)
	}
	if f.Busca != "" {
		like := utils.PadraoBusca(f.Busca)
		q = q.Where("beneficiarios.nome ILIKE ? OR beneficiarios.cpf ILIKE ?", like, like)
	}
	out := []PagamentoView{}
	err := q.Order("pagamentos.data_vencimento DESC").Scan(&out).Error
	return out, common.ErroDoBanco(err)
}

func (r *repositoryImpl) BeneficiarioExiste(ctx context.Context, id uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table("beneficiarios").Where("id = ?", id).Count(&n).Error
	return n > 0, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, p *Pagamento) error {
	return common.ErroDoBanco(r.db.WithContext(ctx).Save(p).Error)
}

func (r *repositoryImpl) Deletar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Pagamento{}, "id = ?", id)
	if res.Error != nil {
		return common.ErroDoBanco(res.Error)
	}
	if res.RowsAffected == 0 {
		return common.ErrNaoEncontrado
	}
	return nil
}
