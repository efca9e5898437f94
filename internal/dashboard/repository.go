package dashboard

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/beneficiario"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/financeiro"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Repository faz os agregados do painel, sempre restritos ao escopo.
type Repository interface {
	ContarBeneficiarios(ctx context.Context, escopo visibilidade.Escopo) (int64, error)
	ContarAtivos(ctx context.Context, escopo visibilidade.Escopo, antesDe *time.Time) (int64, error)
	ReceitaConfirmada(ctx context.Context, escopo visibilidade.Escopo, inicio, fim time.Time) (decimal.Decimal, error)
	ContarPagamentos(ctx context.Context, escopo visibilidade.Escopo) (total, pagos int64, err error)
	Inadimplentes(ctx context.Context, escopo visibilidade.Escopo, hoje time.Time) (int64, decimal.Decimal, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) beneficiarios(ctx context.Context, escopo visibilidade.Escopo) *gorm.DB {
	return escopo.Aplicar(r.db.WithContext(ctx).Table("beneficiarios"), "beneficiarios.id")
}

func (r *repositoryImpl) pagamentos(ctx context.Context, escopo visibilidade.Escopo) *gorm.DB {
	return escopo.Aplicar(r.db.WithContext(ctx).Table("pagamentos"), "pagamentos.beneficiario_id")
}

func (r *repositoryImpl) ContarBeneficiarios(ctx context.Context, escopo visibilidade.Escopo) (int64, error) {
	var n int64
	err := r.beneficiarios(ctx, escopo).Count(&n).Error
	return n, common.ErroDoBanco(err)
}

// ContarAtivos conta os ativos; com antesDe, só os clientes desde antes dessa data.
func (r *repositoryImpl) ContarAtivos(ctx context.Context, escopo visibilidade.Escopo, antesDe *time.Time) (int64, error) {
	q := r.beneficiarios(ctx, escopo).Where("beneficiarios.status = ?", beneficiario.StatusAtivo)
	if antesDe != nil {
		q = q.Where("beneficiarios.cliente_desde < ?", *antesDe)
	}
	var n int64
	err := q.Count(&n).Error
	return n, common.ErroDoBanco(err)
}

func (r *repositoryImpl) ReceitaConfirmada(ctx context.Context, escopo visibilidade.Escopo, inicio, fim time.Time) (decimal.Decimal, error) {
	var soma decimal.Decimal
	err := r.pagamentos(ctx, escopo).
		Select("COALESCE(SUM(pagamentos.valor), 0)").
		Where("pagamentos.status = ? AND pagamentos.confirmado_em >= ? AND pagamentos.confirmado_em < ?", financeiro.StatusPago, inicio, fim).
		Row().Scan(&soma)
	return soma, common.ErroDoBanco(err)
}

func (r *repositoryImpl) ContarPagamentos(ctx context.Context, escopo visibilidade.Escopo) (int64, int64, error) {
	var total, pagos int64
	err := r.pagamentos(ctx, escopo).
		Select("COUNT(*), COUNT(*) FILTER (WHERE pagamentos.status = ?)", financeiro.StatusPago).
		Row().Scan(&total, &pagos)
	return total, pagos, common.ErroDoBanco(err)
}

// Inadimplentes aplica a mesma regra de financeiro.Vencido no banco.
func (r *repositoryImpl) Inadimplentes(ctx context.Context, escopo visibilidade.Escopo, hoje time.Time) (int64, decimal.Decimal, error) {
	var (
		n    int64
		soma decimal.Decimal
	)
	err := r.pagamentos(ctx, escopo).
		Select("COUNT(*), COALESCE(SUM(pagamentos.valor), 0)").
		Where("pagamentos.status NOT IN ? AND pagamentos.data_vencimento < ?",
			[]financeiro.Status{financeiro.StatusPago, financeiro.StatusEmAnalise},
			financeiro.LimiteAtraso(hoje).Format(utils.LayoutData)).
		Row().Scan(&n, &soma)
	return n, soma, common.ErroDoBanco(err)
}
