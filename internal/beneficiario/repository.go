package beneficiario

import (
	"context"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const constraintCPF = "beneficiarios_cpf_key"

type Repository interface {
	Criar(ctx context.Context, b *Beneficiario) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*Beneficiario, error)
	BuscarView(ctx context.Context, id uuid.UUID) (*BeneficiarioView, error)
	Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]BeneficiarioView, error)
	ExisteCPF(ctx context.Context, cpf string) (bool, error)
	PlanoExiste(ctx context.Context, planoID uuid.UUID) (bool, error)
	VendedorExiste(ctx context.Context, vendedorID uuid.UUID) (bool, error)
	Atualizar(ctx context.Context, b *Beneficiario) error
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
		Table("beneficiarios").
		Select(`beneficiarios.*,
			planos.nome AS plano_nome, planos.preco AS plano_preco,
			operadoras.id AS operadora_id, operadoras.nome AS operadora_nome,
			vendedores.nome AS vendedor_nome, vendedores.comissao AS vendedor_comissao`).
		Joins("JOIN planos ON planos.id = beneficiarios.plano_id").
		Joins("JOIN operadoras ON operadoras.id = planos.operadora_id").
		Joins("LEFT JOIN vendedores ON vendedores.id = beneficiarios.vendedor_id")
}

func (r *repositoryImpl) Criar(ctx context.Context, b *Beneficiario) error {
	err := r.db.WithContext(ctx).Create(b).Error
	if common.ViolacaoUnica(err, constraintCPF) {
		return common.ErrCPFDuplicado
	}
	return common.ErroDoBanco(err)
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, id uuid.UUID) (*Beneficiario, error) {
	var b Beneficiario
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, common.ErroDoBanco(err)
	}
	return &b, nil
}

func (r *repositoryImpl) BuscarView(ctx context.Context, id uuid.UUID) (*BeneficiarioView, error) {
	var out []BeneficiarioView
	if err := r.view(ctx).Where("beneficiarios.id = ?", id).Limit(1).Scan(&out).Error; err != nil {
		return nil, common.ErroDoBanco(err)
	}
	if len(out) == 0 {
		return nil, common.ErrNaoEncontrado
	}
	return &out[0], nil
}

// Listar aplica primeiro o escopo de visibilidade e depois os filtros.
func (r *repositoryImpl) Listar(ctx context.Context, escopo visibilidade.Escopo, f Filtro) ([]BeneficiarioView, error) {
	q := escopo.Aplicar(r.view(ctx), "beneficiarios.id")
	if f.Status != "" {
		q = q.Where("beneficiarios.status = ?", f.Status)
	}
	if f.VendedorID != nil {
		q = q.Where("beneficiarios.vendedor_id = ?", *f.VendedorID)
	}
	if f.Busca != "" {
		like := utils.PadraoBusca(f.Busca)
		q = q.Where("beneficiarios.nome ILIKE ? OR beneficiarios.cpf ILIKE ?", like, like)
	}
	out := []BeneficiarioView{}
	err := q.Order("beneficiarios.nome").Scan(&out).Error
	return out, common.ErroDoBanco(err)
}

func (r *repositoryImpl) ExisteCPF(ctx context.Context, cpf string) (bool, error) {
	return r.existe(ctx, "beneficiarios", "cpf = ?", cpf)
}

func (r *repositoryImpl) PlanoExiste(ctx context.Context, planoID uuid.UUID) (bool, error) {
	return r.existe(ctx, "planos", "id = ?", planoID)
}

func (r *repositoryImpl) VendedorExiste(ctx context.Context, vendedorID uuid.UUID) (bool, error) {
	return r.existe(ctx, "vendedores", "id = ?", vendedorID)
}

func (r *repositoryImpl) existe(ctx context.Context, tabela, cond string, arg any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Table(tabela).Where(cond, arg).Count(&n).Error
	return n > 0, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, b *Beneficiario) error {
	err := r.db.WithContext(ctx).Save(b).Error
	if common.ViolacaoUnica(err, constraintCPF) {
		return common.ErrCPFDuplicado
	}
	return common.ErroDoBanco(err)
}

// Deletar remove os pagamentos e depois o beneficiário numa única transação.
func (r *repositoryImpl) Deletar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM pagamentos WHERE beneficiario_id = ?", id).Error; err != nil {
			return common.ErroDoBanco(err)
		}
		res := tx.Delete(&Beneficiario{}, "id = ?", id)
		if res.Error != nil {
			return common.ErroDoBanco(res.Error)
		}
		if res.RowsAffected == 0 {
			return common.ErrNaoEncontrado
		}
		return nil
	})
}
