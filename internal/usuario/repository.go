package usuario

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Criar(ctx context.Context, u *Usuario) error
	BuscarPorID(ctx context.Context, id uuid.UUID) (*Usuario, error)
	BuscarPorEmail(ctx context.Context, email string) (*Usuario, error)
	ListarTodos(ctx context.Context) ([]Usuario, error)
	Contar(ctx context.Context) (int64, error)
	Atualizar(ctx context.Context, u *Usuario) error
	Deletar(ctx context.Context, id uuid.UUID) error
}

type repositoryImpl struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

func (r *repositoryImpl) Criar(ctx context.Context, u *Usuario) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if common.ViolacaoUnica(err, "usuarios_email_key") {
		return common.ErrEmailDuplicado
	}
	return common.ErroDoBanco(err)
}

func (r *repositoryImpl) BuscarPorID(ctx context.Context, id uuid.UUID) (*Usuario, error) {
	var u Usuario
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, common.ErroDoBanco(err)
	}
	return &u, nil
}

func (r *repositoryImpl) BuscarPorEmail(ctx context.Context, email string) (*Usuario, error) {
	var u Usuario
	err := r.db.WithContext(ctx).Where("lower(email) = ?", NormalizarEmail(email)).First(&u).Error
	if err != nil {
		return nil, common.ErroDoBanco(err)
	}
	return &u, nil
}

func (r *repositoryImpl) ListarTodos(ctx context.Context) ([]Usuario, error) {
	var list []Usuario
	err := r.db.WithContext(ctx).Order("nome ASC").Find(&list).Error
	return list, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Contar(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Usuario{}).Count(&n).Error
	return n, common.ErroDoBanco(err)
}

func (r *repositoryImpl) Atualizar(ctx context.Context, u *Usuario) error {
	u.Email = NormalizarEmail(u.Email)
	err := r.db.WithContext(ctx).Save(u).Error
	if common.ViolacaoUnica(err, "usuarios_email_key") {
		return common.ErrEmailDuplicado
	}
	return common.ErroDoBanco(err)
}

// Deletar remove o usuário; pagamentos confirmados por ele ficam com confirmado_por NULL (FK SET NULL).
func (r *repositoryImpl) Deletar(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&Usuario{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("excluir usuário: %w", common.ErroDoBanco(res.Error))
	}
	if res.RowsAffected == 0 {
		return common.ErrNaoEncontrado
	}
	return nil
}
