package configuracao

import (
	"context"
	"errors"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	Obter(ctx context.Context) (*ConfiguracaoGlobal, error)
	Salvar(ctx context.Context, c *ConfiguracaoGlobal) error
}

type repositoryImpl struct {
	db    *gorm.DB
	agora func() time.Time
}

func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db, agora: time.Now}
}

// Obter devolve a linha única; sem linha, devolve os padrões.
func (r *repositoryImpl) Obter(ctx context.Context) (*ConfiguracaoGlobal, error) {
	var c ConfiguracaoGlobal
	err := r.db.WithContext(ctx).First(&c, "id = ?", IDUnico).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p := Padrao()
		return &p, nil
	}
	if err != nil {
		return nil, common.ErroDoBanco(err)
	}
	return &c, nil
}

// Salvar faz upsert na linha única e carimba updated_at a cada gravação.
func (r *repositoryImpl) Salvar(ctx context.Context, c *ConfiguracaoGlobal) error {
	c.ID = IDUnico
	c.UpdatedAt = r.agora().UTC()
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"taxa_admin", "dias_carencia", "multa_atraso", "updated_at"}),
		}).
		Create(c).Error
	return common.ErroDoBanco(err)
}
