package configuracao

import (
	"time"

	"github.com/shopspring/decimal"
)

// IDUnico é a chave da única linha de configurações.
const IDUnico = 1

// ConfiguracaoGlobal guarda parâmetros comerciais editáveis. Os valores são
// persistidos e devolvidos; a regra de atraso usa a carência fixa do financeiro.
type ConfiguracaoGlobal struct {
	ID           int16           `gorm:"primaryKey;autoIncrement:false" json:"-"`
	TaxaAdmin    decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"taxa_admin"`
	DiasCarencia int             `gorm:"not null" json:"dias_carencia"`
	MultaAtraso  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"multa_atraso"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (ConfiguracaoGlobal) TableName() string { return "configuracoes" }

// Padrao espelha o seed da migração.
func Padrao() ConfiguracaoGlobal {
	return ConfiguracaoGlobal{
		ID:           IDUnico,
		TaxaAdmin:    decimal.Zero,
		DiasCarencia: 1,
		MultaAtraso:  decimal.NewFromInt(2),
	}
}
