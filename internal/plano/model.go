package plano

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Tipo string

const (
	TipoIndividual  Tipo = "individual"
	TipoFamiliar    Tipo = "familiar"
	TipoEmpresarial Tipo = "empresarial"
)

func (t Tipo) Valido() bool {
	switch t {
	case TipoIndividual, TipoFamiliar, TipoEmpresarial:
		return true
	}
	return false
}

type Plano struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Nome        string          `gorm:"size:150;not null" json:"nome"`
	OperadoraID uuid.UUID       `gorm:"type:uuid;not null" json:"operadora_id"`
	Preco       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"preco"`
	Tipo        Tipo            `gorm:"size:15;not null" json:"tipo"`
	Popular     bool            `gorm:"not null" json:"popular"`
	Descricao   *string         `json:"descricao"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Plano) TableName() string { return "planos" }

func (p *Plano) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PlanoView junta o nome da operadora e a contagem de beneficiários.
type PlanoView struct {
	Plano
	OperadoraNome      string `json:"operadora_nome"`
	TotalBeneficiarios int64  `json:"total_beneficiarios"`
}
