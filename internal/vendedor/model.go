package vendedor

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAtivo   Status = "ativo"
	StatusInativo Status = "inativo"
)

func (s Status) Valido() bool {
	return s == StatusAtivo || s == StatusInativo
}

// Vendedor é o corretor responsável por uma carteira de beneficiários.
// Comissao é um percentual (ex.: 5.5 = 5,5%).
type Vendedor struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Nome      string          `gorm:"size:150;not null" json:"nome"`
	Email     string          `gorm:"size:150;not null" json:"email"`
	Comissao  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"comissao"`
	Status    Status          `gorm:"size:10;not null" json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (Vendedor) TableName() string { return "vendedores" }

func (v *Vendedor) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Status == "" {
		v.Status = StatusAtivo
	}
	return nil
}

// VendedorView acrescenta a contagem viva de beneficiários da carteira.
type VendedorView struct {
	Vendedor
	TotalBeneficiarios int64 `json:"total_beneficiarios"`
}
