package beneficiario

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAtivo        Status = "ativo"
	StatusInadimplente Status = "inadimplente"
	StatusInativo      Status = "inativo"
)

func (s Status) Valido() bool {
	switch s {
	case StatusAtivo, StatusInadimplente, StatusInativo:
		return true
	}
	return false
}

type Beneficiario struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Nome            string     `gorm:"size:150;not null" json:"nome"`
	CPF             string     `gorm:"column:cpf;size:14;not null" json:"cpf"`
	PlanoID         uuid.UUID  `gorm:"type:uuid;not null" json:"plano_id"`
	VendedorID      *uuid.UUID `gorm:"type:uuid" json:"vendedor_id"`
	Status          Status     `gorm:"size:15;not null" json:"status"`
	ClienteDesde    time.Time  `gorm:"not null" json:"cliente_desde"`
	InicioCobertura *time.Time `gorm:"type:date" json:"inicio_cobertura"`
	Telefone        *string    `gorm:"size:20" json:"telefone"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Beneficiario) TableName() string { return "beneficiarios" }

func (b *Beneficiario) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BeneficiarioView é o modelo de leitura achatado com plano, operadora e vendedor.
type BeneficiarioView struct {
	Beneficiario
	PlanoNome        string              `json:"plano_nome"`
	PlanoPreco       decimal.Decimal     `json:"plano_preco"`
	OperadoraID      uuid.UUID           `json:"operadora_id"`
	OperadoraNome    string              `json:"operadora_nome"`
	VendedorNome     *string             `json:"vendedor_nome"`
	VendedorComissao decimal.NullDecimal `json:"vendedor_comissao"`
}
