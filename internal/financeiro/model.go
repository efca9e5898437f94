package financeiro

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPendente  Status = "pendente"
	StatusAtrasado  Status = "atrasado"
	StatusEmAnalise Status = "em_analise"
	StatusPago      Status = "pago"
)

func (s Status) Valido() bool {
	switch s {
	case StatusPendente, StatusAtrasado, StatusEmAnalise, StatusPago:
		return true
	}
	return false
}

// Pagamento é uma cobrança mensal de um beneficiário.
type Pagamento struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	BeneficiarioID uuid.UUID       `gorm:"type:uuid;not null" json:"beneficiario_id"`
	Valor          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"valor"`
	DataVencimento time.Time       `gorm:"type:date;not null" json:"data_vencimento"`
	Status         Status          `gorm:"size:15;not null" json:"status"`
	BoletoNome     *string         `gorm:"size:255" json:"boleto_nome"`
	BoletoURL      *string         `gorm:"column:boleto_url" json:"boleto_url"`
	ConfirmadoPor  *uuid.UUID      `gorm:"type:uuid" json:"confirmado_por"`
	ConfirmadoEm   *time.Time      `json:"confirmado_em"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (Pagamento) TableName() string { return "pagamentos" }

func (p *Pagamento) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// PagamentoView é o modelo de leitura com os dados do beneficiário e o atraso
// calculado no momento da leitura.
type PagamentoView struct {
	Pagamento
	BeneficiarioNome  string     `json:"beneficiario_nome"`
	BeneficiarioCPF   string     `gorm:"column:beneficiario_cpf" json:"beneficiario_cpf"`
	PlanoNome         string     `json:"plano_nome"`
	OperadoraNome     string     `json:"operadora_nome"`
	VendedorID        *uuid.UUID `json:"vendedor_id"`
	VendedorNome      *string    `json:"vendedor_nome"`
	ConfirmadoPorNome *string    `json:"confirmado_por_nome"`
	Atrasado          bool       `gorm:"-" json:"atrasado"`
	DiasAtraso        int        `gorm:"-" json:"dias_atraso"`
}
