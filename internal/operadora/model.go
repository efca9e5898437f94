package operadora

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Status string

const (
	StatusAtiva   Status = "ativa"
	StatusInativa Status = "inativa"
)

func (s Status) Valido() bool {
	return s == StatusAtiva || s == StatusInativa
}

const CorPadrao = "#3B82F6"

// Operadora é a seguradora que oferece os planos.
type Operadora struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Nome      string    `gorm:"size:150;not null" json:"nome"`
	Status    Status    `gorm:"size:10;not null" json:"status"`
	Cor       string    `gorm:"size:7;not null" json:"cor"`
	CNPJ      *string   `gorm:"column:cnpj;size:18" json:"cnpj"`
	Telefone  *string   `gorm:"size:20" json:"telefone"`
	Email     *string   `gorm:"size:150" json:"email"`
	Endereco  *string   `json:"endereco"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Operadora) TableName() string { return "operadoras" }

func (o *Operadora) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = StatusAtiva
	}
	if o.Cor == "" {
		o.Cor = CorPadrao
	}
	return nil
}

// OperadoraView traz as contagens calculadas na consulta.
type OperadoraView struct {
	Operadora
	TotalPlanos        int64 `json:"total_planos"`
	TotalBeneficiarios int64 `json:"total_beneficiarios"`
}
