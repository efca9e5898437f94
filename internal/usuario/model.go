package usuario

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Papel é o conjunto fechado de perfis de acesso.
type Papel string

const (
	PapelAdmin      Papel = "admin"
	PapelFinanceiro Papel = "financeiro"
	PapelVendedor   Papel = "vendedor"
)

func (p Papel) Valido() bool {
	switch p {
	case PapelAdmin, PapelFinanceiro, PapelVendedor:
		return true
	}
	return false
}

// Usuario é quem acessa o painel. Um vendedor precisa de VendedorID para enxergar dados.
type Usuario struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Nome       string     `gorm:"size:150;not null" json:"nome"`
	Email      string     `gorm:"size:150;not null" json:"email"`
	SenhaHash  string     `gorm:"column:senha_hash;not null" json:"-"`
	Papel      Papel      `gorm:"size:15;not null" json:"papel"`
	VendedorID *uuid.UUID `gorm:"type:uuid" json:"vendedor_id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Usuario) TableName() string { return "usuarios" }

func (u *Usuario) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	u.Email = NormalizarEmail(u.Email)
	return nil
}

// NormalizarEmail aplica a regra de unicidade sem diferenciar maiúsculas.
func NormalizarEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
