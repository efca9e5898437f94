package beneficiario

import (
	"strings"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/google/uuid"
)

type Filtro struct {
	Status     Status
	VendedorID *uuid.UUID
	Busca      string
}

type CriarInput struct {
	Nome            string  `json:"nome"`
	CPF             string  `json:"cpf"`
	PlanoID         string  `json:"plano_id"`
	VendedorID      *string `json:"vendedor_id"`
	InicioCobertura *string `json:"inicio_cobertura"`
	Telefone        *string `json:"telefone"`
}

type criacao struct {
	nome            string
	cpf             string
	planoID         uuid.UUID
	vendedorID      *uuid.UUID
	inicioCobertura *time.Time
	telefone        *string
}

func (in CriarInput) validar() (criacao, error) {
	v := &common.ErroValidacao{}
	c := criacao{nome: utils.Texto(in.Nome), telefone: opcional(in.Telefone)}
	if c.nome == "" {
		v.Add("nome", "obrigatório")
	}
	if !utils.CPFValido(in.CPF) {
		v.Add("cpf", "CPF inválido")
	} else {
		c.cpf = NormalizarCPF(in.CPF)
	}
	c.planoID = utils.ParseUUID(v, "plano_id", in.PlanoID)
	if s := opcional(in.VendedorID); s != nil {
		id := utils.ParseUUID(v, "vendedor_id", *s)
		c.vendedorID = &id
	}
	if s := opcional(in.InicioCobertura); s != nil {
		d := utils.ParseData(v, "inicio_cobertura", *s)
		c.inicioCobertura = &d
	}
	return c, v.Err()
}

// AtualizarInput aceita atualização parcial. vendedor_id, inicio_cobertura e
// telefone vazios limpam o campo.
type AtualizarInput struct {
	Nome            *string `json:"nome"`
	CPF             *string `json:"cpf"`
	PlanoID         *string `json:"plano_id"`
	VendedorID      *string `json:"vendedor_id"`
	Status          *Status `json:"status"`
	InicioCobertura *string `json:"inicio_cobertura"`
	Telefone        *string `json:"telefone"`
}

type mudancas struct {
	cpfAlterado      bool
	planoAlterado    bool
	vendedorAlterado bool
}

func (in AtualizarInput) aplicar(b *Beneficiario) (mudancas, error) {
	v := &common.ErroValidacao{}
	var m mudancas
	if in.Nome != nil {
		if utils.Texto(*in.Nome) == "" {
			v.Add("nome", "obrigatório")
		}
		b.Nome = utils.Texto(*in.Nome)
	}
	if in.CPF != nil {
		if !utils.CPFValido(*in.CPF) {
			v.Add("cpf", "CPF inválido")
		} else if cpf := NormalizarCPF(*in.CPF); cpf != b.CPF {
			b.CPF = cpf
			m.cpfAlterado = true
		}
	}
	if in.PlanoID != nil {
		id := utils.ParseUUID(v, "plano_id", *in.PlanoID)
		m.planoAlterado = id != b.PlanoID
		b.PlanoID = id
	}
	if in.VendedorID != nil {
		var novo *uuid.UUID
		if s := opcional(in.VendedorID); s != nil {
			id := utils.ParseUUID(v, "vendedor_id", *s)
			novo = &id
		}
		m.vendedorAlterado = !mesmoID(novo, b.VendedorID)
		b.VendedorID = novo
	}
	if in.Status != nil {
		if !in.Status.Valido() {
			v.Add("status", "deve ser ativo, inadimplente ou inativo")
		}
		b.Status = *in.Status
	}
	if in.InicioCobertura != nil {
		b.InicioCobertura = nil
		if s := opcional(in.InicioCobertura); s != nil {
			d := utils.ParseData(v, "inicio_cobertura", *s)
			b.InicioCobertura = &d
		}
	}
	if in.Telefone != nil {
		b.Telefone = opcional(in.Telefone)
	}
	return m, v.Err()
}

// NormalizarCPF grava sempre no formato 000.000.000-00.
func NormalizarCPF(cpf string) string {
	d := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cpf)
	if len(d) != 11 {
		return strings.TrimSpace(cpf)
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

func mesmoID(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func opcional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
