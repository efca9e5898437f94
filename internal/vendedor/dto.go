package vendedor

import (
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/shopspring/decimal"
)

type CriarVendedorRequest struct {
	Nome     string          `json:"nome"`
	Email    string          `json:"email"`
	Comissao decimal.Decimal `json:"comissao"`
	Status   Status          `json:"status"`
}

var cem = decimal.NewFromInt(100)

func validarComissao(v *common.ErroValidacao, c decimal.Decimal) {
	if c.IsNegative() || c.GreaterThan(cem) {
		v.Add("comissao", "deve estar entre 0 e 100")
	}
}

func (req CriarVendedorRequest) Validar() error {
	v := &common.ErroValidacao{}
	if utils.Texto(req.Nome) == "" {
		v.Add("nome", "obrigatório")
	}
	if !utils.EmailValido(req.Email) {
		v.Add("email", "email inválido")
	}
	validarComissao(v, req.Comissao)
	if req.Status != "" && !req.Status.Valido() {
		v.Add("status", "deve ser ativo ou inativo")
	}
	return v.Err()
}

// AtualizarVendedorRequest aceita atualização parcial.
type AtualizarVendedorRequest struct {
	Nome     *string          `json:"nome"`
	Email    *string          `json:"email"`
	Comissao *decimal.Decimal `json:"comissao"`
	Status   *Status          `json:"status"`
}

func (req AtualizarVendedorRequest) Aplicar(vd *Vendedor) error {
	v := &common.ErroValidacao{}
	if req.Nome != nil {
		if utils.Texto(*req.Nome) == "" {
			v.Add("nome", "obrigatório")
		}
		vd.Nome = utils.Texto(*req.Nome)
	}
	if req.Email != nil {
		if !utils.EmailValido(*req.Email) {
			v.Add("email", "email inválido")
		}
		vd.Email = utils.Texto(*req.Email)
	}
	if req.Comissao != nil {
		validarComissao(v, *req.Comissao)
		vd.Comissao = *req.Comissao
	}
	if req.Status != nil {
		if !req.Status.Valido() {
			v.Add("status", "deve ser ativo ou inativo")
		}
		vd.Status = *req.Status
	}
	return v.Err()
}
