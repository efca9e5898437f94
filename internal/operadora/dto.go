package operadora

import (
	"strings"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
)

type CriarOperadoraRequest struct {
	Nome     string  `json:"nome"`
	Status   Status  `json:"status"`
	Cor      string  `json:"cor"`
	CNPJ     *string `json:"cnpj"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
	Endereco *string `json:"endereco"`
}

func (req CriarOperadoraRequest) Validar() error {
	v := &common.ErroValidacao{}
	if utils.Texto(req.Nome) == "" {
		v.Add("nome", "obrigatório")
	}
	if req.Status != "" && !req.Status.Valido() {
		v.Add("status", "deve ser ativa ou inativa")
	}
	if req.Cor != "" && !utils.CorValida(req.Cor) {
		v.Add("cor", "deve estar no formato #RRGGBB")
	}
	validarContato(v, req.CNPJ, req.Email)
	return v.Err()
}

func (req CriarOperadoraRequest) Operadora() Operadora {
	return Operadora{
		Nome:     utils.Texto(req.Nome),
		Status:   req.Status,
		Cor:      strings.ToUpper(req.Cor),
		CNPJ:     opcional(req.CNPJ),
		Telefone: opcional(req.Telefone),
		Email:    opcional(req.Email),
		Endereco: opcional(req.Endereco),
	}
}

type AtualizarOperadoraRequest struct {
	Nome     *string `json:"nome"`
	Status   *Status `json:"status"`
	Cor      *string `json:"cor"`
	CNPJ     *string `json:"cnpj"`
	Telefone *string `json:"telefone"`
	Email    *string `json:"email"`
	Endereco *string `json:"endereco"`
}

// Aplicar copia para o registro apenas os campos enviados. String vazia limpa
// os campos opcionais.
func (req AtualizarOperadoraRequest) Aplicar(o *Operadora) error {
	v := &common.ErroValidacao{}
	if req.Nome != nil {
		if utils.Texto(*req.Nome) == "" {
			v.Add("nome", "obrigatório")
		}
		o.Nome = utils.Texto(*req.Nome)
	}
	if req.Status != nil {
		if !req.Status.Valido() {
			v.Add("status", "deve ser ativa ou inativa")
		}
		o.Status = *req.Status
	}
	if req.Cor != nil {
		if !utils.CorValida(*req.Cor) {
			v.Add("cor", "deve estar no formato #RRGGBB")
		}
		o.Cor = strings.ToUpper(*req.Cor)
	}
	validarContato(v, req.CNPJ, req.Email)
	if req.CNPJ != nil {
		o.CNPJ = opcional(req.CNPJ)
	}
	if req.Telefone != nil {
		o.Telefone = opcional(req.Telefone)
	}
	if req.Email != nil {
		o.Email = opcional(req.Email)
	}
	if req.Endereco != nil {
		o.Endereco = opcional(req.Endereco)
	}
	return v.Err()
}

func validarContato(v *common.ErroValidacao, cnpj, email *string) {
	if c := opcional(cnpj); c != nil && !utils.CNPJValido(*c) {
		v.Add("cnpj", "CNPJ inválido")
	}
	if e := opcional(email); e != nil && !utils.EmailValido(*e) {
		v.Add("email", "email inválido")
	}
}

func opcional(s *string) *string {
	if s == nil {
		return nil
	}
	t := utils.Texto(*s)
	if t == "" {
		return nil
	}
	return &t
}
