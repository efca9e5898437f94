package plano

import (
	"strings"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CriarPlanoRequest struct {
	Nome        string          `json:"nome"`
	OperadoraID string          `json:"operadora_id"`
	Preco       decimal.Decimal `json:"preco"`
	Tipo        Tipo            `json:"tipo"`
	Popular     bool            `json:"popular"`
	Descricao   *string         `json:"descricao"`
}

func (req CriarPlanoRequest) Plano() (Plano, error) {
	v := &common.ErroValidacao{}
	if utils.Texto(req.Nome) == "" {
		v.Add("nome", "obrigatório")
	}
	opID := utils.ParseUUID(v, "operadora_id", req.OperadoraID)
	if req.Preco.IsNegative() {
		v.Add("preco", "não pode ser negativo")
	}
	if !req.Tipo.Valido() {
		v.Add("tipo", "deve ser individual, familiar ou empresarial")
	}
	if err := v.Err(); err != nil {
		return Plano{}, err
	}
	return Plano{
		Nome:        utils.Texto(req.Nome),
		OperadoraID: opID,
		Preco:       req.Preco.Round(2),
		Tipo:        req.Tipo,
		Popular:     req.Popular,
		Descricao:   descricao(req.Descricao),
	}, nil
}

type AtualizarPlanoRequest struct {
	Nome        *string          `json:"nome"`
	OperadoraID *string          `json:"operadora_id"`
	Preco       *decimal.Decimal `json:"preco"`
	Tipo        *Tipo            `json:"tipo"`
	Popular     *bool            `json:"popular"`
	Descricao   *string          `json:"descricao"`
}

// Aplicar devolve true quando a operadora foi trocada, para o chamador conferir se existe.
func (req AtualizarPlanoRequest) Aplicar(p *Plano) (bool, error) {
	v := &common.ErroValidacao{}
	trocouOperadora := false
	if req.Nome != nil {
		if utils.Texto(*req.Nome) == "" {
			v.Add("nome", "obrigatório")
		}
		p.Nome = utils.Texto(*req.Nome)
	}
	if req.OperadoraID != nil {
		id := utils.ParseUUID(v, "operadora_id", *req.OperadoraID)
		trocouOperadora = id != p.OperadoraID
		p.OperadoraID = id
	}
	if req.Preco != nil {
		if req.Preco.IsNegative() {
			v.Add("preco", "não pode ser negativo")
		}
		p.Preco = req.Preco.Round(2)
	}
	if req.Tipo != nil {
		if !req.Tipo.Valido() {
			v.Add("tipo", "deve ser individual, familiar ou empresarial")
		}
		p.Tipo = *req.Tipo
	}
	if req.Popular != nil {
		p.Popular = *req.Popular
	}
	if req.Descricao != nil {
		p.Descricao = descricao(req.Descricao)
	}
	return trocouOperadora, v.Err()
}

func descricao(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// operadoraInexistente é o erro de validação para operadora_id desconhecido.
func operadoraInexistente(id uuid.UUID) error {
	v := &common.ErroValidacao{}
	v.Add("operadora_id", "operadora "+id.String()+" não encontrada")
	return v
}
