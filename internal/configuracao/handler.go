package configuracao

import (
	"net/http"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/shopspring/decimal"
)

type Handler struct {
	Repository Repository
	Log        logging.Logger
}

func NewHandler(repo Repository, log logging.Logger) *Handler {
	return &Handler{Repository: repo, Log: log}
}

type AtualizarRequest struct {
	TaxaAdmin    *decimal.Decimal `json:"taxa_admin"`
	DiasCarencia *int             `json:"dias_carencia"`
	MultaAtraso  *decimal.Decimal `json:"multa_atraso"`
}

var cem = decimal.NewFromInt(100)

func percentual(v *common.ErroValidacao, campo string, d decimal.Decimal) {
	if d.IsNegative() || d.GreaterThan(cem) {
		v.Add(campo, "deve estar entre 0 e 100")
	}
}

func (req AtualizarRequest) Aplicar(c *ConfiguracaoGlobal) error {
	v := &common.ErroValidacao{}
	if req.TaxaAdmin != nil {
		percentual(v, "taxa_admin", *req.TaxaAdmin)
		c.TaxaAdmin = req.TaxaAdmin.Round(2)
	}
	if req.DiasCarencia != nil {
		if *req.DiasCarencia < 0 {
			v.Add("dias_carencia", "não pode ser negativo")
		}
		c.DiasCarencia = *req.DiasCarencia
	}
	if req.MultaAtraso != nil {
		percentual(v, "multa_atraso", *req.MultaAtraso)
		c.MultaAtraso = req.MultaAtraso.Round(2)
	}
	return v.Err()
}

// GET /configuracoes
func (h *Handler) Obter(w http.ResponseWriter, r *http.Request) {
	c, err := h.Repository.Obter(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, c)
}

// PUT /configuracoes (admin)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.ExigirDoContexto(r.Context(), usuario.PapelAdmin)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var req AtualizarRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	c, err := h.Repository.Obter(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := req.Aplicar(c); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.Repository.Salvar(r.Context(), c); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	h.Log.Info(r.Context(), "configurações atualizadas", "usuario_id", sessao.UsuarioID)
	utils.JSON(w, http.StatusOK, c)
}
