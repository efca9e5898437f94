package beneficiario

import (
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/utils"
)

type Handler struct {
	Service *Service
	Log     logging.Logger
}

func NewHandler(svc *Service, log logging.Logger) *Handler {
	return &Handler{Service: svc, Log: log}
}

// GET /beneficiarios?status=&vendedor_id=&busca=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	q := r.URL.Query()
	v := &common.ErroValidacao{}
	f := Filtro{Status: Status(q.Get("status")), Busca: utils.Texto(q.Get("busca"))}
	if f.Status != "" && !f.Status.Valido() {
		v.Add("status", "deve ser ativo, inadimplente ou inativo")
	}
	if s := strings.TrimSpace(q.Get("vendedor_id")); s != "" {
		id := utils.ParseUUID(v, "vendedor_id", s)
		f.VendedorID = &id
	}
	if err := v.Err(); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	list, err := h.Service.Listar(r.Context(), sessao, f)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// GET /beneficiarios/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	b, err := h.Service.Buscar(r.Context(), sessao, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

// POST /beneficiarios
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var in CriarInput
	if err := utils.Decodificar(r, &in); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	b, err := h.Service.Criar(r.Context(), sessao, in)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, b)
}

// PUT /beneficiarios/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var in AtualizarInput
	if err := utils.Decodificar(r, &in); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	b, err := h.Service.Atualizar(r.Context(), sessao, id, in)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, b)
}

// DELETE /beneficiarios/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.Service.Deletar(r.Context(), sessao, id); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.Mensagem(w, "beneficiário removido com sucesso")
}
