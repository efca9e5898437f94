package vendedor

import (
	"net/http"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
)

type Handler struct {
	Repository Repository
	Escopos    visibilidade.Resolvedor
	Log        logging.Logger
}

func NewHandler(repo Repository, escopos visibilidade.Resolvedor, log logging.Logger) *Handler {
	return &Handler{Repository: repo, Escopos: escopos, Log: log}
}

// GET /vendedores?status=&busca=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	f := Filtro{
		Status: Status(r.URL.Query().Get("status")),
		Busca:  utils.Texto(r.URL.Query().Get("busca")),
	}
	escopo, err := visibilidade.DoContexto(r.Context(), h.Escopos)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	list, err := h.Repository.Listar(r.Context(), escopo, f)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

// GET /vendedores/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	escopo, err := visibilidade.DoContexto(r.Context(), h.Escopos)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	v, err := h.Repository.BuscarPorID(r.Context(), escopo, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, v)
}

// POST /vendedores (admin)
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	if err := exigirAdmin(r); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var req CriarVendedorRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := req.Validar(); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	v := Vendedor{
		Nome:     utils.Texto(req.Nome),
		Email:    utils.Texto(req.Email),
		Comissao: req.Comissao,
		Status:   req.Status,
	}
	if err := h.Repository.Criar(r.Context(), &v); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, VendedorView{Vendedor: v})
}

// PUT /vendedores/{id} (admin)
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	if err := exigirAdmin(r); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var req AtualizarVendedorRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	escopo, err := visibilidade.DoContexto(r.Context(), h.Escopos)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	atual, err := h.Repository.BuscarPorID(r.Context(), escopo, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := req.Aplicar(&atual.Vendedor); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.Repository.Atualizar(r.Context(), &atual.Vendedor); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, atual)
}

// DELETE /vendedores/{id} (admin). Beneficiários e usuários vinculados ficam sem vendedor.
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if err := exigirAdmin(r); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.Repository.Deletar(r.Context(), id); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.Mensagem(w, "vendedor removido com sucesso")
}

func exigirAdmin(r *http.Request) error {
	_, err := auth.ExigirDoContexto(r.Context(), usuario.PapelAdmin)
	return err
}
