package operadora

import (
	"net/http"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
)

// Handler do catálogo de operadoras: leitura para todos, escrita para
// admin/financeiro, exclusão só admin. A contagem de beneficiários segue o
// escopo do chamador.
type Handler struct {
	Repository Repository
	Escopos    visibilidade.Resolvedor
	Log        logging.Logger
}

func NewHandler(repo Repository, escopos visibilidade.Resolvedor, log logging.Logger) *Handler {
	return &Handler{Repository: repo, Escopos: escopos, Log: log}
}

// GET /operadoras?status=&busca=
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

// GET /operadoras/{id}
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
	o, err := h.Repository.BuscarPorID(r.Context(), escopo, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, o)
}

// POST /operadoras
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.ExigirDoContexto(r.Context(), usuario.PapelAdmin, usuario.PapelFinanceiro); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var req CriarOperadoraRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := req.Validar(); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	o := req.Operadora()
	if err := h.Repository.Criar(r.Context(), &o); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, OperadoraView{Operadora: o})
}

// PUT /operadoras/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.ExigirDoContexto(r.Context(), usuario.PapelAdmin, usuario.PapelFinanceiro); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	escopo, err := visibilidade.DoContexto(r.Context(), h.Escopos)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var req AtualizarOperadoraRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	atual, err := h.Repository.BuscarPorID(r.Context(), escopo, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := req.Aplicar(&atual.Operadora); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.Repository.Atualizar(r.Context(), &atual.Operadora); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, atual)
}

// DELETE /operadoras/{id}
func (h *Handler) Deletar(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.ExigirDoContexto(r.Context(), usuario.PapelAdmin); err != nil {
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
	utils.Mensagem(w, "operadora removida com sucesso")
}
