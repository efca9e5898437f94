package plano

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
)

// Operadoras confere a existência da operadora referenciada.
type Operadoras interface {
	Existe(ctx context.Context, id uuid.UUID) (bool, error)
}

type Handler struct {
	Repository Repository
	Operadoras Operadoras
	Escopos    visibilidade.Resolvedor
	Log        logging.Logger
}

func NewHandler(repo Repository, ops Operadoras, escopos visibilidade.Resolvedor, log logging.Logger) *Handler {
	return &Handler{Repository: repo, Operadoras: ops, Escopos: escopos, Log: log}
}

// GET /planos?tipo=&operadora_id=&busca=
func (h *Handler) Listar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	v := &common.ErroValidacao{}
	f := Filtro{Tipo: Tipo(q.Get("tipo")), Busca: utils.Texto(q.Get("busca"))}
	if f.Tipo != "" && !f.Tipo.Valido() {
		v.Add("tipo", "deve ser individual, familiar ou empresarial")
	}
	if s := strings.TrimSpace(q.Get("operadora_id")); s != "" {
		id := utils.ParseUUID(v, "operadora_id", s)
		f.OperadoraID = &id
	}
	if err := v.Err(); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
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

// GET /planos/{id}
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
	p, err := h.Repository.BuscarPorID(r.Context(), escopo, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

// POST /planos
func (h *Handler) Criar(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.ExigirDoContexto(r.Context(), usuario.PapelAdmin, usuario.PapelFinanceiro); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	escopo, err := visibilidade.DoContexto(r.Context(), h.Escopos)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var req CriarPlanoRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	p, err := req.Plano()
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.conferirOperadora(r.Context(), p.OperadoraID); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.Repository.Criar(r.Context(), &p); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	criado, err := h.Repository.BuscarPorID(r.Context(), escopo, p.ID)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, criado)
}

// PUT /planos/{id}
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
	var req AtualizarPlanoRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	atual, err := h.Repository.BuscarPorID(r.Context(), escopo, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	trocou, err := req.Aplicar(&atual.Plano)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if trocou {
		if err := h.conferirOperadora(r.Context(), atual.OperadoraID); err != nil {
			utils.ResponderErro(w, r, h.Log, err)
			return
		}
	}
	if err := h.Repository.Atualizar(r.Context(), &atual.Plano); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	novo, err := h.Repository.BuscarPorID(r.Context(), escopo, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, novo)
}

// DELETE /planos/{id}
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
	utils.Mensagem(w, "plano removido com sucesso")
}

func (h *Handler) conferirOperadora(ctx context.Context, id uuid.UUID) error {
	ok, err := h.Operadoras.Existe(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return operadoraInexistente(id)
	}
	return nil
}
