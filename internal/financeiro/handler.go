package financeiro

import (
	"context"
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/google/uuid"
)

/* ============================== Handler ============================== */

type Handler struct {
	Service *Service
	Log     logging.Logger
}

func NewHandler(svc *Service, log logging.Logger) *Handler {
	return &Handler{Service: svc, Log: log}
}

// GET /financeiro?status=&beneficiario_id=&busca=
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
		v.Add("status", "status desconhecido")
	}
	if s := strings.TrimSpace(q.Get("beneficiario_id")); s != "" {
		id := utils.ParseUUID(v, "beneficiario_id", s)
		f.BeneficiarioID = &id
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

// GET /financeiro/{id}
func (h *Handler) Buscar(w http.ResponseWriter, r *http.Request) {
	h.comID(w, r, http.StatusOK, func(ctx context.Context, s *auth.Sessao, id uuid.UUID) (any, error) {
		return h.Service.Buscar(ctx, s, id)
	})
}

// POST /financeiro
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
	p, err := h.Service.Criar(r.Context(), sessao, in)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

// PUT /financeiro/{id}
func (h *Handler) Atualizar(w http.ResponseWriter, r *http.Request) {
	var in AtualizarInput
	if err := utils.Decodificar(r, &in); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	h.comID(w, r, http.StatusOK, func(ctx context.Context, s *auth.Sessao, id uuid.UUID) (any, error) {
		return h.Service.Atualizar(ctx, s, id, in)
	})
}

// POST /financeiro/{id}/boleto
func (h *Handler) AnexarComprovante(w http.ResponseWriter, r *http.Request) {
	var in ComprovanteInput
	if err := utils.Decodificar(r, &in); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	h.comID(w, r, http.StatusOK, func(ctx context.Context, s *auth.Sessao, id uuid.UUID) (any, error) {
		return h.Service.AnexarComprovante(ctx, s, id, in)
	})
}

// POST /financeiro/{id}/confirmar
func (h *Handler) Confirmar(w http.ResponseWriter, r *http.Request) {
	h.comID(w, r, http.StatusOK, func(ctx context.Context, s *auth.Sessao, id uuid.UUID) (any, error) {
		return h.Service.Confirmar(ctx, s, id)
	})
}

// POST /financeiro/{id}/rejeitar
func (h *Handler) Rejeitar(w http.ResponseWriter, r *http.Request) {
	h.comID(w, r, http.StatusOK, func(ctx context.Context, s *auth.Sessao, id uuid.UUID) (any, error) {
		return h.Service.Rejeitar(ctx, s, id)
	})
}

// DELETE /financeiro/{id}
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
	utils.Mensagem(w, "pagamento removido com sucesso")
}

/* ============================== Utilidades ============================== */

// comID resolve sessão e {id} e escreve o resultado de fn.
func (h *Handler) comID(w http.ResponseWriter, r *http.Request, status int, fn func(context.Context, *auth.Sessao, uuid.UUID) (any, error)) {
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
	out, err := fn(r.Context(), sessao, id)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, status, out)
}
