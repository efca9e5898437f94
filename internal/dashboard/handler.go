package dashboard

import (
	"net/http"

	"github.com/KromaEnergia/api-corretora/internal/auth"
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

// GET /dashboard/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	st, err := h.Service.Stats(r.Context(), sessao)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, st)
}

// GET /dashboard/revenue
func (h *Handler) Receita(w http.ResponseWriter, r *http.Request) {
	sessao, err := auth.SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	rv, err := h.Service.ReceitaMensal(r.Context(), sessao)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, rv)
}
