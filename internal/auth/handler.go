package auth

import (
	"net/http"

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

type loginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Login devolve o token e o perfil para credenciais válidas.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.Decodificar(r, &req); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	resp, err := h.Service.Autenticar(r.Context(), req.Email, req.Senha)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	h.Log.Info(r.Context(), "login", "usuario_id", resp.Usuario.ID)
	utils.JSON(w, http.StatusOK, resp)
}

// Registrar é rota pública; um Bearer token, quando enviado, identifica o admin
// que cadastra outros papéis.
func (h *Handler) Registrar(w http.ResponseWriter, r *http.Request) {
	chamador, err := h.Service.sessaoDaRequisicao(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var in RegistroInput
	if err := utils.Decodificar(r, &in); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	p, err := h.Service.Registrar(r.Context(), chamador, in)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusCreated, p)
}

// Me devolve o perfil do chamador.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sessao, err := SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	p, err := h.Service.Perfil(r.Context(), sessao)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *Handler) ListarUsuarios(w http.ResponseWriter, r *http.Request) {
	sessao, err := SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	list, err := h.Service.ListarUsuarios(r.Context(), sessao)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, list)
}

func (h *Handler) AtualizarUsuario(w http.ResponseWriter, r *http.Request) {
	sessao, err := SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	var in AtualizarUsuarioInput
	if err := utils.Decodificar(r, &in); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	p, err := h.Service.AtualizarUsuario(r.Context(), sessao, id, in)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.JSON(w, http.StatusOK, p)
}

func (h *Handler) DeletarUsuario(w http.ResponseWriter, r *http.Request) {
	sessao, err := SessaoDoContexto(r.Context())
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	id, err := utils.IDDaRota(r)
	if err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	if err := h.Service.DeletarUsuario(r.Context(), sessao, id); err != nil {
		utils.ResponderErro(w, r, h.Log, err)
		return
	}
	utils.Mensagem(w, "usuário removido com sucesso")
}
