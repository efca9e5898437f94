package utils

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
)

type erroResposta struct {
	Error    string                 `json:"error"`
	Detalhes []common.CampoInvalido `json:"detalhes,omitempty"`
}

// JSON escreve v com o status informado.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Mensagem escreve {"message": msg}; usado nas exclusões.
func Mensagem(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, map[string]string{"message": msg})
}

// Erro escreve {"error": msg} com o status informado.
func Erro(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, erroResposta{Error: msg})
}

// StatusDoErro traduz um erro de domínio para o status HTTP correspondente.
func StatusDoErro(err error) int {
	var arm *common.ErroArmazenamento
	switch {
	case errors.Is(err, common.ErrCredenciaisInvalidas),
		errors.Is(err, common.ErrTokenInvalido),
		errors.Is(err, common.ErrChamadorNaoEncontrado),
		errors.Is(err, common.ErrSessaoExpirada):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrProibido):
		return http.StatusForbidden
	case errors.Is(err, common.ErrNaoEncontrado):
		return http.StatusNotFound
	case errors.Is(err, common.ErrCPFDuplicado),
		errors.Is(err, common.ErrEmailDuplicado),
		errors.Is(err, common.ErrTransicaoInvalida),
		errors.As(err, &arm):
		return http.StatusBadRequest
	}
	if _, ok := common.EhValidacao(err); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// ResponderErro escreve a resposta de erro padrão. Erros não mapeados viram um 500
// opaco e são registrados no log.
func ResponderErro(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	status := StatusDoErro(err)
	if status == http.StatusInternalServerError {
		if log != nil {
			log.Error(r.Context(), "erro interno", "metodo", r.Method, "rota", r.URL.Path, "erro", err)
		}
		Erro(w, status, "erro interno do servidor")
		return
	}
	resp := erroResposta{Error: err.Error()}
	if v, ok := common.EhValidacao(err); ok {
		resp.Error = "dados inválidos"
		resp.Detalhes = v.Campos
	}
	var arm *common.ErroArmazenamento
	if errors.As(err, &arm) {
		resp.Error = arm.Mensagem
	}
	JSON(w, status, resp)
}

// Decodificar lê o corpo JSON em dst; corpo malformado vira ErroValidacao.
func Decodificar(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		v := &common.ErroValidacao{}
		v.Add("body", "JSON inválido: "+err.Error())
		return v
	}
	return nil
}
