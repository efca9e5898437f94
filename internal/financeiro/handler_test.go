package financeiro

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_AnexarConfirmarRejeitar(t *testing.T) {
	repo := newRepoFake()
	ben := uuid.New()
	repo.beneficiarios[ben] = nil
	p := repo.add(ben, StatusPendente, dia(20))
	h := NewHandler(novoService(repo), logging.Nop())

	r := mux.NewRouter()
	r.HandleFunc("/financeiro/{id}/boleto", h.AnexarComprovante).Methods(http.MethodPost)
	r.HandleFunc("/financeiro/{id}/confirmar", h.Confirmar).Methods(http.MethodPost)
	r.HandleFunc("/financeiro/{id}/rejeitar", h.Rejeitar).Methods(http.MethodPost)

	chamar := func(acao, corpo string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/financeiro/"+p.ID.String()+"/"+acao, strings.NewReader(corpo))
		req = req.WithContext(auth.ComSessao(req.Context(), &auth.Sessao{UsuarioID: uuid.New(), Papel: usuario.PapelFinanceiro}))
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	rec := chamar("boleto", `{"boleto_nome":""}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = chamar("boleto", `{"boleto_nome":"b.pdf","boleto_url":"https://cdn/b.pdf"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var pv PagamentoView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&pv))
	assert.Equal(t, StatusEmAnalise, pv.Status)

	rec = chamar("confirmar", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = chamar("rejeitar", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "transição")
	assert.Equal(t, StatusPago, repo.pagamentos[p.ID].Status)
}

func TestHandler_IDInvalido(t *testing.T) {
	h := NewHandler(novoService(newRepoFake()), logging.Nop())
	req := httptest.NewRequest(http.MethodGet, "/financeiro/abc", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "abc"})
	req = req.WithContext(auth.ComSessao(req.Context(), &auth.Sessao{Papel: usuario.PapelAdmin}))
	rec := httptest.NewRecorder()
	h.Buscar(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
