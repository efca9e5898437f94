package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestRecuperar(t *testing.T) {
	h := Recuperar(logging.Nop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"erro interno do servidor"}`, rec.Body.String())
}

func TestRegistrarRequisicoes_PreservaStatus(t *testing.T) {
	h := RegistrarRequisicoes(logging.Nop())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
