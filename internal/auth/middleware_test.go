package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	u := novoUsuario(usuario.PapelFinanceiro, "segredo1")
	s := novoService(newFakeUsuarios(u), agoraFixo)
	resp, err := s.Autenticar(context.Background(), u.Email, "segredo1")
	require.NoError(t, err)

	var vista *Sessao
	h := s.Middleware(logging.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		vista, _ = SessaoDoContexto(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("sem token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token inválido", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer abc")
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		var body map[string]any
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		assert.Contains(t, body["error"], "token")
	})

	t.Run("preflight passa direto", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/auth/me", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})

	t.Run("válido", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+resp.Token)
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
		require.NotNil(t, vista)
		assert.Equal(t, u.ID, vista.UsuarioID)
	})
}

func TestExigirPapeis(t *testing.T) {
	h := ExigirPapeis(usuario.PapelAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req = req.WithContext(ComSessao(req.Context(), &Sessao{Papel: usuario.PapelVendedor}))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	req = req.WithContext(ComSessao(req.Context(), &Sessao{Papel: usuario.PapelAdmin}))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlerLogin_SenhaErrada(t *testing.T) {
	u := novoUsuario(usuario.PapelAdmin, "segredo1")
	h := NewHandler(novoService(newFakeUsuarios(u), agoraFixo), logging.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@corretora.com","senha":"x"}`))
	h.Login(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"ana@corretora.com","senha":"segredo1"}`))
	h.Login(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotEmpty(t, body["token"])
}

func TestHandlerMe(t *testing.T) {
	u := novoUsuario(usuario.PapelVendedor, "segredo1")
	s := novoService(newFakeUsuarios(u), agoraFixo)
	resp, err := s.Autenticar(context.Background(), u.Email, "segredo1")
	require.NoError(t, err)
	h := s.Middleware(logging.Nop())(http.HandlerFunc(NewHandler(s, logging.Nop()).Me))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var p PerfilView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, u.ID, p.ID)
	assert.Equal(t, usuario.PapelVendedor, p.Papel)
	assert.Nil(t, p.VendedorID)
}

func TestRegistrarHandler_TokenDeAdminLiberaOutrosPapeis(t *testing.T) {
	admin := novoUsuario(usuario.PapelAdmin, "segredo1")
	s := novoService(newFakeUsuarios(admin), agoraFixo)
	resp, err := s.Autenticar(context.Background(), admin.Email, "segredo1")
	require.NoError(t, err)
	h := NewHandler(s, logging.Nop())

	corpo := `{"nome":"Fin","email":"fin@x.com","senha":"123456","papel":"financeiro"}`

	rec := httptest.NewRecorder()
	h.Registrar(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(corpo)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(corpo))
	req.Header.Set("Authorization", "Bearer abc")
	rec = httptest.NewRecorder()
	h.Registrar(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(corpo))
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	h.Registrar(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)
	var p PerfilView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&p))
	assert.Equal(t, usuario.PapelFinanceiro, p.Papel)
}
