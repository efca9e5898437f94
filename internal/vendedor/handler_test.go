package vendedor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoFake struct {
	itens  map[uuid.UUID]*Vendedor
	escopo *visibilidade.Escopo
}

type fonteFixa map[uuid.UUID][]uuid.UUID

func (f fonteFixa) BeneficiariosDoVendedor(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	return f[id], nil
}

func (f *repoFake) Criar(_ context.Context, v *Vendedor) error {
	_ = v.BeforeCreate(nil)
	f.itens[v.ID] = v
	return nil
}

func (f *repoFake) BuscarPorID(_ context.Context, escopo visibilidade.Escopo, id uuid.UUID) (*VendedorView, error) {
	f.escopo = &escopo
	v, ok := f.itens[id]
	if !ok {
		return nil, common.ErrNaoEncontrado
	}
	return &VendedorView{Vendedor: *v, TotalBeneficiarios: 2}, nil
}

func (f *repoFake) Listar(_ context.Context, escopo visibilidade.Escopo, _ Filtro) ([]VendedorView, error) {
	f.escopo = &escopo
	out := []VendedorView{}
	for _, v := range f.itens {
		out = append(out, VendedorView{Vendedor: *v})
	}
	return out, nil
}

func (f *repoFake) Atualizar(_ context.Context, v *Vendedor) error {
	cp := *v
	f.itens[v.ID] = &cp
	return nil
}

func (f *repoFake) Deletar(_ context.Context, id uuid.UUID) error {
	if _, ok := f.itens[id]; !ok {
		return common.ErrNaoEncontrado
	}
	delete(f.itens, id)
	return nil
}

func requisicao(method, path, body string, papel usuario.Papel) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	return req.WithContext(auth.ComSessao(req.Context(), &auth.Sessao{UsuarioID: uuid.New(), Papel: papel}))
}

func TestCriar(t *testing.T) {
	repo := &repoFake{itens: map[uuid.UUID]*Vendedor{}}
	h := NewHandler(repo, visibilidade.NewResolver(fonteFixa{}), logging.Nop())

	rec := httptest.NewRecorder()
	h.Criar(rec, requisicao(http.MethodPost, "/vendedores", `{"nome":"Carla","email":"carla@x.com","comissao":5.5}`, usuario.PapelFinanceiro))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, repo.itens)

	rec = httptest.NewRecorder()
	h.Criar(rec, requisicao(http.MethodPost, "/vendedores", `{"nome":"Carla","email":"carla@x.com","comissao":150}`, usuario.PapelAdmin))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Criar(rec, requisicao(http.MethodPost, "/vendedores", `{"nome":"Carla","email":"carla@x.com","comissao":5.5}`, usuario.PapelAdmin))
	require.Equal(t, http.StatusCreated, rec.Code)
	var v VendedorView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	assert.Equal(t, StatusAtivo, v.Status)
	assert.True(t, decimal.RequireFromString("5.5").Equal(v.Comissao))
}

func TestAtualizarEDeletar(t *testing.T) {
	id := uuid.New()
	repo := &repoFake{itens: map[uuid.UUID]*Vendedor{id: {ID: id, Nome: "Davi", Email: "davi@x.com", Status: StatusAtivo}}}
	h := NewHandler(repo, visibilidade.NewResolver(fonteFixa{}), logging.Nop())

	req := mux.SetURLVars(requisicao(http.MethodPut, "/vendedores/"+id.String(), `{"status":"inativo"}`, usuario.PapelAdmin), map[string]string{"id": id.String()})
	rec := httptest.NewRecorder()
	h.Atualizar(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, StatusInativo, repo.itens[id].Status)
	assert.Equal(t, "Davi", repo.itens[id].Nome)

	req = mux.SetURLVars(requisicao(http.MethodDelete, "/vendedores/"+id.String(), "", usuario.PapelAdmin), map[string]string{"id": id.String()})
	rec = httptest.NewRecorder()
	h.Deletar(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"vendedor removido com sucesso"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Deletar(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListar_VendedorRecebeEscopoDaCarteira(t *testing.T) {
	vend, ben := uuid.New(), uuid.New()
	repo := &repoFake{itens: map[uuid.UUID]*Vendedor{}}
	h := NewHandler(repo, visibilidade.NewResolver(fonteFixa{vend: {ben}}), logging.Nop())

	req := httptest.NewRequest(http.MethodGet, "/vendedores", nil)
	req = req.WithContext(auth.ComSessao(req.Context(), &auth.Sessao{Papel: usuario.PapelVendedor, VendedorID: &vend}))
	rec := httptest.NewRecorder()
	h.Listar(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, repo.escopo)
	assert.Equal(t, visibilidade.Escopo{IDs: []uuid.UUID{ben}}, *repo.escopo)

	rec = httptest.NewRecorder()
	h.Listar(rec, requisicao(http.MethodGet, "/vendedores", "", usuario.PapelAdmin))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, repo.escopo.Irrestrito)
}
