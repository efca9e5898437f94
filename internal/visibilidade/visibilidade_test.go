package visibilidade

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fonteFake struct {
	porVendedor map[uuid.UUID][]uuid.UUID
	chamadas    int
}

func (f *fonteFake) BeneficiariosDoVendedor(_ context.Context, id uuid.UUID) ([]uuid.UUID, error) {
	f.chamadas++
	return f.porVendedor[id], nil
}

func TestResolver(t *testing.T) {
	x, y := uuid.New(), uuid.New()
	b1, b2, b3 := uuid.New(), uuid.New(), uuid.New()
	fonte := &fonteFake{porVendedor: map[uuid.UUID][]uuid.UUID{x: {b1, b2}, y: {b3}}}
	r := NewResolver(fonte)
	ctx := context.Background()

	for _, papel := range []usuario.Papel{usuario.PapelAdmin, usuario.PapelFinanceiro} {
		e, err := r.Resolver(ctx, &auth.Sessao{Papel: papel, VendedorID: &x})
		require.NoError(t, err)
		assert.True(t, e.Irrestrito)
		assert.True(t, e.Contem(b3))
	}
	assert.Zero(t, fonte.chamadas)

	e, err := r.Resolver(ctx, &auth.Sessao{Papel: usuario.PapelVendedor, VendedorID: &x})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{b1, b2}, e.IDs)
	assert.True(t, e.Contem(b1))
	assert.False(t, e.Contem(b3))

	e, err = r.Resolver(ctx, &auth.Sessao{Papel: usuario.PapelVendedor})
	require.NoError(t, err)
	assert.True(t, e.Vazio())
	assert.False(t, e.Contem(b1))

	_, err = r.Resolver(ctx, nil)
	assert.Error(t, err)
}

func novoGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestFonteGorm(t *testing.T) {
	db, mock := novoGormMock(t)
	v, b := uuid.New(), uuid.New()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "id" FROM "beneficiarios" WHERE vendedor_id = $1`)).
		WithArgs(v).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(b.String()))

	ids, err := NewFonte(db).BeneficiariosDoVendedor(context.Background(), v)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEscopoAplicar(t *testing.T) {
	db, _ := novoGormMock(t)
	dry := db.Session(&gorm.Session{DryRun: true})
	type linha struct{ ID uuid.UUID }

	sql := func(e Escopo) string {
		stmt := e.Aplicar(dry.Table("pagamentos"), "beneficiario_id").Find(&[]linha{}).Statement
		return stmt.SQL.String()
	}
	assert.NotContains(t, sql(Escopo{Irrestrito: true}), "WHERE")
	assert.Contains(t, sql(Escopo{}), "1 = 0")
	assert.Contains(t, sql(Escopo{IDs: []uuid.UUID{uuid.New()}}), "beneficiario_id IN")
}

func TestEscopoRestricao(t *testing.T) {
	cond, args := Escopo{Irrestrito: true}.Restricao("b.id")
	assert.Empty(t, cond)
	assert.Nil(t, args)

	cond, args = Escopo{}.Restricao("b.id")
	assert.Equal(t, " AND 1 = 0", cond)
	assert.Nil(t, args)

	ids := []uuid.UUID{uuid.New()}
	cond, args = Escopo{IDs: ids}.Restricao("b.id")
	assert.Equal(t, " AND b.id IN ?", cond)
	assert.Equal(t, []any{ids}, args)
}

func TestDoContexto(t *testing.T) {
	x, b := uuid.New(), uuid.New()
	r := NewResolver(&fonteFake{porVendedor: map[uuid.UUID][]uuid.UUID{x: {b}}})

	_, err := DoContexto(context.Background(), r)
	assert.Error(t, err)

	ctx := auth.ComSessao(context.Background(), &auth.Sessao{Papel: usuario.PapelVendedor, VendedorID: &x})
	e, err := DoContexto(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{b}, e.IDs)
}
