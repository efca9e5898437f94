package dashboard

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func novoMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return NewRepository(db), mock
}

func TestInadimplentes_RegraComCarencia(t *testing.T) {
	repo, mock := novoMock(t)
	ben := uuid.New()
	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(SUM\(pagamentos\.valor\), 0\) FROM "pagamentos" WHERE pagamentos\.beneficiario_id IN \(\$1\) AND \(pagamentos\.status NOT IN \(\$2,\$3\) AND pagamentos\.data_vencimento < \$4\)`).
		WithArgs(ben, "pago", "em_analise", "2025-03-09").
		WillReturnRows(sqlmock.NewRows([]string{"count", "coalesce"}).AddRow(2, "640.50"))

	n, soma, err := repo.Inadimplentes(context.Background(), visibilidade.Escopo{IDs: []uuid.UUID{ben}}, agora)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "640.5", soma.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReceitaConfirmada(t *testing.T) {
	repo, mock := novoMock(t)
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(pagamentos\.valor\), 0\) FROM "pagamentos" WHERE pagamentos\.status = \$1 AND pagamentos\.confirmado_em >= \$2 AND pagamentos\.confirmado_em < \$3`).
		WithArgs("pago", mes(3, 2025), mes(4, 2025)).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("0"))

	soma, err := repo.ReceitaConfirmada(context.Background(), visibilidade.Escopo{Irrestrito: true}, mes(3, 2025), mes(4, 2025))
	require.NoError(t, err)
	assert.True(t, soma.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContarPagamentos(t *testing.T) {
	repo, mock := novoMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\), COUNT\(\*\) FILTER \(WHERE pagamentos\.status = \$1\) FROM "pagamentos"`).
		WithArgs("pago").
		WillReturnRows(sqlmock.NewRows([]string{"total", "pagos"}).AddRow(4, 3))

	total, pagos, err := repo.ContarPagamentos(context.Background(), visibilidade.Escopo{Irrestrito: true})
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Equal(t, int64(3), pagos)
}

func TestContarAtivos_RestritoAoEscopo(t *testing.T) {
	repo, mock := novoMock(t)
	b1, b2 := uuid.New(), uuid.New()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "beneficiarios" WHERE beneficiarios\.id IN \(\$1,\$2\) AND beneficiarios\.status = \$3 AND beneficiarios\.cliente_desde < \$4`).
		WithArgs(b1, b2, "ativo", mes(3, 2025)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	inicio := mes(3, 2025)
	n, err := repo.ContarAtivos(context.Background(), visibilidade.Escopo{IDs: []uuid.UUID{b1, b2}}, &inicio)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestContarAtivos_EscopoVazioNaoEnxergaNada(t *testing.T) {
	repo, mock := novoMock(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "beneficiarios" WHERE 1 = 0 AND beneficiarios\.status = \$1`).
		WithArgs("ativo").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	n, err := repo.ContarAtivos(context.Background(), visibilidade.Escopo{}, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
