package financeiro

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

func TestListar_FiltroAtrasadoIncluiPendentesVencidos(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer sqlDB.Close()
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	ben, id := uuid.New(), uuid.New()
	mock.ExpectQuery(`FROM "pagamentos" JOIN beneficiarios .* LEFT JOIN usuarios confirmador .* WHERE pagamentos\.beneficiario_id IN \(\$1\) AND \(pagamentos\.status = \$2 OR \(pagamentos\.status = \$3 AND pagamentos\.data_vencimento < \$4\)\) ORDER BY pagamentos\.data_vencimento DESC`).
		WithArgs(ben, "atrasado", "pendente", "2025-03-09").
		WillReturnRows(sqlmock.NewRows([]string{"id", "beneficiario_id", "valor", "status", "beneficiario_nome", "beneficiario_cpf"}).
			AddRow(id.String(), ben.String(), "300.00", "pendente", "Ana", "123.456.789-00"))

	list, err := NewRepository(db).Listar(context.Background(), visibilidade.Escopo{IDs: []uuid.UUID{ben}}, Filtro{Status: StatusAtrasado}, hoje)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana", list[0].BeneficiarioNome)
	assert.Equal(t, "123.456.789-00", list[0].BeneficiarioCPF)
	require.NoError(t, mock.ExpectationsWereMet())
}
