package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestErroValidacao_ErrSemCampos(t *testing.T) {
	v := &ErroValidacao{}
	assert.NoError(t, v.Err())

	v.Add("cpf", "formato inválido")
	err := v.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cpf: formato inválido")

	got, ok := EhValidacao(fmt.Errorf("embrulhado: %w", err))
	require.True(t, ok)
	assert.Len(t, got.Campos, 1)
}

func TestErroDoBanco(t *testing.T) {
	assert.Nil(t, ErroDoBanco(nil))
	assert.ErrorIs(t, ErroDoBanco(gorm.ErrRecordNotFound), ErrNaoEncontrado)

	pgErr := &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"}
	err := ErroDoBanco(fmt.Errorf("insert: %w", pgErr))
	var arm *ErroArmazenamento
	require.True(t, errors.As(err, &arm))
	assert.Equal(t, "insert or update violates foreign key constraint", arm.Mensagem)
	assert.Equal(t, "23503", arm.Codigo)

	outro := errors.New("conexão recusada")
	assert.Equal(t, outro, ErroDoBanco(outro))
}

func TestViolacaoUnica(t *testing.T) {
	pgErr := &pgconn.PgError{Code: CodigoViolacaoUnica, ConstraintName: "beneficiarios_cpf_key"}
	assert.True(t, ViolacaoUnica(pgErr, "beneficiarios_cpf_key"))
	assert.True(t, ViolacaoUnica(pgErr, ""))
	assert.False(t, ViolacaoUnica(pgErr, "usuarios_email_key"))
	assert.False(t, ViolacaoUnica(errors.New("x"), ""))
}
