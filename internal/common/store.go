package common

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// CodigoViolacaoUnica é o SQLSTATE do Postgres para unique_violation.
const CodigoViolacaoUnica = "23505"

// ErroDoBanco normaliza erros vindos do gorm/pgx: registro ausente vira
// ErrNaoEncontrado e erros do Postgres viram ErroArmazenamento com a mensagem original.
func ErroDoBanco(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNaoEncontrado
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &ErroArmazenamento{Mensagem: pgErr.Message, Codigo: pgErr.Code}
	}
	return err
}

// ViolacaoUnica informa se err é uma violação de unicidade, opcionalmente de uma constraint específica.
func ViolacaoUnica(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == CodigoViolacaoUnica && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	var armErr *ErroArmazenamento
	if errors.As(err, &armErr) {
		return armErr.Codigo == CodigoViolacaoUnica && constraint == ""
	}
	return false
}
