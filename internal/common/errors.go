package common

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// repositório
	ErrNaoEncontrado = errors.New("registro não encontrado")

	// autenticação
	ErrCredenciaisInvalidas  = errors.New("credenciais inválidas")
	ErrTokenInvalido         = errors.New("token inválido ou expirado")
	ErrChamadorNaoEncontrado = errors.New("usuário do token não encontrado")
	ErrSessaoExpirada        = errors.New("sessão expirada")

	// autorização
	ErrProibido = errors.New("acesso negado para o papel do usuário")

	// regras de negócio
	ErrCPFDuplicado      = errors.New("já existe beneficiário com este CPF")
	ErrEmailDuplicado    = errors.New("já existe usuário com este email")
	ErrTransicaoInvalida = errors.New("transição de status inválida para o pagamento")
)

// CampoInvalido descreve um problema de validação em um campo do payload.
type CampoInvalido struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

// ErroValidacao agrega os campos inválidos de uma requisição.
type ErroValidacao struct {
	Campos []CampoInvalido
}

func (e *ErroValidacao) Error() string {
	partes := make([]string, 0, len(e.Campos))
	for _, c := range e.Campos {
		partes = append(partes, c.Campo+": "+c.Mensagem)
	}
	return "dados inválidos: " + strings.Join(partes, "; ")
}

// Add registra um campo inválido.
func (e *ErroValidacao) Add(campo, mensagem string) {
	e.Campos = append(e.Campos, CampoInvalido{Campo: campo, Mensagem: mensagem})
}

// Err devolve nil quando nenhum campo foi registrado.
func (e *ErroValidacao) Err() error {
	if e == nil || len(e.Campos) == 0 {
		return nil
	}
	return e
}

// ErroArmazenamento carrega a mensagem devolvida pelo banco (ex.: violação de constraint).
type ErroArmazenamento struct {
	Mensagem string
	Codigo   string
}

func (e *ErroArmazenamento) Error() string {
	if e.Codigo == "" {
		return e.Mensagem
	}
	return fmt.Sprintf("%s (SQLSTATE %s)", e.Mensagem, e.Codigo)
}

// EhValidacao informa se err é (ou embrulha) um ErroValidacao.
func EhValidacao(err error) (*ErroValidacao, bool) {
	var v *ErroValidacao
	ok := errors.As(err, &v)
	return v, ok
}
