package utils

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const LayoutData = "2006-01-02"

var (
	reCPF  = regexp.MustCompile(`^(\d{3}\.\d{3}\.\d{3}-\d{2}|\d{11})$`)
	reCNPJ = regexp.MustCompile(`^(\d{2}\.\d{3}\.\d{3}/\d{4}-\d{2}|\d{14})$`)
	reCor  = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
)

// CPFValido aceita "123.456.789-00" ou 11 dígitos.
func CPFValido(s string) bool { return reCPF.MatchString(strings.TrimSpace(s)) }

// CNPJValido aceita "12.345.678/0001-90" ou 14 dígitos.
func CNPJValido(s string) bool { return reCNPJ.MatchString(strings.TrimSpace(s)) }

func CorValida(s string) bool { return reCor.MatchString(s) }

func EmailValido(s string) bool {
	s = strings.TrimSpace(s)
	at := strings.Index(s, "@")
	return at > 0 && at < len(s)-1 && !strings.ContainsAny(s, " \t")
}

// ParseUUID valida um uuid vindo do payload, registrando o problema em v.
func ParseUUID(v *common.ErroValidacao, campo, s string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		v.Add(campo, "deve ser um UUID válido")
		return uuid.Nil
	}
	return id
}

// ParseData valida uma data AAAA-MM-DD e a devolve à meia-noite UTC.
func ParseData(v *common.ErroValidacao, campo, s string) time.Time {
	t, err := time.ParseInLocation(LayoutData, strings.TrimSpace(s), time.UTC)
	if err != nil {
		v.Add(campo, "deve estar no formato AAAA-MM-DD")
		return time.Time{}
	}
	return t
}

// IDDaRota extrai e valida o parâmetro {id} da rota.
func IDDaRota(r *http.Request) (uuid.UUID, error) {
	v := &common.ErroValidacao{}
	id := ParseUUID(v, "id", mux.Vars(r)["id"])
	return id, v.Err()
}

var escapeBusca = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PadraoBusca monta o padrão ILIKE de substring. Os curingas digitados pelo
// usuário viram literais (a barra invertida é o escape padrão do Postgres).
func PadraoBusca(busca string) string {
	return "%" + escapeBusca.Replace(busca) + "%"
}

// Texto normaliza espaços de um campo textual.
func Texto(s string) string { return strings.TrimSpace(s) }
