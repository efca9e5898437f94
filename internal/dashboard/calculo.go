package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tendencia compara um valor com o do período anterior.
type Tendencia struct {
	Percentual float64 `json:"percentual"`
	Positiva   bool    `json:"positiva"`
}

var cem = decimal.NewFromInt(100)

// CalcularTendencia devolve |atual-anterior|/anterior em %, com uma casa.
// Sem base de comparação (anterior zero) a tendência é {0, true}.
func CalcularTendencia(atual, anterior decimal.Decimal) Tendencia {
	if anterior.IsZero() {
		return Tendencia{Percentual: 0, Positiva: true}
	}
	pct := atual.Sub(anterior).Abs().Div(anterior.Abs()).Mul(cem).Round(1)
	return Tendencia{Percentual: pct.InexactFloat64(), Positiva: atual.GreaterThanOrEqual(anterior)}
}

// TaxaAdimplencia é pagos/total em %, uma casa; zero sem pagamentos.
func TaxaAdimplencia(pagos, total int64) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(pagos).Div(decimal.NewFromInt(total)).Mul(cem).Round(1).InexactFloat64()
}

func InicioDoMes(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// UltimosMeses devolve o início de cada um dos n meses até o de hoje, do mais antigo ao atual.
func UltimosMeses(hoje time.Time, n int) []time.Time {
	atual := InicioDoMes(hoje)
	out := make([]time.Time, n)
	for i := 0; i < n; i++ {
		out[i] = atual.AddDate(0, i-(n-1), 0)
	}
	return out
}

var nomesMeses = [...]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// RotuloMes formata "Mar/2025".
func RotuloMes(t time.Time) string {
	return nomesMeses[t.Month()-1] + "/" + t.Format("2006")
}
