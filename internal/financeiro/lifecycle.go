package financeiro

import (
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/google/uuid"
)

// CarenciaDias é a tolerância após o vencimento antes de o pagamento contar
// como inadimplente. O valor em configuracoes.dias_carencia não é aplicado aqui.
const CarenciaDias = 1

// Dia reduz t à data do calendário, à meia-noite UTC, para comparações só por data.
func Dia(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LimiteAtraso é a data a partir da qual (exclusive) um vencimento conta como atrasado.
func LimiteAtraso(hoje time.Time) time.Time {
	return Dia(hoje).AddDate(0, 0, -CarenciaDias)
}

// StatusInicial classifica uma cobrança aberta: vencimento anterior a hoje é
// atrasado, hoje ou futuro é pendente. Sem carência.
func StatusInicial(vencimento, hoje time.Time) Status {
	if Dia(vencimento).Before(Dia(hoje)) {
		return StatusAtrasado
	}
	return StatusPendente
}

// Vencido é a regra de inadimplência usada na exibição e nos agregados.
func Vencido(status Status, vencimento, hoje time.Time) bool {
	if status == StatusPago || status == StatusEmAnalise {
		return false
	}
	return Dia(vencimento).Before(LimiteAtraso(hoje))
}

// DiasAtraso conta os dias corridos desde o vencimento; zero se não vencido.
func DiasAtraso(vencimento, hoje time.Time) int {
	d := int(Dia(hoje).Sub(Dia(vencimento)).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func aberto(s Status) bool {
	return s == StatusPendente || s == StatusAtrasado
}

// AnexarComprovante registra o comprovante e leva o pagamento para análise.
func AnexarComprovante(p *Pagamento, nome, url string) error {
	if !aberto(p.Status) {
		return common.ErrTransicaoInvalida
	}
	p.BoletoNome = &nome
	p.BoletoURL = &url
	p.Status = StatusEmAnalise
	return nil
}

// Confirmar aceita o comprovante. Confirmar um pagamento já pago não altera nada
// e devolve mudou=false.
func Confirmar(p *Pagamento, usuarioID uuid.UUID, agora time.Time) (mudou bool, err error) {
	switch p.Status {
	case StatusPago:
		return false, nil
	case StatusEmAnalise:
		p.Status = StatusPago
		p.ConfirmadoPor = &usuarioID
		p.ConfirmadoEm = &agora
		return true, nil
	}
	return false, common.ErrTransicaoInvalida
}

// Rejeitar devolve o pagamento em análise para aberto, reclassificado contra
// hoje, e descarta o comprovante.
func Rejeitar(p *Pagamento, hoje time.Time) error {
	if p.Status != StatusEmAnalise {
		return common.ErrTransicaoInvalida
	}
	p.Status = StatusInicial(p.DataVencimento, hoje)
	p.BoletoNome = nil
	p.BoletoURL = nil
	return nil
}

// Reclassificar é a única mudança de status aceita na edição manual:
// pendente <-> atrasado. Repetir o status atual é um no-op.
func Reclassificar(p *Pagamento, novo Status) error {
	if novo == p.Status {
		return nil
	}
	if !aberto(p.Status) || !aberto(novo) {
		return common.ErrTransicaoInvalida
	}
	p.Status = novo
	return nil
}

// AlterarVencimento troca a data e, se o pagamento estiver aberto, recalcula o status.
func AlterarVencimento(p *Pagamento, vencimento, hoje time.Time) {
	p.DataVencimento = vencimento
	if aberto(p.Status) {
		p.Status = StatusInicial(vencimento, hoje)
	}
}
