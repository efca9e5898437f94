package dashboard

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/shopspring/decimal"
)

const mesesReceita = 6

type Escopos interface {
	Resolver(ctx context.Context, sessao *auth.Sessao) (visibilidade.Escopo, error)
}

type Inadimplencia struct {
	Quantidade int64           `json:"quantidade"`
	Valor      decimal.Decimal `json:"valor"`
}

type StatsView struct {
	BeneficiariosAtivos    int64           `json:"beneficiarios_ativos"`
	TendenciaBeneficiarios Tendencia       `json:"tendencia_beneficiarios"`
	TotalBeneficiarios     int64           `json:"total_beneficiarios"`
	ReceitaMensal          decimal.Decimal `json:"receita_mensal"`
	TendenciaReceita       Tendencia       `json:"tendencia_receita"`
	TaxaAdimplencia        float64         `json:"taxa_adimplencia"`
	Inadimplentes          Inadimplencia   `json:"inadimplentes"`
}

type ReceitaView struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

type Service struct {
	repo    Repository
	escopos Escopos
	agora   func() time.Time
}

func NewService(repo Repository, escopos Escopos) *Service {
	return &Service{repo: repo, escopos: escopos, agora: time.Now}
}

func statsZerados() *StatsView {
	return &StatsView{
		TendenciaBeneficiarios: Tendencia{Positiva: true},
		ReceitaMensal:          decimal.Zero,
		TendenciaReceita:       Tendencia{Positiva: true},
		Inadimplentes:          Inadimplencia{Valor: decimal.Zero},
	}
}

// Stats resolve o escopo uma vez e monta os indicadores do painel. Vendedor
// sem carteira recebe tudo zerado sem consultar o banco.
func (s *Service) Stats(ctx context.Context, sessao *auth.Sessao) (*StatsView, error) {
	escopo, err := s.escopos.Resolver(ctx, sessao)
	if err != nil {
		return nil, err
	}
	if escopo.Vazio() {
		return statsZerados(), nil
	}

	hoje := s.agora()
	inicioMes := InicioDoMes(hoje)
	out := &StatsView{}

	if out.BeneficiariosAtivos, err = s.repo.ContarAtivos(ctx, escopo, nil); err != nil {
		return nil, err
	}
	ativosInicio, err := s.repo.ContarAtivos(ctx, escopo, &inicioMes)
	if err != nil {
		return nil, err
	}
	out.TendenciaBeneficiarios = CalcularTendencia(decimal.NewFromInt(out.BeneficiariosAtivos), decimal.NewFromInt(ativosInicio))

	if out.TotalBeneficiarios, err = s.repo.ContarBeneficiarios(ctx, escopo); err != nil {
		return nil, err
	}

	if out.ReceitaMensal, err = s.repo.ReceitaConfirmada(ctx, escopo, inicioMes, inicioMes.AddDate(0, 1, 0)); err != nil {
		return nil, err
	}
	anterior, err := s.repo.ReceitaConfirmada(ctx, escopo, inicioMes.AddDate(0, -1, 0), inicioMes)
	if err != nil {
		return nil, err
	}
	out.TendenciaReceita = CalcularTendencia(out.ReceitaMensal, anterior)

	total, pagos, err := s.repo.ContarPagamentos(ctx, escopo)
	if err != nil {
		return nil, err
	}
	out.TaxaAdimplencia = TaxaAdimplencia(pagos, total)

	n, soma, err := s.repo.Inadimplentes(ctx, escopo, hoje)
	if err != nil {
		return nil, err
	}
	out.Inadimplentes = Inadimplencia{Quantidade: n, Valor: soma}
	return out, nil
}

// ReceitaMensal devolve a receita confirmada dos últimos seis meses, do mais antigo ao atual.
func (s *Service) ReceitaMensal(ctx context.Context, sessao *auth.Sessao) (*ReceitaView, error) {
	escopo, err := s.escopos.Resolver(ctx, sessao)
	if err != nil {
		return nil, err
	}
	meses := UltimosMeses(s.agora(), mesesReceita)
	out := &ReceitaView{Labels: make([]string, len(meses)), Values: make([]decimal.Decimal, len(meses))}
	for i, inicio := range meses {
		out.Labels[i] = RotuloMes(inicio)
		if escopo.Vazio() {
			out.Values[i] = decimal.Zero
			continue
		}
		if out.Values[i], err = s.repo.ReceitaConfirmada(ctx, escopo, inicio, inicio.AddDate(0, 1, 0)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
