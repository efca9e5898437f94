package financeiro

import (
	"context"
	"strings"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Escopos interface {
	Resolver(ctx context.Context, sessao *auth.Sessao) (visibilidade.Escopo, error)
}

// Service conduz o ciclo de vida dos pagamentos. O papel é sempre conferido
// antes do estado.
type Service struct {
	repo    Repository
	escopos Escopos
	log     logging.Logger
	agora   func() time.Time
}

func NewService(repo Repository, escopos Escopos, log logging.Logger) *Service {
	return &Service{repo: repo, escopos: escopos, log: log, agora: time.Now}
}

func (s *Service) Listar(ctx context.Context, sessao *auth.Sessao, f Filtro) ([]PagamentoView, error) {
	escopo, err := s.escopos.Resolver(ctx, sessao)
	if err != nil {
		return nil, err
	}
	if escopo.Vazio() {
		return []PagamentoView{}, nil
	}
	hoje := s.agora()
	list, err := s.repo.Listar(ctx, escopo, f, hoje)
	if err != nil {
		return nil, err
	}
	for i := range list {
		marcarAtraso(&list[i], hoje)
	}
	return list, nil
}

func (s *Service) Buscar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) (*PagamentoView, error) {
	if _, err := s.carregar(ctx, sessao, id); err != nil {
		return nil, err
	}
	return s.view(ctx, id)
}

type CriarInput struct {
	BeneficiarioID string          `json:"beneficiario_id"`
	Valor          decimal.Decimal `json:"valor"`
	DataVencimento string          `json:"data_vencimento"`
}

// Criar lança uma cobrança para um beneficiário existente.
func (s *Service) Criar(ctx context.Context, sessao *auth.Sessao, in CriarInput) (*PagamentoView, error) {
	if err := sessao.PodeGerir(); err != nil {
		return nil, err
	}
	v := &common.ErroValidacao{}
	benID := utils.ParseUUID(v, "beneficiario_id", in.BeneficiarioID)
	validarValor(v, in.Valor)
	venc := utils.ParseData(v, "data_vencimento", in.DataVencimento)
	if err := v.Err(); err != nil {
		return nil, err
	}
	ok, err := s.repo.BeneficiarioExiste(ctx, benID)
	if err != nil {
		return nil, err
	}
	if !ok {
		v.Add("beneficiario_id", "beneficiário não encontrado")
		return nil, v
	}

	p := &Pagamento{
		BeneficiarioID: benID,
		Valor:          in.Valor.Round(2),
		DataVencimento: venc,
		Status:         StatusInicial(venc, s.agora()),
	}
	if err := s.repo.Criar(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "pagamento lançado", "pagamento_id", p.ID, "beneficiario_id", benID, "status", p.Status)
	return s.view(ctx, p.ID)
}

type AtualizarInput struct {
	Valor          *decimal.Decimal `json:"valor"`
	DataVencimento *string          `json:"data_vencimento"`
	Status         *Status          `json:"status"`
}

// Atualizar é a edição manual de admin/financeiro.
func (s *Service) Atualizar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID, in AtualizarInput) (*PagamentoView, error) {
	if err := sessao.PodeGerir(); err != nil {
		return nil, err
	}
	v := &common.ErroValidacao{}
	if in.Valor != nil {
		validarValor(v, *in.Valor)
	}
	var venc time.Time
	if in.DataVencimento != nil {
		venc = utils.ParseData(v, "data_vencimento", *in.DataVencimento)
	}
	if in.Status != nil && !in.Status.Valido() {
		v.Add("status", "status desconhecido")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	p, err := s.carregar(ctx, sessao, id)
	if err != nil {
		return nil, err
	}
	if in.Valor != nil {
		p.Valor = in.Valor.Round(2)
	}
	if in.DataVencimento != nil {
		AlterarVencimento(p, venc, s.agora())
	}
	if in.Status != nil {
		if err := Reclassificar(p, *in.Status); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Atualizar(ctx, p); err != nil {
		return nil, err
	}
	return s.view(ctx, id)
}

type ComprovanteInput struct {
	BoletoNome string `json:"boleto_nome"`
	BoletoURL  string `json:"boleto_url"`
}

// AnexarComprovante vale para qualquer papel, dentro do escopo. O comprovante
// é uma declaração manual e não é verificado.
func (s *Service) AnexarComprovante(ctx context.Context, sessao *auth.Sessao, id uuid.UUID, in ComprovanteInput) (*PagamentoView, error) {
	v := &common.ErroValidacao{}
	nome, url := strings.TrimSpace(in.BoletoNome), strings.TrimSpace(in.BoletoURL)
	if nome == "" {
		v.Add("boleto_nome", "obrigatório")
	}
	if url == "" {
		v.Add("boleto_url", "obrigatório")
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	p, err := s.carregar(ctx, sessao, id)
	if err != nil {
		return nil, err
	}
	if err := AnexarComprovante(p, nome, url); err != nil {
		return nil, err
	}
	if err := s.repo.Atualizar(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "comprovante anexado", "pagamento_id", id, "usuario_id", sessao.UsuarioID)
	return s.view(ctx, id)
}

func (s *Service) Confirmar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) (*PagamentoView, error) {
	if err := sessao.PodeGerir(); err != nil {
		return nil, err
	}
	p, err := s.carregar(ctx, sessao, id)
	if err != nil {
		return nil, err
	}
	mudou, err := Confirmar(p, sessao.UsuarioID, s.agora())
	if err != nil {
		return nil, err
	}
	if mudou {
		if err := s.repo.Atualizar(ctx, p); err != nil {
			return nil, err
		}
		s.log.Info(ctx, "pagamento confirmado", "pagamento_id", id, "usuario_id", sessao.UsuarioID)
	}
	return s.view(ctx, id)
}

func (s *Service) Rejeitar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) (*PagamentoView, error) {
	if err := sessao.PodeGerir(); err != nil {
		return nil, err
	}
	p, err := s.carregar(ctx, sessao, id)
	if err != nil {
		return nil, err
	}
	if err := Rejeitar(p, s.agora()); err != nil {
		return nil, err
	}
	if err := s.repo.Atualizar(ctx, p); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "comprovante rejeitado", "pagamento_id", id, "usuario_id", sessao.UsuarioID, "status", p.Status)
	return s.view(ctx, id)
}

// Deletar vale para qualquer papel autenticado, dentro do escopo.
func (s *Service) Deletar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) error {
	if _, err := s.carregar(ctx, sessao, id); err != nil {
		return err
	}
	if err := s.repo.Deletar(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "pagamento removido", "pagamento_id", id, "usuario_id", sessao.UsuarioID)
	return nil
}

// carregar busca o pagamento e o esconde quando o beneficiário está fora do escopo.
func (s *Service) carregar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) (*Pagamento, error) {
	escopo, err := s.escopos.Resolver(ctx, sessao)
	if err != nil {
		return nil, err
	}
	if escopo.Vazio() {
		return nil, common.ErrNaoEncontrado
	}
	p, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !escopo.Contem(p.BeneficiarioID) {
		return nil, common.ErrNaoEncontrado
	}
	return p, nil
}

func (s *Service) view(ctx context.Context, id uuid.UUID) (*PagamentoView, error) {
	pv, err := s.repo.BuscarView(ctx, id)
	if err != nil {
		return nil, err
	}
	marcarAtraso(pv, s.agora())
	return pv, nil
}

func marcarAtraso(pv *PagamentoView, hoje time.Time) {
	pv.Atrasado = Vencido(pv.Status, pv.DataVencimento, hoje)
	if pv.Atrasado {
		pv.DiasAtraso = DiasAtraso(pv.DataVencimento, hoje)
	}
}

func validarValor(v *common.ErroValidacao, valor decimal.Decimal) {
	if !valor.IsPositive() {
		v.Add("valor", "deve ser maior que zero")
	}
}
