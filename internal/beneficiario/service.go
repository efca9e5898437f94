package beneficiario

import (
	"context"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
	"github.com/google/uuid"
)

// Escopos resolve a visibilidade do chamador.
type Escopos interface {
	Resolver(ctx context.Context, sessao *auth.Sessao) (visibilidade.Escopo, error)
}

type Service struct {
	repo    Repository
	escopos Escopos
	log     logging.Logger
	agora   func() time.Time
}

func NewService(repo Repository, escopos Escopos, log logging.Logger) *Service {
	return &Service{repo: repo, escopos: escopos, log: log, agora: time.Now}
}

func (s *Service) Listar(ctx context.Context, sessao *auth.Sessao, f Filtro) ([]BeneficiarioView, error) {
	escopo, err := s.escopos.Resolver(ctx, sessao)
	if err != nil {
		return nil, err
	}
	if escopo.Vazio() {
		return []BeneficiarioView{}, nil
	}
	return s.repo.Listar(ctx, escopo, f)
}

// Buscar trata ids fora do escopo como inexistentes.
func (s *Service) Buscar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) (*BeneficiarioView, error) {
	if err := s.conferirEscopo(ctx, sessao, id); err != nil {
		return nil, err
	}
	return s.repo.BuscarView(ctx, id)
}

// Criar cadastra o beneficiário como ativo. Um vendedor sempre cadastra na
// própria carteira.
func (s *Service) Criar(ctx context.Context, sessao *auth.Sessao, in CriarInput) (*BeneficiarioView, error) {
	if sessao == nil {
		return nil, common.ErrTokenInvalido
	}
	c, err := in.validar()
	if err != nil {
		return nil, err
	}
	if sessao.Papel == usuario.PapelVendedor {
		if sessao.VendedorID == nil {
			return nil, common.ErrProibido
		}
		id := *sessao.VendedorID
		c.vendedorID = &id
	}

	dup, err := s.repo.ExisteCPF(ctx, c.cpf)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, common.ErrCPFDuplicado
	}
	if err := s.conferirReferencias(ctx, &c.planoID, c.vendedorID); err != nil {
		return nil, err
	}

	b := &Beneficiario{
		Nome:            c.nome,
		CPF:             c.cpf,
		PlanoID:         c.planoID,
		VendedorID:      c.vendedorID,
		Status:          StatusAtivo,
		ClienteDesde:    s.agora(),
		InicioCobertura: c.inicioCobertura,
		Telefone:        c.telefone,
	}
	if err := s.repo.Criar(ctx, b); err != nil {
		return nil, err
	}
	s.log.Info(ctx, "beneficiário cadastrado", "beneficiario_id", b.ID, "usuario_id", sessao.UsuarioID)
	return s.repo.BuscarView(ctx, b.ID)
}

// Atualizar aplica a atualização parcial dentro do escopo do chamador. Um
// vendedor não pode transferir o beneficiário para outra carteira.
func (s *Service) Atualizar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID, in AtualizarInput) (*BeneficiarioView, error) {
	if err := s.conferirEscopo(ctx, sessao, id); err != nil {
		return nil, err
	}
	b, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}
	m, err := in.aplicar(b)
	if err != nil {
		return nil, err
	}
	if m.vendedorAlterado && sessao.Papel == usuario.PapelVendedor {
		return nil, common.ErrProibido
	}
	if m.cpfAlterado {
		dup, err := s.repo.ExisteCPF(ctx, b.CPF)
		if err != nil {
			return nil, err
		}
		if dup {
			return nil, common.ErrCPFDuplicado
		}
	}
	var plano, vendedor *uuid.UUID
	if m.planoAlterado {
		plano = &b.PlanoID
	}
	if m.vendedorAlterado {
		vendedor = b.VendedorID
	}
	if err := s.conferirReferencias(ctx, plano, vendedor); err != nil {
		return nil, err
	}
	if err := s.repo.Atualizar(ctx, b); err != nil {
		return nil, err
	}
	return s.repo.BuscarView(ctx, id)
}

// Deletar é restrito a admin/financeiro; os pagamentos vão junto.
func (s *Service) Deletar(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) error {
	if err := sessao.PodeGerir(); err != nil {
		return err
	}
	if err := s.repo.Deletar(ctx, id); err != nil {
		return err
	}
	s.log.Info(ctx, "beneficiário removido", "beneficiario_id", id, "usuario_id", sessao.UsuarioID)
	return nil
}

func (s *Service) conferirEscopo(ctx context.Context, sessao *auth.Sessao, id uuid.UUID) error {
	escopo, err := s.escopos.Resolver(ctx, sessao)
	if err != nil {
		return err
	}
	if !escopo.Contem(id) {
		return common.ErrNaoEncontrado
	}
	return nil
}

func (s *Service) conferirReferencias(ctx context.Context, planoID, vendedorID *uuid.UUID) error {
	v := &common.ErroValidacao{}
	if planoID != nil {
		ok, err := s.repo.PlanoExiste(ctx, *planoID)
		if err != nil {
			return err
		}
		if !ok {
			v.Add("plano_id", "plano não encontrado")
		}
	}
	if vendedorID != nil {
		ok, err := s.repo.VendedorExiste(ctx, *vendedorID)
		if err != nil {
			return err
		}
		if !ok {
			v.Add("vendedor_id", "vendedor não encontrado")
		}
	}
	return v.Err()
}
