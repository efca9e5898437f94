package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/google/uuid"
)

const senhaMinima = 6

// Service cobre login, cadastro, resolução do chamador e a gestão de usuários pelo admin.
type Service struct {
	repo      usuario.Repository
	tokens    *Tokens
	verificar func(hash, senha string) bool
	hash      func(senha string) (string, error)
	agora     func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func NewService(repo usuario.Repository, tokens *Tokens) *Service {
	return &Service{
		repo:      repo,
		tokens:    tokens,
		verificar: utils.VerificarSenha,
		hash:      utils.HashSenha,
		agora:     time.Now,
	}
}

type RespostaLogin struct {
	Token    string     `json:"token"`
	ExpiraEm time.Time  `json:"expira_em"`
	Usuario  PerfilView `json:"user"`
}

// PerfilView é o formato público do usuário.
type PerfilView struct {
	ID         uuid.UUID     `json:"id"`
	Nome       string        `json:"nome"`
	Email      string        `json:"email"`
	Papel      usuario.Papel `json:"papel"`
	VendedorID *uuid.UUID    `json:"vendedor_id"`
}

func NovoPerfil(u *usuario.Usuario) PerfilView {
	return PerfilView{ID: u.ID, Nome: u.Nome, Email: u.Email, Papel: u.Papel, VendedorID: u.VendedorID}
}

// Autenticar confere email/senha. Não há bloqueio por tentativas: toda chamada
// chega à verificação da senha, inclusive para emails inexistentes.
func (s *Service) Autenticar(ctx context.Context, email, senha string) (*RespostaLogin, error) {
	u, err := s.repo.BuscarPorEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, common.ErrNaoEncontrado) {
			return nil, err
		}
		s.verificar(s.hashFicticio(), senha)
		return nil, common.ErrCredenciaisInvalidas
	}
	if !s.verificar(u.SenhaHash, senha) {
		return nil, common.ErrCredenciaisInvalidas
	}

	token, exp, err := s.tokens.Gerar(u)
	if err != nil {
		return nil, err
	}
	return &RespostaLogin{Token: token, ExpiraEm: exp, Usuario: NovoPerfil(u)}, nil
}

func (s *Service) hashFicticio() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hash("senha-ficticia-para-tempo-constante")
	})
	return s.dummyHash
}

type RegistroInput struct {
	Nome       string        `json:"nome"`
	Email      string        `json:"email"`
	Senha      string        `json:"senha"`
	Papel      usuario.Papel `json:"papel"`
	VendedorID *string       `json:"vendedor_id"`
}

func (in RegistroInput) validar() (*uuid.UUID, error) {
	v := &common.ErroValidacao{}
	if utils.Texto(in.Nome) == "" {
		v.Add("nome", "obrigatório")
	}
	if !utils.EmailValido(in.Email) {
		v.Add("email", "email inválido")
	}
	if len(in.Senha) < senhaMinima {
		v.Add("senha", fmt.Sprintf("deve ter ao menos %d caracteres", senhaMinima))
	}
	if !in.Papel.Valido() {
		v.Add("papel", "deve ser admin, financeiro ou vendedor")
	}
	var vendedorID *uuid.UUID
	if in.VendedorID != nil && strings.TrimSpace(*in.VendedorID) != "" {
		id := utils.ParseUUID(v, "vendedor_id", *in.VendedorID)
		vendedorID = &id
	}
	return vendedorID, v.Err()
}

// Registrar cria um usuário novo com a senha em hash bcrypt. chamador é nil
// no autoregistro anônimo.
func (s *Service) Registrar(ctx context.Context, chamador *Sessao, in RegistroInput) (*PerfilView, error) {
	vendedorID, err := in.validar()
	if err != nil {
		return nil, err
	}
	if err := s.autorizarRegistro(ctx, chamador, in.Papel, vendedorID); err != nil {
		return nil, err
	}
	if _, err := s.repo.BuscarPorEmail(ctx, in.Email); err == nil {
		return nil, common.ErrEmailDuplicado
	} else if !errors.Is(err, common.ErrNaoEncontrado) {
		return nil, err
	}

	hash, err := s.hash(in.Senha)
	if err != nil {
		return nil, fmt.Errorf("gerar hash da senha: %w", err)
	}
	u := &usuario.Usuario{
		Nome:       utils.Texto(in.Nome),
		Email:      usuario.NormalizarEmail(in.Email),
		SenhaHash:  hash,
		Papel:      in.Papel,
		VendedorID: vendedorID,
	}
	if err := s.repo.Criar(ctx, u); err != nil {
		return nil, err
	}
	p := NovoPerfil(u)
	return &p, nil
}

// autorizarRegistro: sem sessão admin só se cria vendedor sem vínculo. O
// primeiro usuário da base é livre para que exista um admin inicial.
func (s *Service) autorizarRegistro(ctx context.Context, chamador *Sessao, papel usuario.Papel, vendedorID *uuid.UUID) error {
	if chamador != nil && chamador.TemPapel(usuario.PapelAdmin) {
		return nil
	}
	if papel == usuario.PapelVendedor && vendedorID == nil {
		return nil
	}
	n, err := s.repo.Contar(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}
	if chamador == nil {
		return common.ErrTokenInvalido
	}
	return common.ErrProibido
}

// ResolverChamador valida o token e relê o usuário do banco.
func (s *Service) ResolverChamador(ctx context.Context, raw string) (*Sessao, error) {
	claims, err := s.tokens.Validar(raw)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(claims.UsuarioID)
	if err != nil {
		return nil, common.ErrTokenInvalido
	}
	u, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNaoEncontrado) {
			return nil, common.ErrChamadorNaoEncontrado
		}
		return nil, err
	}
	var exp time.Time
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}
	return SessaoDoUsuario(u, exp), nil
}

// Perfil relê o usuário da sessão.
func (s *Service) Perfil(ctx context.Context, sessao *Sessao) (*PerfilView, error) {
	u, err := s.repo.BuscarPorID(ctx, sessao.UsuarioID)
	if err != nil {
		return nil, err
	}
	p := NovoPerfil(u)
	return &p, nil
}

/* ============================== gestão (admin) ============================== */

func (s *Service) ListarUsuarios(ctx context.Context, sessao *Sessao) ([]PerfilView, error) {
	if err := sessao.Exigir(usuario.PapelAdmin); err != nil {
		return nil, err
	}
	list, err := s.repo.ListarTodos(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PerfilView, 0, len(list))
	for i := range list {
		out = append(out, NovoPerfil(&list[i]))
	}
	return out, nil
}

type AtualizarUsuarioInput struct {
	Nome       *string        `json:"nome"`
	Email      *string        `json:"email"`
	Senha      *string        `json:"senha"`
	Papel      *usuario.Papel `json:"papel"`
	VendedorID *string        `json:"vendedor_id"`
}

// AtualizarUsuario aplica uma atualização parcial; vendedor_id "" desvincula.
func (s *Service) AtualizarUsuario(ctx context.Context, sessao *Sessao, id uuid.UUID, in AtualizarUsuarioInput) (*PerfilView, error) {
	if err := sessao.Exigir(usuario.PapelAdmin); err != nil {
		return nil, err
	}
	u, err := s.repo.BuscarPorID(ctx, id)
	if err != nil {
		return nil, err
	}

	v := &common.ErroValidacao{}
	if in.Nome != nil {
		if utils.Texto(*in.Nome) == "" {
			v.Add("nome", "obrigatório")
		}
		u.Nome = utils.Texto(*in.Nome)
	}
	if in.Email != nil {
		if !utils.EmailValido(*in.Email) {
			v.Add("email", "email inválido")
		}
		u.Email = usuario.NormalizarEmail(*in.Email)
	}
	if in.Papel != nil {
		if !in.Papel.Valido() {
			v.Add("papel", "deve ser admin, financeiro ou vendedor")
		}
		u.Papel = *in.Papel
	}
	if in.VendedorID != nil {
		if strings.TrimSpace(*in.VendedorID) == "" {
			u.VendedorID = nil
		} else {
			vid := utils.ParseUUID(v, "vendedor_id", *in.VendedorID)
			u.VendedorID = &vid
		}
	}
	if in.Senha != nil && len(*in.Senha) < senhaMinima {
		v.Add("senha", fmt.Sprintf("deve ter ao menos %d caracteres", senhaMinima))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if in.Senha != nil {
		hash, err := s.hash(*in.Senha)
		if err != nil {
			return nil, fmt.Errorf("gerar hash da senha: %w", err)
		}
		u.SenhaHash = hash
	}

	if err := s.repo.Atualizar(ctx, u); err != nil {
		return nil, err
	}
	p := NovoPerfil(u)
	return &p, nil
}

func (s *Service) DeletarUsuario(ctx context.Context, sessao *Sessao, id uuid.UUID) error {
	if err := sessao.Exigir(usuario.PapelAdmin); err != nil {
		return err
	}
	return s.repo.Deletar(ctx, id)
}
