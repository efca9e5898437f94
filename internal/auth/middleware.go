package auth

import (
	"net/http"
	"strings"

	"github.com/KromaEnergia/api-corretora/internal/common"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/utils"
)

// Middleware exige um Bearer token válido e põe a Sessao do chamador no contexto.
func (s *Service) Middleware(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			sessao, err := s.sessaoDaRequisicao(r)
			if err != nil {
				utils.ResponderErro(w, r, log, err)
				return
			}
			if sessao == nil {
				utils.Erro(w, http.StatusUnauthorized, "token ausente")
				return
			}
			next.ServeHTTP(w, r.WithContext(ComSessao(r.Context(), sessao)))
		})
	}
}

// sessaoDaRequisicao devolve nil sem erro quando não há Bearer token.
func (s *Service) sessaoDaRequisicao(r *http.Request) (*Sessao, error) {
	h := r.Header.Get("Authorization")
	if h == "" || !strings.HasPrefix(h, "Bearer ") {
		return nil, nil
	}
	sessao, err := s.ResolverChamador(r.Context(), strings.TrimPrefix(h, "Bearer "))
	if err != nil {
		return nil, err
	}
	if sessao.Expirada(s.agora()) {
		return nil, common.ErrSessaoExpirada
	}
	return sessao, nil
}

// ExigirPapeis barra a rota para papéis fora da lista.
func ExigirPapeis(papeis ...usuario.Papel) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessao, err := SessaoDoContexto(r.Context())
			if err == nil {
				err = sessao.Exigir(papeis...)
			}
			if err != nil {
				utils.ResponderErro(w, r, nil, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
