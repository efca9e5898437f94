package utils

import (
	"fmt"
	"net/http"
	"time"

	"github.com/KromaEnergia/api-corretora/internal/logging"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RegistrarRequisicoes loga método, rota, status e duração de cada requisição.
func RegistrarRequisicoes(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			inicio := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info(r.Context(), "requisição",
				"metodo", r.Method,
				"rota", r.URL.Path,
				"status", rec.status,
				"duracao_ms", time.Since(inicio).Milliseconds(),
			)
		})
	}
}

// Recuperar transforma panics em 500 opaco.
func Recuperar(log logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					ResponderErro(w, r, log, fmt.Errorf("panic: %v", p))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
