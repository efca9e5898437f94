package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/KromaEnergia/api-corretora/internal/auth"
	"github.com/KromaEnergia/api-corretora/internal/beneficiario"
	"github.com/KromaEnergia/api-corretora/internal/config"
	"github.com/KromaEnergia/api-corretora/internal/configuracao"
	"github.com/KromaEnergia/api-corretora/internal/dashboard"
	"github.com/KromaEnergia/api-corretora/internal/financeiro"
	"github.com/KromaEnergia/api-corretora/internal/logging"
	"github.com/KromaEnergia/api-corretora/internal/operadora"
	"github.com/KromaEnergia/api-corretora/internal/plano"
	"github.com/KromaEnergia/api-corretora/internal/usuario"
	"github.com/KromaEnergia/api-corretora/internal/utils"
	"github.com/KromaEnergia/api-corretora/internal/utils/db"
	"github.com/KromaEnergia/api-corretora/internal/vendedor"
	"github.com/KromaEnergia/api-corretora/internal/visibilidade"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.NewJSON(os.Stderr, "error").Error(context.Background(), "configuração inválida", "erro", err)
		os.Exit(1)
	}
	log := logging.NewJSON(os.Stdout, cfg.LogNivel)
	ctx := context.Background()

	gdb, err := conectar(ctx, cfg)
	if err != nil {
		log.Error(ctx, "erro ao conectar no banco", "erro", err)
		os.Exit(1)
	}
	if err := db.Migrar(ctx, gdb); err != nil {
		log.Error(ctx, "erro nas migrações", "erro", err)
		os.Exit(1)
	}

	decimal.MarshalJSONWithoutQuotes = true

	srv := &http.Server{
		Addr:              ":" + cfg.Porta,
		Handler:           novoRouter(cfg, gdb, log),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info(ctx, "servidor iniciado", "porta", cfg.Porta)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "servidor encerrado com erro", "erro", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "erro no shutdown", "erro", err)
	}
	log.Info(ctx, "servidor finalizado")
}

// conectar só consulta o Secrets Manager quando as credenciais não vieram do ambiente.
func conectar(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	var secrets db.SecretsClient
	if (cfg.DBUsuario == "" || cfg.DBSenha == "") && cfg.DBSecretID != "" {
		c, err := db.NewSecretsClient(ctx)
		if err != nil {
			return nil, err
		}
		secrets = c
	}
	return db.GetDB(ctx, cfg, secrets)
}

func novoRouter(cfg *config.Config, gdb *gorm.DB, log logging.Logger) http.Handler {
	usuarios := usuario.NewRepository(gdb)
	authSvc := auth.NewService(usuarios, auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL))
	escopos := visibilidade.NewResolver(visibilidade.NewFonte(gdb))
	operadoras := operadora.NewRepository(gdb)

	authHandler := auth.NewHandler(authSvc, log)
	vendedorHandler := vendedor.NewHandler(vendedor.NewRepository(gdb), escopos, log)
	operadoraHandler := operadora.NewHandler(operadoras, escopos, log)
	planoHandler := plano.NewHandler(plano.NewRepository(gdb), operadoras, escopos, log)
	beneficiarioHandler := beneficiario.NewHandler(beneficiario.NewService(beneficiario.NewRepository(gdb), escopos, log), log)
	financeiroHandler := financeiro.NewHandler(financeiro.NewService(financeiro.NewRepository(gdb), escopos, log), log)
	dashboardHandler := dashboard.NewHandler(dashboard.NewService(dashboard.NewRepository(gdb), escopos), log)
	configHandler := configuracao.NewHandler(configuracao.NewRepository(gdb), log)

	r := mux.NewRouter()
	r.Use(utils.Recuperar(log), utils.RegistrarRequisicoes(log))

	// Rotas públicas
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		utils.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	r.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", authHandler.Registrar).Methods(http.MethodPost)

	api := r.NewRoute().Subrouter()
	api.Use(authSvc.Middleware(log))

	api.HandleFunc("/auth/me", authHandler.Me).Methods(http.MethodGet)

	// Usuários
	adm := api.PathPrefix("/usuarios").Subrouter()
	adm.Use(auth.ExigirPapeis(usuario.PapelAdmin))
	adm.HandleFunc("", authHandler.ListarUsuarios).Methods(http.MethodGet)
	adm.HandleFunc("/{id}", authHandler.AtualizarUsuario).Methods(http.MethodPut)
	adm.HandleFunc("/{id}", authHandler.DeletarUsuario).Methods(http.MethodDelete)

	// Vendedores
	api.HandleFunc("/vendedores", vendedorHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/vendedores", vendedorHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/vendedores/{id}", vendedorHandler.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/vendedores/{id}", vendedorHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/vendedores/{id}", vendedorHandler.Deletar).Methods(http.MethodDelete)

	// Operadoras
	api.HandleFunc("/operadoras", operadoraHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/operadoras", operadoraHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/operadoras/{id}", operadoraHandler.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/operadoras/{id}", operadoraHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/operadoras/{id}", operadoraHandler.Deletar).Methods(http.MethodDelete)

	// Planos
	api.HandleFunc("/planos", planoHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/planos", planoHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/planos/{id}", planoHandler.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/planos/{id}", planoHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/planos/{id}", planoHandler.Deletar).Methods(http.MethodDelete)

	// Beneficiários
	api.HandleFunc("/beneficiarios", beneficiarioHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/beneficiarios", beneficiarioHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/beneficiarios/{id}", beneficiarioHandler.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/beneficiarios/{id}", beneficiarioHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/beneficiarios/{id}", beneficiarioHandler.Deletar).Methods(http.MethodDelete)

	// Financeiro
	api.HandleFunc("/financeiro", financeiroHandler.Listar).Methods(http.MethodGet)
	api.HandleFunc("/financeiro", financeiroHandler.Criar).Methods(http.MethodPost)
	api.HandleFunc("/financeiro/{id}", financeiroHandler.Buscar).Methods(http.MethodGet)
	api.HandleFunc("/financeiro/{id}", financeiroHandler.Atualizar).Methods(http.MethodPut)
	api.HandleFunc("/financeiro/{id}", financeiroHandler.Deletar).Methods(http.MethodDelete)
	api.HandleFunc("/financeiro/{id}/boleto", financeiroHandler.AnexarComprovante).Methods(http.MethodPost)
	api.HandleFunc("/financeiro/{id}/confirmar", financeiroHandler.Confirmar).Methods(http.MethodPost)
	api.HandleFunc("/financeiro/{id}/rejeitar", financeiroHandler.Rejeitar).Methods(http.MethodPost)

	// Dashboard
	api.HandleFunc("/dashboard/stats", dashboardHandler.Stats).Methods(http.MethodGet)
	api.HandleFunc("/dashboard/revenue", dashboardHandler.Receita).Methods(http.MethodGet)

	// Configurações
	api.HandleFunc("/configuracoes", configHandler.Obter).Methods(http.MethodGet)
	api.HandleFunc("/configuracoes", configHandler.Atualizar).Methods(http.MethodPut)

	return cors.New(cors.Options{
		AllowedOrigins: cfg.CORSOrigens,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(r)
}
