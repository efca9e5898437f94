// Package config carrega a configuração da API a partir de variáveis de ambiente,
// opcionalmente lidas de um arquivo .env.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	PortaPadrao    = "8080"
	DBPortaPadrao  = 5432
	TokenTTLPadrao = 7 * 24 * time.Hour
)

type Config struct {
	Porta string

	DBHost       string
	DBPorta      uint
	DBNome       string
	DBSecretID   string
	DBUsuario    string
	DBSenha      string
	DBSSLDisable bool

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigens []string
	LogNivel    string
}

// Load lê o .env (se existir) e monta a Config a partir do ambiente.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv monta a Config só com o ambiente atual.
func FromEnv() (*Config, error) {
	c := &Config{
		Porta:        envOr("PORT", PortaPadrao),
		DBHost:       envOr("DB_HOST", "localhost"),
		DBPorta:      DBPortaPadrao,
		DBNome:       os.Getenv("DB_NAME"),
		DBSecretID:   os.Getenv("DB_SECRET_ID"),
		DBUsuario:    os.Getenv("DB_USERNAME"),
		DBSenha:      os.Getenv("DB_PASSWORD"),
		DBSSLDisable: os.Getenv("DB_SSL_MODE_DISABLE") == "true",
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     TokenTTLPadrao,
		CORSOrigens:  []string{"*"},
		LogNivel:     envOr("LOG_LEVEL", "info"),
	}

	if v := os.Getenv("DB_PORT"); v != "" {
		p, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("DB_PORT inválida: %w", err)
		}
		c.DBPorta = uint(p)
	}

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("TOKEN_TTL inválido: %w", err)
		}
		if d <= 0 {
			return nil, errors.New("TOKEN_TTL deve ser positivo")
		}
		c.TokenTTL = d
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origens []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origens = append(origens, o)
			}
		}
		c.CORSOrigens = origens
	}

	if c.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return c, nil
}

func envOr(chave, padrao string) string {
	if v := strings.TrimSpace(os.Getenv(chave)); v != "" {
		return v
	}
	return padrao
}
