package db

import (
	"context"
	"fmt"

	"github.com/KromaEnergia/api-corretora/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MontarDSN monta a string de conexão do Postgres.
func MontarDSN(host string, port uint, dbname, username, password string, sslDisabled bool) string {
	var sslMode string
	if sslDisabled {
		sslMode = " sslmode=disable"
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d%s", host, username, password, dbname, port, sslMode)
}

// ConnectDataBase abre o pool gorm sobre o Postgres.
func ConnectDataBase(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("conectar no banco: %w", err)
	}
	return database, nil
}

// GetDB resolve as credenciais (ambiente ou Secrets Manager) e conecta.
func GetDB(ctx context.Context, cfg *config.Config, secrets SecretsClient) (*gorm.DB, error) {
	username, password, err := retrieveCredentials(ctx, cfg, secrets)
	if err != nil {
		return nil, err
	}
	dsn := MontarDSN(cfg.DBHost, cfg.DBPorta, cfg.DBNome, username, password, cfg.DBSSLDisable)
	return ConnectDataBase(dsn)
}
