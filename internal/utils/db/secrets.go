package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KromaEnergia/api-corretora/internal/config"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// SecretsClient é o subconjunto do cliente do Secrets Manager usado aqui.
type SecretsClient interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// NewSecretsClient cria o cliente com a configuração padrão da AWS (env, profile, role).
func NewSecretsClient(ctx context.Context) (*secretsmanager.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("carregar config aws: %w", err)
	}
	return secretsmanager.NewFromConfig(cfg), nil
}

// retrieveCredentials usa DB_USERNAME/DB_PASSWORD quando presentes; senão busca o segredo DB_SECRET_ID.
func retrieveCredentials(ctx context.Context, cfg *config.Config, secrets SecretsClient) (string, string, error) {
	if cfg.DBUsuario != "" && cfg.DBSenha != "" {
		return cfg.DBUsuario, cfg.DBSenha, nil
	}
	if cfg.DBSecretID == "" {
		return "", "", errors.New("credenciais do banco ausentes: defina DB_USERNAME/DB_PASSWORD ou DB_SECRET_ID")
	}
	if secrets == nil {
		return "", "", errors.New("cliente do Secrets Manager não configurado")
	}

	result, err := secrets.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId:     aws.String(cfg.DBSecretID),
		VersionStage: aws.String("AWSCURRENT"),
	})
	if err != nil {
		return "", "", fmt.Errorf("ler segredo %s: %w", cfg.DBSecretID, err)
	}
	if result.SecretString == nil {
		return "", "", fmt.Errorf("segredo %s sem SecretString", cfg.DBSecretID)
	}

	var secret Credentials
	if err := json.Unmarshal([]byte(*result.SecretString), &secret); err != nil {
		return "", "", fmt.Errorf("segredo %s malformado: %w", cfg.DBSecretID, err)
	}
	return secret.Username, secret.Password, nil
}
