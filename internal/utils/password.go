package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// CustoSenha é o custo bcrypt dos hashes novos.
var CustoSenha = bcrypt.DefaultCost

func HashSenha(senha string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), CustoSenha)
	if err != nil {
		return "", fmt.Errorf("gerar hash da senha: %w", err)
	}
	return string(hash), nil
}

// VerificarSenha diz se a senha corresponde ao hash. Hash vazio ou malformado nunca confere.
func VerificarSenha(hash, senha string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(senha)) == nil
}
