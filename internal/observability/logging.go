package observability

import (
	"strings"
	"unicode"

	"github.com/prefeitura-rio/app-cadastro/internal/logging"
)

// sensitiveFields are the registration fields never logged in clear text
var sensitiveFields = []string{"cpf", "cnpj", "celular", "telefone", "email", "confirmaEmail", "nascimento"}

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskCPF masks a CPF number for logging. Masked input is accepted.
func MaskCPF(cpf string) string {
	cpf = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, cpf)
	if len(cpf) != 11 {
		return "***.***.***-**"
	}
	return cpf[:3] + ".***" + "." + cpf[6:9] + "-**"
}

// MaskFieldValue masks the value of a sensitive registration field
func MaskFieldValue(field, value string) string {
	switch {
	case value == "":
		return ""
	case field == "cpf":
		return MaskCPF(value)
	case contains(sensitiveFields, field):
		return "********"
	}
	return value
}

// MaskSensitiveData masks sensitive data in a map
func MaskSensitiveData(data map[string]interface{}) map[string]interface{} {
	masked := make(map[string]interface{})

	for k, v := range data {
		if contains(sensitiveFields, k) {
			masked[k] = "********"
		} else {
			masked[k] = v
		}
	}

	return masked
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
