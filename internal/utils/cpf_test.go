package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnlyDigits(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"masked cpf", "035.613.507-12", "03561350712"},
		{"masked cnpj", "11.222.333/0001-81", "11222333000181"},
		{"masked phone", "(21) 98765-4321", "21987654321"},
		{"letters only", "abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OnlyDigits(tt.input))
		})
	}
}

func TestValidateCPF(t *testing.T) {
	tests := []struct {
		name  string
		cpf   string
		valid bool
	}{
		// Valid CPFs
		{
			name:  "Valid CPF without formatting",
			cpf:   "12345678909",
			valid: true,
		},
		{
			name:  "Valid CPF with formatting",
			cpf:   "123.456.789-09",
			valid: true,
		},
		{
			name:  "Valid CPF - form mask",
			cpf:   "035.613.507-12",
			valid: true,
		},
		{
			name:  "Valid CPF - leading zeros",
			cpf:   "00000000191",
			valid: true,
		},
		{
			name:  "Valid CPF - real example",
			cpf:   "52998224725",
			valid: true,
		},

		// Invalid CPFs
		{
			name:  "Invalid CPF - wrong check digit",
			cpf:   "12345678900",
			valid: false,
		},
		{
			name:  "Invalid CPF - all zeros",
			cpf:   "00000000000",
			valid: false,
		},
		{
			name:  "Invalid CPF - all nines",
			cpf:   "99999999999",
			valid: false,
		},
		{
			name:  "Invalid CPF - partially typed",
			cpf:   "035.613.5",
			valid: false,
		},
		{
			name:  "Invalid CPF - too long",
			cpf:   "123456789012",
			valid: false,
		},
		{
			name:  "Invalid CPF - empty string",
			cpf:   "",
			valid: false,
		},
		{
			name:  "Invalid CPF - mixed alphanumeric",
			cpf:   "123abc78909",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCPF(tt.cpf)
			assert.Equal(t, tt.valid, result, "ValidateCPF(%q) should be %v", tt.cpf, tt.valid)
		})
	}
}

func TestValidateCNPJ(t *testing.T) {
	tests := []struct {
		name  string
		cnpj  string
		valid bool
	}{
		// Valid CNPJs
		{
			name:  "Valid CNPJ without formatting",
			cnpj:  "11222333000181",
			valid: true,
		},
		{
			name:  "Valid CNPJ with formatting",
			cnpj:  "11.222.333/0001-81",
			valid: true,
		},
		{
			name:  "Valid CNPJ - real example",
			cnpj:  "60746948000112",
			valid: true,
		},
		{
			name:  "Valid CNPJ - leading zeros",
			cnpj:  "00000000000191",
			valid: true,
		},

		// Invalid CNPJs
		{
			name:  "Invalid CNPJ - wrong check digit",
			cnpj:  "11222333000180",
			valid: false,
		},
		{
			name:  "Invalid CNPJ - both check digits wrong",
			cnpj:  "11222333000171",
			valid: false,
		},
		{
			name:  "Invalid CNPJ - all ones",
			cnpj:  "11111111111111",
			valid: false,
		},
		{
			name:  "Invalid CNPJ - too short",
			cnpj:  "1122233300018",
			valid: false,
		},
		{
			name:  "Invalid CNPJ - empty string",
			cnpj:  "",
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCNPJ(tt.cnpj)
			assert.Equal(t, tt.valid, result, "ValidateCNPJ(%q) should be %v", tt.cnpj, tt.valid)
		})
	}
}
