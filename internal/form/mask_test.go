package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask_Apply(t *testing.T) {
	tests := []struct {
		name  string
		mask  Mask
		input string
		want  string
	}{
		{"empty input", MaskCPF, "", ""},
		{"partial cpf", MaskCPF, "1234", "123.4"},
		{"full cpf", MaskCPF, "12345678901", "123.456.789-01"},
		{"already formatted", MaskCPF, "123.456.789-01", "123.456.789-01"},
		{"extra digits dropped", MaskCPF, "123456789012345", "123.456.789-01"},
		{"letters dropped", MaskCPF, "12a3", "123"},
		{"leading literal", MaskCelular, "2", "(2"},
		{"celular", MaskCelular, "21987654321", "(21) 98765-4321"},
		{"telefone", MaskTelefone, "2125551234", "(21) 2555-1234"},
		{"cnpj", MaskCNPJ, "11222333000181", "11.222.333/0001-81"},
		{"cep", MaskCEP, "20040-020", "20.040-020"},
		{"date", MaskDate, "31121990", "31/12/1990"},
		{"no mask", Mask(""), "free text", "free text"},
		{"letter slot", Mask("aa-99"), "rj12", "rj-12"},
		{"alnum slot", Mask("***"), "a-1-b", "a1b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.mask.Apply(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, tt.mask.Apply(got), "Apply should be idempotent")
		})
	}
}

func TestMask_Raw(t *testing.T) {
	assert.Equal(t, "12345678901", MaskCPF.Raw("123.456.789-01"))
	assert.Equal(t, "123", MaskCPF.Raw("123."))
	assert.Equal(t, "21987654321", MaskCelular.Raw("(21) 98765-4321"))
	assert.Equal(t, "", MaskCEP.Raw(""))
}

func TestMask_Placeholder(t *testing.T) {
	assert.Equal(t, "___.___.___-__", MaskCPF.Placeholder())
	assert.Equal(t, "__.___.___/____-__", MaskCNPJ.Placeholder())
	assert.Equal(t, "(__) _____-____", MaskCelular.Placeholder())
	assert.Equal(t, "(__) ____-____", MaskTelefone.Placeholder())
	assert.Equal(t, "__.___-___", MaskCEP.Placeholder())
}
