package models

import "time"

// Telefone is a phone number from the registration form
// swagger:model
type Telefone struct {
	// Phone type selected in the form
	// example: "pessoal"
	Tipo string `json:"tipo,omitempty" bson:"tipo,omitempty"`

	// Number as typed, with mask
	// example: "(21) 98765-4321"
	Numero string `json:"numero" bson:"numero"`

	// Country code, when the number could be parsed
	// example: "55"
	DDI string `json:"ddi,omitempty" bson:"ddi,omitempty"`

	// Area code
	// example: "21"
	DDD string `json:"ddd,omitempty" bson:"ddd,omitempty"`

	// Subscriber number
	// example: "987654321"
	Valor string `json:"valor,omitempty" bson:"valor,omitempty"`

	// E.164 representation
	// example: "+5521987654321"
	E164 string `json:"e164,omitempty" bson:"e164,omitempty"`
}

// Endereco is the address section of the registration form
// swagger:model
type Endereco struct {
	Logradouro  string `json:"logradouro,omitempty" bson:"logradouro,omitempty"`
	Numero      string `json:"numero,omitempty" bson:"numero,omitempty"`
	Complemento string `json:"complemento,omitempty" bson:"complemento,omitempty"`
	Bairro      string `json:"bairro,omitempty" bson:"bairro,omitempty"`
	UF          string `json:"uf,omitempty" bson:"uf,omitempty"`
	Cidade      string `json:"cidade,omitempty" bson:"cidade,omitempty"`
	// CEP digits only
	// example: "20040020"
	CEP string `json:"cep,omitempty" bson:"cep,omitempty"`
}

// RegistrationRecord is the submitted registration handed to the configured sink
// swagger:model
type RegistrationRecord struct {
	ID      string `json:"id" bson:"_id"`
	DraftID string `json:"draft_id" bson:"draft_id"`

	// example: "fisica"
	TipoPessoa   string `json:"tipo_pessoa" bson:"tipo_pessoa"`
	NomeCompleto string `json:"nome_completo,omitempty" bson:"nome_completo,omitempty"`

	// CPF digits only
	// example: "03561350712"
	CPF    string `json:"cpf,omitempty" bson:"cpf,omitempty"`
	SemCPF bool   `json:"sem_cpf" bson:"sem_cpf"`

	// CNPJ digits only
	// example: "11222333000181"
	CNPJ string `json:"cnpj,omitempty" bson:"cnpj,omitempty"`

	// Whether the CPF or CNPJ check digits are correct. Informational only
	DocumentoValido bool `json:"documento_valido" bson:"documento_valido"`

	Escolaridade string     `json:"escolaridade,omitempty" bson:"escolaridade,omitempty"`
	Profissao    string     `json:"profissao,omitempty" bson:"profissao,omitempty"`
	Nascimento   *time.Time `json:"nascimento,omitempty" bson:"nascimento,omitempty"`

	Email    string    `json:"email" bson:"email"`
	Celular  *Telefone `json:"celular,omitempty" bson:"celular,omitempty"`
	Telefone *Telefone `json:"telefone,omitempty" bson:"telefone,omitempty"`
	Endereco Endereco  `json:"endereco" bson:"endereco"`

	SubmittedAt time.Time `json:"submitted_at" bson:"submitted_at"`
}
