package form

// FieldName is the wire name of a form field.
type FieldName string

// Registration form fields
const (
	FieldTipoPessoa    FieldName = "tipoPessoa"
	FieldNomeCompleto  FieldName = "nomeCompleto"
	FieldCPF           FieldName = "cpf"
	FieldCNPJ          FieldName = "cnpj"
	FieldSemCPF        FieldName = "semCPF"
	FieldEscolaridade  FieldName = "escolaridade"
	FieldProfissao     FieldName = "profissao"
	FieldNascimento    FieldName = "nascimento"
	FieldEmail         FieldName = "email"
	FieldConfirmaEmail FieldName = "confirmaEmail"
	FieldTipoCelular   FieldName = "tipoCelular"
	FieldCelular       FieldName = "celular"
	FieldTipoTelefone  FieldName = "tipoTelefone"
	FieldTelefone      FieldName = "telefone"
	FieldEndereco      FieldName = "endereco"
	FieldNumero        FieldName = "numero"
	FieldComplemento   FieldName = "complemento"
	FieldBairro        FieldName = "bairro"
	FieldUF            FieldName = "uf"
	FieldCidade        FieldName = "cidade"
	FieldCEP           FieldName = "cep"
)

// Person types offered by the tipoPessoa selector
const (
	PessoaFisica   = "fisica"
	PessoaJuridica = "juridica"
)

// Kind is how a field is rendered and which values it accepts.
type Kind string

const (
	KindInput  Kind = "input"
	KindSelect Kind = "select"
	KindMask   Kind = "mask"
	KindSwitch Kind = "switch"
	KindDate   Kind = "date"
)

// ValueKind returns the kind of value stored by fields of this kind
func (k Kind) ValueKind() ValueKind {
	switch k {
	case KindSwitch:
		return ValueFlag
	case KindDate:
		return ValueDate
	default:
		return ValueText
	}
}

// Option is one entry of a select field
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldSpec describes one field: how it renders and how it validates.
type FieldSpec struct {
	Name              FieldName `json:"name"`
	Label             string    `json:"label"`
	Kind              Kind      `json:"kind"`
	InputType         string    `json:"input_type,omitempty"`
	Options           []Option  `json:"options,omitempty"`
	DefaultOptionText string    `json:"default_option_text,omitempty"`
	Mask              Mask      `json:"mask,omitempty"`
	Placeholder       string    `json:"placeholder,omitempty"`
	ColSize           int       `json:"col_size"`
	Rules             []Rule    `json:"rules,omitempty"`
}

// HasOption reports whether value is selectable. The empty value stands
// for "nothing selected" and is always accepted.
func (f FieldSpec) HasOption(value string) bool {
	if value == "" {
		return true
	}
	for _, o := range f.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Default returns the value the field holds when the form is mounted
func (f FieldSpec) Default() Value {
	switch f.Kind.ValueKind() {
	case ValueFlag:
		return Flag(false)
	case ValueDate:
		return NoDate()
	default:
		return Text("")
	}
}

// Required reports whether the field carries a required rule
func (f FieldSpec) Required() bool {
	for _, r := range f.Rules {
		if r.Kind == RuleRequired {
			return true
		}
	}
	return false
}
