package form

import "strings"

// Input masks used by the registration form
const (
	MaskCPF      Mask = "999.999.999-99"
	MaskCNPJ     Mask = "99.999.999/9999-99"
	MaskCelular  Mask = "(99) 99999-9999"
	MaskTelefone Mask = "(99) 9999-9999"
	MaskCEP      Mask = "99.999-999"
	MaskDate     Mask = "99/99/9999"
)

// CPFDigits is the length of a complete individual tax-id
const CPFDigits = 11

// Section titles
const (
	SectionDadosPessoais = "Dados Pessoais"
	SectionEndereco      = "Endereço"
)

// RegistrationOptions tunes the registration schema
type RegistrationOptions struct {
	// CPFLengthCheck rejects a CPF that does not have all 11 digits.
	CPFLengthCheck bool
}

// DefaultRegistrationOptions enables every check
func DefaultRegistrationOptions() RegistrationOptions {
	return RegistrationOptions{CPFLengthCheck: true}
}

var phoneTypeOptions = []Option{
	{Value: "pessoal", Label: "Pessoal"},
	{Value: "comercial", Label: "Comercial"},
	{Value: "residencial", Label: "Residencial"},
}

var escolaridadeOptions = []Option{
	{Value: "fundamental", Label: "Ensino Fundamental"},
	{Value: "medio", Label: "Ensino Médio"},
	{Value: "superior", Label: "Ensino Superior"},
	{Value: "doutorado_mestrado", Label: "Doutorado/Mestrado"},
	{Value: "posgraduacao", Label: "Pós-Graduação"},
	{Value: "ensinoinformal", Label: "Sem Instrução Formal"},
}

// UFs lists the Brazilian federative units in form order
var UFs = []string{
	"AC", "AL", "AP", "AM", "BA", "CE", "DF", "ES", "GO", "MA", "MT", "MS", "MG", "PA",
	"PB", "PR", "PE", "PI", "RJ", "RN", "RS", "RO", "RR", "SC", "SP", "SE", "TO",
}

func ufOptions() []Option {
	out := make([]Option, 0, len(UFs))
	for _, uf := range UFs {
		out = append(out, Option{Value: strings.ToLower(uf), Label: uf})
	}
	return out
}

// NewRegistrationSchema returns the citizen registration form.
func NewRegistrationSchema(opts RegistrationOptions) *Schema {
	cpfRules := []Rule{Required(MsgRequired)}
	if opts.CPFLengthCheck {
		cpfRules = append(cpfRules, Custom("cpf_length", DigitCount(MaskCPF, CPFDigits), MsgCPFIncomplete))
	}

	dadosPessoais := Section{
		Title: SectionDadosPessoais,
		Rows: [][]FieldSpec{
			{
				{Name: FieldTipoPessoa, Label: "Tipo de Pessoa", Kind: KindSelect, ColSize: 2,
					DefaultOptionText: "Selecione",
					Options: []Option{
						{Value: PessoaFisica, Label: "Pessoa Física"},
						{Value: PessoaJuridica, Label: "Pessoa Jurídica"},
					}},
				{Name: FieldNomeCompleto, Label: "Nome Completo", Kind: KindInput, InputType: "text", ColSize: 5},
				{Name: FieldCPF, Label: "CPF", Kind: KindMask, Mask: MaskCPF, Placeholder: MaskCPF.Placeholder(),
					ColSize: 2, Rules: cpfRules},
				{Name: FieldCNPJ, Label: "CNPJ", Kind: KindMask, Mask: MaskCNPJ, Placeholder: MaskCNPJ.Placeholder(),
					ColSize: 2},
				{Name: FieldSemCPF, Label: "Cidadão não possui CPF:", Kind: KindSwitch, ColSize: 3},
			},
			{
				{Name: FieldEscolaridade, Label: "Escolaridade", Kind: KindSelect, ColSize: 5,
					DefaultOptionText: "Selecione", Options: escolaridadeOptions},
				{Name: FieldProfissao, Label: "Profissão", Kind: KindInput, InputType: "text", ColSize: 4},
				{Name: FieldNascimento, Label: "Data de Nascimento", Kind: KindDate, InputType: "date",
					Mask: MaskDate, Placeholder: MaskDate.Placeholder(), ColSize: 3},
			},
			{
				{Name: FieldEmail, Label: "E-mail", Kind: KindInput, InputType: "email", ColSize: 6,
					Rules: []Rule{
						Required(MsgRequired),
						Pattern(EmailPattern, MsgEmailFormat),
					}},
				{Name: FieldConfirmaEmail, Label: "Confirme o e-mail", Kind: KindInput, InputType: "email", ColSize: 6,
					Rules: []Rule{
						Required(MsgRequired),
						Equals(FieldEmail, MsgEmailMismatch),
					}},
			},
			{
				{Name: FieldTipoCelular, Label: "Tipo de Celular", Kind: KindSelect, ColSize: 2,
					DefaultOptionText: "Selecione", Options: phoneTypeOptions,
					Rules: []Rule{Required(MsgRequired)}},
				{Name: FieldCelular, Label: "Celular", Kind: KindMask, Mask: MaskCelular,
					Placeholder: MaskCelular.Placeholder(), ColSize: 4,
					Rules: []Rule{Required(MsgRequired)}},
				{Name: FieldTipoTelefone, Label: "Tipo de Telefone", Kind: KindSelect, ColSize: 2,
					DefaultOptionText: "Selecione", Options: phoneTypeOptions},
				{Name: FieldTelefone, Label: "Telefone", Kind: KindMask, Mask: MaskTelefone,
					Placeholder: MaskTelefone.Placeholder(), ColSize: 4},
			},
		},
	}

	endereco := Section{
		Title: SectionEndereco,
		Rows: [][]FieldSpec{
			{
				{Name: FieldEndereco, Label: "Endereço", Kind: KindInput, InputType: "text", ColSize: 7},
				{Name: FieldNumero, Label: "Número", Kind: KindInput, InputType: "text", ColSize: 1},
				{Name: FieldComplemento, Label: "Complemento", Kind: KindInput, InputType: "text", ColSize: 4},
			},
			{
				{Name: FieldBairro, Label: "Bairro", Kind: KindInput, InputType: "text", ColSize: 5},
				{Name: FieldUF, Label: "UF", Kind: KindSelect, ColSize: 1,
					DefaultOptionText: "--", Options: ufOptions()},
				{Name: FieldCidade, Label: "Cidade", Kind: KindInput, InputType: "text", ColSize: 4},
				{Name: FieldCEP, Label: "CEP", Kind: KindMask, Mask: MaskCEP, Placeholder: MaskCEP.Placeholder(),
					ColSize: 2},
			},
		},
	}

	return NewSchema(
		[]Section{dadosPessoais, endereco},
		WithVisibility(
			VisibilityRule{Field: FieldCPF, Visible: IsIndividual},
			VisibilityRule{Field: FieldCNPJ, Visible: IsOrganization},
		),
		WithDisabling(
			DisableRule{Field: FieldCPF, When: FlagSet(FieldSemCPF)},
		),
		WithDependencies(
			Dependency{Trigger: FieldSemCPF, Affected: FieldCPF, Action: ActionClearValue, When: FlagSet(FieldSemCPF)},
			Dependency{Trigger: FieldEmail, Affected: FieldConfirmaEmail, Action: ActionClearError},
		),
	)
}
