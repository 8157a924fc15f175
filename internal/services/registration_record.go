package services

import (
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/form"
	"github.com/prefeitura-rio/app-cadastro/internal/models"
	"github.com/prefeitura-rio/app-cadastro/internal/utils"
)

// BuildRegistrationRecord turns a validated draft snapshot into the record
// handed to the submission sink. Documents and CEP keep only digits and
// phones are normalized when they can be parsed.
func BuildRegistrationRecord(draftID string, snapshot form.Draft, submittedAt time.Time) *models.RegistrationRecord {
	text := func(name form.FieldName) string {
		return utils.SanitizeString(snapshot.Get(name).String())
	}

	record := &models.RegistrationRecord{
		ID:           utils.GenerateUUID(),
		DraftID:      draftID,
		TipoPessoa:   text(form.FieldTipoPessoa),
		NomeCompleto: text(form.FieldNomeCompleto),
		SemCPF:       snapshot.Get(form.FieldSemCPF).Bool(),
		Escolaridade: text(form.FieldEscolaridade),
		Profissao:    text(form.FieldProfissao),
		Email:        text(form.FieldEmail),
		Celular:      buildTelefone(text(form.FieldTipoCelular), text(form.FieldCelular)),
		Telefone:     buildTelefone(text(form.FieldTipoTelefone), text(form.FieldTelefone)),
		Endereco: models.Endereco{
			Logradouro:  text(form.FieldEndereco),
			Numero:      text(form.FieldNumero),
			Complemento: text(form.FieldComplemento),
			Bairro:      text(form.FieldBairro),
			UF:          text(form.FieldUF),
			Cidade:      text(form.FieldCidade),
			CEP:         utils.OnlyDigits(text(form.FieldCEP)),
		},
		SubmittedAt: submittedAt.UTC(),
	}
	if record.TipoPessoa == "" {
		record.TipoPessoa = form.PessoaFisica
	}

	if t, ok := snapshot.Get(form.FieldNascimento).Time(); ok {
		record.Nascimento = &t
	}

	// Only the document matching the person type is kept
	if form.IsOrganization(snapshot) {
		record.CNPJ = utils.OnlyDigits(text(form.FieldCNPJ))
		record.DocumentoValido = utils.ValidateCNPJ(record.CNPJ)
	} else if !record.SemCPF {
		record.CPF = utils.OnlyDigits(text(form.FieldCPF))
		record.DocumentoValido = utils.ValidateCPF(record.CPF)
	}

	return record
}

func buildTelefone(tipo, numero string) *models.Telefone {
	if numero == "" {
		return nil
	}

	tel := &models.Telefone{Tipo: tipo, Numero: numero}
	if components, err := utils.ParsePhoneNumber(numero); err == nil {
		tel.DDI = components.DDI
		tel.DDD = components.DDD
		tel.Valor = components.Valor
		tel.E164 = components.Full
	}
	return tel
}
