package utils

import "regexp"

var nonDigit = regexp.MustCompile(`\D`)

// OnlyDigits strips every non-digit character from s
func OnlyDigits(s string) string {
	return nonDigit.ReplaceAllString(s, "")
}

// ValidateCPF validates a CPF number
// It checks if the CPF has 11 digits and validates the check digits
func ValidateCPF(cpf string) bool {
	cpf = OnlyDigits(cpf)
	if len(cpf) != 11 || allSameDigit(cpf) {
		return false
	}

	return checkDigit(cpf[:9], []int{10, 9, 8, 7, 6, 5, 4, 3, 2}) == cpf[9] &&
		checkDigit(cpf[:10], []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2}) == cpf[10]
}

// ValidateCNPJ validates a CNPJ number
// It checks if the CNPJ has 14 digits and validates the check digits
func ValidateCNPJ(cnpj string) bool {
	cnpj = OnlyDigits(cnpj)
	if len(cnpj) != 14 || allSameDigit(cnpj) {
		return false
	}

	return checkDigit(cnpj[:12], []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == cnpj[12] &&
		checkDigit(cnpj[:13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == cnpj[13]
}

// checkDigit computes the mod 11 check digit of digits with the given weights
func checkDigit(digits string, weights []int) byte {
	sum := 0
	for i := range digits {
		sum += int(digits[i]-'0') * weights[i]
	}
	remainder := sum % 11
	if remainder < 2 {
		return '0'
	}
	return byte('0' + 11 - remainder)
}

func allSameDigit(s string) bool {
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
