package utils

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// PhoneComponents represents the parsed components of a phone number
type PhoneComponents struct {
	DDI   string `json:"ddi" bson:"ddi"`
	DDD   string `json:"ddd" bson:"ddd"`
	Valor string `json:"valor" bson:"valor"`
	Full  string `json:"full" bson:"full"`
}

var phoneFormatting = strings.NewReplacer("(", "", ")", "", "-", "", ".", "", " ", "")

// ParsePhoneNumber parses a phone number string and returns its components.
// Numbers without a country code are read as Brazilian; masked input such as
// "(21) 98765-4321" is accepted.
func ParsePhoneNumber(phoneString string) (*PhoneComponents, error) {
	cleanPhone := phoneFormatting.Replace(strings.TrimSpace(phoneString))
	if cleanPhone == "" {
		return nil, fmt.Errorf("empty phone number")
	}

	// If it doesn't start with +, try to add it
	if !strings.HasPrefix(cleanPhone, "+") {
		if strings.HasPrefix(cleanPhone, "55") && len(cleanPhone) > 11 {
			cleanPhone = "+" + cleanPhone
		} else {
			cleanPhone = "+55" + cleanPhone
		}
	}

	num, err := phonenumbers.Parse(cleanPhone, "")
	if err != nil {
		return nil, fmt.Errorf("failed to parse phone number: %w", err)
	}

	if !phonenumbers.IsValidNumber(num) {
		return nil, fmt.Errorf("invalid phone number: %s", phoneString)
	}

	countryCode := num.GetCountryCode()
	nationalNumber := phonenumbers.GetNationalSignificantNumber(num)

	components := &PhoneComponents{
		DDI:  fmt.Sprintf("%d", countryCode),
		Full: phonenumbers.Format(num, phonenumbers.E164),
	}

	// Brazilian numbers carry a two digit area code
	if countryCode == 55 && len(nationalNumber) > 2 {
		components.DDD = nationalNumber[:2]
		components.Valor = nationalNumber[2:]
	} else {
		components.Valor = nationalNumber
	}

	return components, nil
}
