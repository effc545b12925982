package utils

import (
	"github.com/ttacon/libphonenumber"
)

// CountryCode is the region used to read phone numbers without a country prefix
var CountryCode = "BR"

// FormatPhone renders a digits-only phone in national format, e.g. "(98) 99999-9999".
// Numbers libphonenumber cannot read are returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	p, err := libphonenumber.Parse(phone, CountryCode)
	if err != nil {
		return phone
	}
	return libphonenumber.Format(p, libphonenumber.NATIONAL)
}

// ValidatePhoneNumber reports whether phone is a valid number for the region
func ValidatePhoneNumber(phone string) bool {
	p, err := libphonenumber.Parse(phone, CountryCode)
	if err != nil {
		return false
	}
	return libphonenumber.IsValidNumber(p)
}
