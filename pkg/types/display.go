package domain

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// euroPrinter renders integers with German digit grouping, matching the
// marketplace's historical "25.000 €" price format.
var euroPrinter = message.NewPrinter(language.German)

// DisplayPrice renders a listing price for the view layer, e.g. "25.000 €".
func (l *Listing) DisplayPrice() string {
	return euroPrinter.Sprintf("%d €", l.PriceAmount)
}

// DisplayMileage renders mileage with its unit suffix, e.g. "50000 (km)".
func (l *Listing) DisplayMileage() string {
	return fmt.Sprintf("%d (km)", l.MileageKM)
}

// DisplayEngineCapacity renders engine capacity with its unit suffix,
// e.g. "1968 (cm3)".
func (l *Listing) DisplayEngineCapacity() string {
	return fmt.Sprintf("%d (cm3)", l.EngineCapacityCC)
}

// DisplayEnginePower renders the kW/HP pair with its unit suffix,
// e.g. "110/150 (kW/HP)".
func (l *Listing) DisplayEnginePower() string {
	return fmt.Sprintf("%d/%d (kW/HP)", l.PowerKW, l.PowerHP)
}

// TitleCase trims s and upper-cases its first rune. Listing model and
// description fields, and user city/state/country fields, are normalized
// through it before persistence.
func TitleCase(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
