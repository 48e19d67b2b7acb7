package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse errors are deliberately value-carrying so a handler can surface the
// offending filter value to the client.

var conditions = map[string]Condition{
	"new":  ConditionNew,
	"used": ConditionUsed,
}

var brands = map[string]Brand{
	"audi":       BrandAudi,
	"bmw":        BrandBMW,
	"chevrolet":  BrandChevrolet,
	"fiat":       BrandFiat,
	"ford":       BrandFord,
	"honda":      BrandHonda,
	"hyundai":    BrandHyundai,
	"jaguar":     BrandJaguar,
	"jeep":       BrandJeep,
	"kia":        BrandKia,
	"mazda":      BrandMazda,
	"mercedes":   BrandMercedes,
	"nissan":     BrandNissan,
	"porsche":    BrandPorsche,
	"subaru":     BrandSubaru,
	"tesla":      BrandTesla,
	"volkswagen": BrandVolkswagen,
	"volvo":      BrandVolvo,
}

var bodyTypes = map[string]BodyType{
	"sedan":        BodySedan,
	"coupe":        BodyCoupe,
	"suv":          BodySuv,
	"hatchback":    BodyHatchback,
	"pickup":       BodyPickup,
	"stationwagon": BodyStationWagon,
	"roadster":     BodyRoadster,
	"compact":      BodyCompact,
	"minivan":      BodyMinivan,
}

var fuelTypes = map[string]FuelType{
	"gasoline": FuelGasoline,
	"diesel":   FuelDiesel,
	"electric": FuelElectric,
	"hybrid":   FuelHybrid,
}

// ParseCondition maps a raw string to a Condition. Matching is
// case-insensitive. Unrecognized values return an error, never a panic —
// filter parameters come from UI-rendered option lists but the parser does
// not trust that.
func ParseCondition(raw string) (Condition, error) {
	if c, ok := conditions[normalize(raw)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unrecognized condition %q", raw)
}

// ParseBrand maps a raw string to a Brand, case-insensitively.
func ParseBrand(raw string) (Brand, error) {
	if b, ok := brands[normalize(raw)]; ok {
		return b, nil
	}
	return "", fmt.Errorf("unrecognized brand %q", raw)
}

// ParseBodyType maps a raw string to a BodyType, case-insensitively.
func ParseBodyType(raw string) (BodyType, error) {
	if b, ok := bodyTypes[normalize(raw)]; ok {
		return b, nil
	}
	return "", fmt.Errorf("unrecognized body type %q", raw)
}

// ParseFuelType maps a raw string to a FuelType, case-insensitively.
func ParseFuelType(raw string) (FuelType, error) {
	if f, ok := fuelTypes[normalize(raw)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unrecognized fuel type %q", raw)
}

// ParseYesNo maps a raw string to a YesNo flag, case-insensitively.
func ParseYesNo(raw string) (YesNo, error) {
	switch normalize(raw) {
	case "yes":
		return Yes, nil
	case "no":
		return No, nil
	}
	return "", fmt.Errorf("unrecognized yes/no value %q", raw)
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// AmountFromDisplay parses the leading whitespace-delimited numeric token of
// a formatted price string ("15.000 €" → 15000). Group separators ('.' and
// ',') are ignored. An unparsable leading token yields 0 so that a malformed
// price can never fail a read request.
func AmountFromDisplay(s string) int64 {
	token, _, _ := strings.Cut(strings.TrimSpace(s), " ")
	token = strings.NewReplacer(".", "", ",", "").Replace(token)
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
