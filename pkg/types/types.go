// Package domain defines the core business types for the car marketplace.
package domain

import (
	"fmt"
	"time"
)

// Condition represents whether a car is sold new or used.
type Condition string

// Condition constants.
const (
	ConditionNew  Condition = "New"
	ConditionUsed Condition = "Used"
)

// Brand is the closed set of manufacturers a listing can carry.
type Brand string

// Brand constants.
const (
	BrandAudi       Brand = "Audi"
	BrandBMW        Brand = "BMW"
	BrandChevrolet  Brand = "Chevrolet"
	BrandFiat       Brand = "Fiat"
	BrandFord       Brand = "Ford"
	BrandHonda      Brand = "Honda"
	BrandHyundai    Brand = "Hyundai"
	BrandJaguar     Brand = "Jaguar"
	BrandJeep       Brand = "Jeep"
	BrandKia        Brand = "Kia"
	BrandMazda      Brand = "Mazda"
	BrandMercedes   Brand = "Mercedes"
	BrandNissan     Brand = "Nissan"
	BrandPorsche    Brand = "Porsche"
	BrandSubaru     Brand = "Subaru"
	BrandTesla      Brand = "Tesla"
	BrandVolkswagen Brand = "Volkswagen"
	BrandVolvo      Brand = "Volvo"
)

// BodyType represents a car body style.
type BodyType string

// Body type constants.
const (
	BodySedan        BodyType = "Sedan"
	BodyCoupe        BodyType = "Coupe"
	BodySuv          BodyType = "Suv"
	BodyHatchback    BodyType = "Hatchback"
	BodyPickup       BodyType = "Pickup"
	BodyStationWagon BodyType = "StationWagon"
	BodyRoadster     BodyType = "Roadster"
	BodyCompact      BodyType = "Compact"
	BodyMinivan      BodyType = "Minivan"
)

// FuelType represents a car's fuel type.
type FuelType string

// Fuel type constants.
const (
	FuelGasoline FuelType = "Gasoline"
	FuelDiesel   FuelType = "Diesel"
	FuelElectric FuelType = "Electric"
	FuelHybrid   FuelType = "Hybrid"
)

// YesNo is a two-valued flag rendered as Yes/No in listing forms.
type YesNo string

// YesNo constants.
const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// Currency identifies the currency a listing price is denominated in.
// EUR is the only currency the marketplace currently trades in.
type Currency string

// Currency constants.
const (
	CurrencyEUR Currency = "EUR"
)

// Listing represents a single vehicle-for-sale record.
//
// Price, mileage, engine capacity and engine power are stored as numeric
// values; unit suffixes and currency formatting live entirely in the
// display helpers. The ad number is a derived, non-unique display
// identifier composed from owner id, brand and model.
type Listing struct {
	ID     int64  `json:"id"      db:"id"`
	UserID string `json:"user_id" db:"user_id"`

	Condition   Condition `json:"condition"   db:"condition"`
	Brand       Brand     `json:"brand"       db:"brand"`
	Model       string    `json:"model"       db:"model"`
	Description string    `json:"description" db:"description"`

	// Pricing
	PriceAmount int64    `json:"price_amount" db:"price_amount"`
	Currency    Currency `json:"currency"     db:"currency"`

	// Vehicle data
	Year             int      `json:"year"               db:"year"`
	MileageKM        int      `json:"mileage_km"         db:"mileage_km"`
	BodyType         BodyType `json:"body_type"          db:"body_type"`
	FuelType         FuelType `json:"fuel_type"          db:"fuel_type"`
	EngineCapacityCC int      `json:"engine_capacity_cc" db:"engine_capacity_cc"`
	PowerKW          int      `json:"power_kw"           db:"power_kw"`
	PowerHP          int      `json:"power_hp"           db:"power_hp"`

	// Sale terms
	FixedPrice YesNo `json:"fixed_price" db:"fixed_price"`
	Exchange   YesNo `json:"exchange"    db:"exchange"`

	// Images
	HeadlinerImageURL string   `json:"headliner_image_url"  db:"headliner_image_url"`
	ImageURLs         []string `json:"image_urls,omitempty" db:"image_urls"`

	AdNumber  string    `json:"ad_number"  db:"ad_number"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ComposeAdNumber derives the non-unique display ad number for a listing
// owned by userID.
func ComposeAdNumber(userID string, brand Brand, model string) string {
	return fmt.Sprintf("%s-%s-%s", userID, brand, model)
}

// User represents a registered marketplace account.
type User struct {
	ID              string    `json:"id"                          db:"id"`
	Email           string    `json:"email"                       db:"email"`
	Username        string    `json:"username"                    db:"username"`
	PasswordHash    string    `json:"-"                           db:"password_hash"`
	Role            string    `json:"role"                        db:"role"`
	ProfilePhotoURL string    `json:"profile_photo_url,omitempty" db:"profile_photo_url"`
	City            string    `json:"city,omitempty"              db:"city"`
	State           string    `json:"state,omitempty"             db:"state"`
	Country         string    `json:"country,omitempty"           db:"country"`
	CreatedAt       time.Time `json:"created_at"                  db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"                  db:"updated_at"`
}

// Role constants.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
