package docgen

import (
	"time"

	"github.com/opsio/esignpro-backend/internal/model"
)

// VariableSet is the resolved placeholder→value mapping for one generation.
// Lookups on missing keys yield "", so templates never see nil values.
type VariableSet map[string]string

// Get returns the value for key, or empty string when absent
func (v VariableSet) Get(key string) string {
	return v[key]
}

// Display flag values for optional blocks
const (
	DisplayVisible = "visible"
	DisplayHidden  = "hidden"
)

// Payment methods driving the remuneration checkbox pair
const (
	PaymentMethodCommission = "commission"
	PaymentMethodFees       = "fees"
)

// Checkbox markers, both representations
const (
	MarkerChecked    = "checked"
	MarkerBoxChecked = "☑"
	MarkerBoxEmpty   = "☐"
)

// AdvisorDefaults is the fallback advisor identity from config, used when a
// case has no advisor assigned
type AdvisorDefaults struct {
	Name  string
	Email string
	Phone string
	City  string
}

// SignatureAsset carries decoded signature image bytes into the assembler
type SignatureAsset struct {
	PNG      []byte
	SignedAt time.Time
}

// GenerationInput is the full record graph one generation works from. The
// document service assembles it from the store; the resolver and assembler
// do no I/O of their own.
type GenerationInput struct {
	Client   *model.Client
	Advisor  *model.Advisor
	Case     *model.InsuranceCase
	Policies []model.InsurancePolicy
	Persons  []model.InsuredPerson

	Signature *SignatureAsset

	IPAddress string
	UserAgent string

	// Now anchors all computed dates; the service passes time.Now()
	Now time.Time

	// SignatureHash overrides the generated hash when non-empty (tests,
	// regeneration of a previously hashed document)
	SignatureHash string

	Defaults AdvisorDefaults
}
