package docgen

import (
	"fmt"
	"testing"
	"time"

	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func baseInput() GenerationInput {
	termination := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	return GenerationInput{
		Client: &model.Client{
			FirstName:    "Jean",
			LastName:     "Dupont",
			Street:       "Rue du Lac",
			StreetNumber: "12",
			NPA:          "1003",
			City:         "Lausanne",
			Email:        "jean.dupont@example.ch",
		},
		Case: &model.InsuranceCase{
			CaseNumber:       "RES-2025-001",
			InsuranceCompany: "AXA",
			PolicyNumber:     "AXA-123",
			PolicyType:       "LAMal",
			TerminationDate:  &termination,
			Reason:           "Changement de caisse",
			PaymentMethod:    PaymentMethodCommission,
		},
		Now:           testNow,
		SignatureHash: "abcdef0123456789",
	}
}

func TestResolveClientFields(t *testing.T) {
	vars := Resolve(baseInput())

	checks := map[string]string{
		"CLIENT_NOM":          "Dupont",
		"CLIENT_PRENOM":       "Jean",
		"CLIENT_ADRESSE":      "Rue du Lac 12",
		"CLIENT_NPA_LOCALITE": "1003 Lausanne",
		"COMPAGNIE":           "AXA",
		"NUMERO_POLICE":       "AXA-123",
		"TYPE_POLICE":         "LAMal",
		"DATE_RESILIATION":    "31.12.2025",
		"MOTIF":               "Changement de caisse",
		"DATE_ACTUELLE":       "14.03.2025",
		"LIEU_DATE":           "Lausanne, 14.03.2025",
		"SIGNATURE_HASH":      "abcdef0123456789",
	}
	for key, want := range checks {
		if got := vars.Get(key); got != want {
			t.Errorf("vars[%s] = %q, want %q", key, got, want)
		}
	}
}

func TestResolveMissingRecordsYieldEmptyStrings(t *testing.T) {
	vars := Resolve(GenerationInput{Now: testNow})

	for _, key := range []string{
		"CLIENT_NOM", "CLIENT_PRENOM", "CLIENT_ADRESSE", "CLIENT_NPA_LOCALITE",
		"COMPAGNIE", "NUMERO_POLICE", "DATE_RESILIATION", "MOTIF",
	} {
		got, present := vars[key]
		if !present {
			t.Errorf("vars[%s] missing, expected empty string entry", key)
		}
		if got != "" {
			t.Errorf("vars[%s] = %q, want empty string", key, got)
		}
	}

	// no client: LIEU_DATE degrades to the bare date
	if got := vars.Get("LIEU_DATE"); got != "14.03.2025" {
		t.Errorf("LIEU_DATE = %q, want bare date", got)
	}
}

func TestResolveAdvisorFallsBackToDefaults(t *testing.T) {
	in := baseInput()
	in.Defaults = AdvisorDefaults{Name: "Conseiller Opsio", Email: "info@opsio.ch"}
	vars := Resolve(in)

	if got := vars.Get("CONSEILLER_NOM"); got != "Conseiller Opsio" {
		t.Errorf("CONSEILLER_NOM = %q, want default", got)
	}

	in.Advisor = &model.Advisor{FirstName: "Marie", LastName: "Favre", Email: "marie@opsio.ch"}
	vars = Resolve(in)
	if got := vars.Get("CONSEILLER_NOM"); got != "Marie Favre" {
		t.Errorf("CONSEILLER_NOM = %q, want assigned advisor", got)
	}
	if got := vars.Get("CONSEILLER_EMAIL"); got != "marie@opsio.ch" {
		t.Errorf("CONSEILLER_EMAIL = %q", got)
	}
}

func TestResolvePersonVisibilityMatrix(t *testing.T) {
	all := []model.InsuredPerson{
		{Name: "Alice Dupont", IsAdult: true},
		{Name: "Bob Dupont", IsAdult: false},
		{Name: "Chloé Dupont", IsAdult: true},
		{Name: "David Dupont", IsAdult: false},
	}

	for count := 0; count <= model.MaxInsuredPersons; count++ {
		t.Run(fmt.Sprintf("%d persons", count), func(t *testing.T) {
			in := baseInput()
			in.Persons = all[:count]
			vars := Resolve(in)

			for i := 1; i <= model.MaxInsuredPersons; i++ {
				display := vars.Get(fmt.Sprintf("PERSONNE_%d_DISPLAY", i))
				sigDisplay := vars.Get(fmt.Sprintf("PERSONNE_%d_SIGNATURE_DISPLAY", i))
				name := vars.Get(fmt.Sprintf("PERSONNE_%d_NOM", i))

				if i <= count {
					if display != DisplayVisible {
						t.Errorf("PERSONNE_%d_DISPLAY = %q, want visible", i, display)
					}
					if name != all[i-1].Name {
						t.Errorf("PERSONNE_%d_NOM = %q, want %q", i, name, all[i-1].Name)
					}
					wantSig := DisplayHidden
					if all[i-1].IsAdult {
						wantSig = DisplayVisible
					}
					if sigDisplay != wantSig {
						t.Errorf("PERSONNE_%d_SIGNATURE_DISPLAY = %q, want %q", i, sigDisplay, wantSig)
					}
				} else {
					if display != DisplayHidden {
						t.Errorf("PERSONNE_%d_DISPLAY = %q, want hidden", i, display)
					}
					if sigDisplay != DisplayHidden {
						t.Errorf("PERSONNE_%d_SIGNATURE_DISPLAY = %q, want hidden", i, sigDisplay)
					}
					if name != "" {
						t.Errorf("PERSONNE_%d_NOM = %q, want empty", i, name)
					}
				}
			}
		})
	}
}

func TestResolvePaymentMethodMarkers(t *testing.T) {
	tests := []struct {
		method         string
		wantCommission string
		wantFees       string
		wantCommCase   string
		wantFeesCase   string
	}{
		{PaymentMethodCommission, MarkerChecked, "", MarkerBoxChecked, MarkerBoxEmpty},
		{PaymentMethodFees, "", MarkerChecked, MarkerBoxEmpty, MarkerBoxChecked},
		{"", "", "", MarkerBoxEmpty, MarkerBoxEmpty},
		{"autre", "", "", MarkerBoxEmpty, MarkerBoxEmpty},
	}

	for _, tt := range tests {
		t.Run("method="+tt.method, func(t *testing.T) {
			in := baseInput()
			in.Case.PaymentMethod = tt.method
			vars := Resolve(in)

			if got := vars.Get("PAIEMENT_COMMISSION_CHECKED"); got != tt.wantCommission {
				t.Errorf("PAIEMENT_COMMISSION_CHECKED = %q, want %q", got, tt.wantCommission)
			}
			if got := vars.Get("PAIEMENT_HONORAIRES_CHECKED"); got != tt.wantFees {
				t.Errorf("PAIEMENT_HONORAIRES_CHECKED = %q, want %q", got, tt.wantFees)
			}
			if got := vars.Get("PAIEMENT_COMMISSION_CASE"); got != tt.wantCommCase {
				t.Errorf("PAIEMENT_COMMISSION_CASE = %q, want %q", got, tt.wantCommCase)
			}
			if got := vars.Get("PAIEMENT_HONORAIRES_CASE"); got != tt.wantFeesCase {
				t.Errorf("PAIEMENT_HONORAIRES_CASE = %q, want %q", got, tt.wantFeesCase)
			}
		})
	}
}

func TestResolveGeneratesHashWhenAbsent(t *testing.T) {
	in := baseInput()
	in.SignatureHash = ""
	vars := Resolve(in)

	hash := vars.Get("SIGNATURE_HASH")
	if len(hash) != 16 {
		t.Errorf("SIGNATURE_HASH length = %d, want 16", len(hash))
	}
}

func TestResolveExtraPolicies(t *testing.T) {
	in := baseInput()
	in.Policies = []model.InsurancePolicy{
		{Company: "CSS", PolicyNumber: "CSS-9", AnnualPremium: decimal.NewFromFloat(1200.50)},
		{Company: "Helsana", AnnualPremium: decimal.NewFromInt(800)},
	}
	vars := Resolve(in)

	if got := vars.Get("POLICES_SUPPLEMENTAIRES"); got != "CSS n° CSS-9, Helsana" {
		t.Errorf("POLICES_SUPPLEMENTAIRES = %q", got)
	}
	if got := vars.Get("PRIME_ANNUELLE_TOTALE"); got != "CHF 2000.50" {
		t.Errorf("PRIME_ANNUELLE_TOTALE = %q", got)
	}

	// no extra policies: both keys resolve to empty, never missing
	vars = Resolve(baseInput())
	for _, key := range []string{"POLICES_SUPPLEMENTAIRES", "PRIME_ANNUELLE_TOTALE"} {
		if got, present := vars[key]; !present || got != "" {
			t.Errorf("vars[%s] = %q (present=%v), want empty entry", key, got, present)
		}
	}
}
