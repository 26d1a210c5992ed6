package docgen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/shopspring/decimal"
)

// DateFormat is the Swiss locale date layout used on every document
const DateFormat = "02.01.2006"

// Resolve builds the complete VariableSet for one generation. Every key a
// template can declare gets a value; missing upstream fields resolve to ""
// so the substitution engine never needs null checks.
func Resolve(in GenerationInput) VariableSet {
	vars := VariableSet{}

	resolveClient(vars, in.Client)
	resolveAdvisor(vars, in.Advisor, in.Defaults)
	resolveCase(vars, in.Case)
	resolvePolicies(vars, in.Policies)
	resolvePersons(vars, in.Persons)
	resolvePayment(vars, in.Case)

	// Computed fields
	currentDate := in.Now.Format(DateFormat)
	vars["DATE_ACTUELLE"] = currentDate

	city := ""
	if in.Client != nil {
		city = in.Client.City
	}
	vars["LIEU_DATE"] = strings.TrimPrefix(fmt.Sprintf("%s, %s", city, currentDate), ", ")

	hash := in.SignatureHash
	if hash == "" {
		hash = newSignatureHash()
	}
	vars["SIGNATURE_HASH"] = hash
	vars["IP_ADDRESS"] = in.IPAddress
	vars["USER_AGENT"] = in.UserAgent

	return vars
}

func resolveClient(vars VariableSet, client *model.Client) {
	if client == nil {
		client = &model.Client{}
	}
	vars["CLIENT_NOM"] = client.LastName
	vars["CLIENT_PRENOM"] = client.FirstName
	vars["CLIENT_EMAIL"] = client.Email
	vars["CLIENT_TELEPHONE"] = client.Phone

	address := strings.TrimSpace(client.Street + " " + client.StreetNumber)
	vars["CLIENT_ADRESSE"] = address
	vars["CLIENT_NPA_LOCALITE"] = strings.TrimSpace(client.NPA + " " + client.City)
}

func resolveAdvisor(vars VariableSet, advisor *model.Advisor, defaults AdvisorDefaults) {
	if advisor != nil {
		vars["CONSEILLER_NOM"] = advisor.FullName()
		vars["CONSEILLER_EMAIL"] = advisor.Email
		vars["CONSEILLER_TELEPHONE"] = advisor.Phone
		return
	}
	vars["CONSEILLER_NOM"] = defaults.Name
	vars["CONSEILLER_EMAIL"] = defaults.Email
	vars["CONSEILLER_TELEPHONE"] = defaults.Phone
}

func resolveCase(vars VariableSet, c *model.InsuranceCase) {
	if c == nil {
		c = &model.InsuranceCase{}
	}
	vars["NUMERO_DOSSIER"] = c.CaseNumber
	vars["COMPAGNIE"] = c.InsuranceCompany
	vars["NUMERO_POLICE"] = c.PolicyNumber
	vars["TYPE_POLICE"] = c.PolicyType
	vars["MOTIF"] = c.Reason

	if c.TerminationDate != nil {
		vars["DATE_RESILIATION"] = c.TerminationDate.Format(DateFormat)
	} else {
		vars["DATE_RESILIATION"] = ""
	}
}

// resolvePolicies sums the premiums of the extra policies terminated in the
// same dossier and renders them as one comma-separated reference line
func resolvePolicies(vars VariableSet, policies []model.InsurancePolicy) {
	if len(policies) == 0 {
		vars["POLICES_SUPPLEMENTAIRES"] = ""
		vars["PRIME_ANNUELLE_TOTALE"] = ""
		return
	}

	refs := make([]string, 0, len(policies))
	total := decimal.Zero
	for _, p := range policies {
		ref := p.Company
		if p.PolicyNumber != "" {
			ref += " n° " + p.PolicyNumber
		}
		refs = append(refs, ref)
		total = total.Add(p.AnnualPremium)
	}
	vars["POLICES_SUPPLEMENTAIRES"] = strings.Join(refs, ", ")
	vars["PRIME_ANNUELLE_TOTALE"] = "CHF " + total.StringFixed(2)
}

// resolvePersons emits indexed keys for every slot up to the maximum. Slots
// beyond the actual list are hidden with empty fields; signature visibility
// additionally requires the person to be an adult.
func resolvePersons(vars VariableSet, persons []model.InsuredPerson) {
	for i := 1; i <= model.MaxInsuredPersons; i++ {
		prefix := fmt.Sprintf("PERSONNE_%d_", i)

		if i > len(persons) {
			vars[prefix+"NOM"] = ""
			vars[prefix+"NAISSANCE"] = ""
			vars[prefix+"POLICE"] = ""
			vars[prefix+"DISPLAY"] = DisplayHidden
			vars[prefix+"SIGNATURE_DISPLAY"] = DisplayHidden
			continue
		}

		person := persons[i-1]
		vars[prefix+"NOM"] = person.Name
		vars[prefix+"NAISSANCE"] = person.BirthDate
		vars[prefix+"POLICE"] = person.PolicyNumber
		vars[prefix+"DISPLAY"] = DisplayVisible
		if person.IsAdult {
			vars[prefix+"SIGNATURE_DISPLAY"] = DisplayVisible
		} else {
			vars[prefix+"SIGNATURE_DISPLAY"] = DisplayHidden
		}
	}
}

// resolvePayment renders the remuneration checkbox pair in both marker
// styles: "checked"/"" for html templates, box glyphs for assembled text.
// An unknown payment method leaves both boxes unchecked.
func resolvePayment(vars VariableSet, c *model.InsuranceCase) {
	method := ""
	if c != nil {
		method = c.PaymentMethod
	}

	commission := method == PaymentMethodCommission
	fees := method == PaymentMethodFees

	vars["PAIEMENT_COMMISSION_CHECKED"] = checkMarker(commission, MarkerChecked, "")
	vars["PAIEMENT_HONORAIRES_CHECKED"] = checkMarker(fees, MarkerChecked, "")
	vars["PAIEMENT_COMMISSION_CASE"] = checkMarker(commission, MarkerBoxChecked, MarkerBoxEmpty)
	vars["PAIEMENT_HONORAIRES_CASE"] = checkMarker(fees, MarkerBoxChecked, MarkerBoxEmpty)
}

func checkMarker(checked bool, yes, no string) string {
	if checked {
		return yes
	}
	return no
}

// newSignatureHash derives a short random hash for audit stamping
func newSignatureHash() string {
	sum := sha256.Sum256([]byte(uuid.New().String()))
	return hex.EncodeToString(sum[:])[:16]
}
