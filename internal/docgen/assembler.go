package docgen

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/pkg/docx"
)

// ErrUnsupportedDocumentType is returned when a template declares an output
// format or docx category the assembler cannot produce. This is a structural
// failure and is never silently downgraded to an html fallback.
var ErrUnsupportedDocumentType = errors.New("unsupported document type")

// Artifact is one assembled output document
type Artifact struct {
	// Content is inline text for html artifacts, base64 for binary ones
	Content       string
	MimeType      string
	FileExtension string
	IsBinary      bool

	// SignatureEmbedded is true when the signature image made it into the
	// document; SignatureFellBack is true when image bytes were supplied
	// but could not be embedded and the handwritten placeholder line was
	// rendered instead
	SignatureEmbedded bool
	SignatureFellBack bool
}

// Assembler turns a template plus a resolved VariableSet into an output
// artifact. It is pure: no I/O, no logging, safe to call from any goroutine.
type Assembler struct {
	signatureWidth  int
	signatureHeight int
}

// NewAssembler creates an assembler with the configured inline signature
// image extent (default 200x100)
func NewAssembler(signatureWidth, signatureHeight int) *Assembler {
	if signatureWidth <= 0 {
		signatureWidth = 200
	}
	if signatureHeight <= 0 {
		signatureHeight = 100
	}
	return &Assembler{
		signatureWidth:  signatureWidth,
		signatureHeight: signatureHeight,
	}
}

// Assemble dispatches on the template format
func (a *Assembler) Assemble(tpl *model.DocumentTemplate, vars VariableSet, in GenerationInput) (*Artifact, error) {
	switch tpl.Format {
	case model.TemplateFormatHTML:
		return a.assembleHTML(tpl, vars)
	case model.TemplateFormatDocx:
		return a.assembleDocx(tpl.Category, vars, in)
	default:
		return nil, fmt.Errorf("%w: format %q", ErrUnsupportedDocumentType, tpl.Format)
	}
}

// assembleHTML substitutes the variable set into the raw template content
func (a *Assembler) assembleHTML(tpl *model.DocumentTemplate, vars VariableSet) (*Artifact, error) {
	return &Artifact{
		Content:       Substitute(tpl.Content, vars),
		MimeType:      model.MimeTypeHTML,
		FileExtension: "html",
	}, nil
}

// assembleDocx builds the document block by block from the variable set.
// The binary format needs explicit paragraph objects, not string splicing.
func (a *Assembler) assembleDocx(category string, vars VariableSet, in GenerationInput) (*Artifact, error) {
	doc := docx.New()

	switch category {
	case model.TemplateCategoryOpsioInfoSheet:
		a.buildInfoSheet(doc, vars)
	case model.TemplateCategoryResiliation:
		a.buildResiliationLetter(doc, vars, in.Persons)
	default:
		return nil, fmt.Errorf("%w: docx category %q", ErrUnsupportedDocumentType, category)
	}

	artifact := &Artifact{
		MimeType:      model.MimeTypeDocx,
		FileExtension: "docx",
	}
	a.appendSignatureSection(doc, vars, in.Signature, artifact)

	data, err := doc.Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	artifact.Content = base64.StdEncoding.EncodeToString(data)
	artifact.IsBinary = true
	return artifact, nil
}

// buildInfoSheet renders the Opsio information sheet
func (a *Assembler) buildInfoSheet(doc *docx.Document, vars VariableSet) {
	title := doc.AddParagraph().Align(docx.AlignCenter).SpacingAfter(240)
	title.AddText("Feuille d'information Opsio").Bold().Size(16)

	a.heading(doc, "Informations client")
	a.field(doc, "Nom", vars.Get("CLIENT_NOM"))
	a.field(doc, "Prénom", vars.Get("CLIENT_PRENOM"))
	a.field(doc, "Adresse", vars.Get("CLIENT_ADRESSE"))
	a.field(doc, "NPA/Localité", vars.Get("CLIENT_NPA_LOCALITE"))
	a.field(doc, "Email", vars.Get("CLIENT_EMAIL"))
	a.field(doc, "Téléphone", vars.Get("CLIENT_TELEPHONE"))

	a.heading(doc, "Conseiller")
	a.field(doc, "Nom", vars.Get("CONSEILLER_NOM"))
	a.field(doc, "Email", vars.Get("CONSEILLER_EMAIL"))
	a.field(doc, "Téléphone", vars.Get("CONSEILLER_TELEPHONE"))

	a.heading(doc, "Mode de rémunération")
	a.checkboxLine(doc, vars.Get("PAIEMENT_COMMISSION_CASE"), "Commission")
	a.checkboxLine(doc, vars.Get("PAIEMENT_HONORAIRES_CASE"), "Honoraires")

	a.field(doc, "Lieu et date", vars.Get("LIEU_DATE"))
	a.field(doc, "Référence", vars.Get("SIGNATURE_HASH"))
}

// buildResiliationLetter renders the termination letter
func (a *Assembler) buildResiliationLetter(doc *docx.Document, vars VariableSet, persons []model.InsuredPerson) {
	sender := doc.AddParagraph().SpacingAfter(240)
	sender.AddText(vars.Get("CLIENT_PRENOM") + " " + vars.Get("CLIENT_NOM"))
	doc.AddParagraph().AddText(vars.Get("CLIENT_ADRESSE"))
	doc.AddParagraph().SpacingAfter(240).AddText(vars.Get("CLIENT_NPA_LOCALITE"))

	doc.AddParagraph().SpacingAfter(240).AddText(vars.Get("COMPAGNIE"))
	doc.AddParagraph().Align(docx.AlignRight).SpacingAfter(240).AddText(vars.Get("LIEU_DATE"))

	subject := doc.AddParagraph().SpacingAfter(240)
	subject.AddText("Résiliation du contrat d'assurance — Police n° " + vars.Get("NUMERO_POLICE")).Bold()

	doc.AddParagraph().SpacingAfter(120).AddText("Madame, Monsieur,")
	body := doc.AddParagraph().SpacingAfter(120)
	body.AddText(fmt.Sprintf(
		"Par la présente, je résilie mon contrat d'assurance %s (police n° %s) auprès de %s avec effet au %s.",
		vars.Get("TYPE_POLICE"), vars.Get("NUMERO_POLICE"), vars.Get("COMPAGNIE"), vars.Get("DATE_RESILIATION")))

	if motif := vars.Get("MOTIF"); motif != "" {
		a.field(doc, "Motif", motif)
	}

	// only present persons get a block; absent slots are omitted entirely
	if len(persons) > 0 {
		a.heading(doc, "Personnes assurées")
		for _, person := range persons {
			line := "• " + person.Name
			if person.BirthDate != "" {
				line += ", né(e) le " + person.BirthDate
			}
			if person.PolicyNumber != "" {
				line += " (police n° " + person.PolicyNumber + ")"
			}
			doc.AddParagraph().AddText(line)
		}
	}

	doc.AddParagraph().SpacingAfter(120).AddText(
		"Je vous prie de m'adresser une confirmation écrite de cette résiliation.")
	doc.AddParagraph().SpacingAfter(240).AddText(
		"Veuillez agréer, Madame, Monsieur, mes salutations distinguées.")
}

// appendSignatureSection renders the signature block. The image paragraph
// must be the immediate next block after its label; nothing may come between
// them, otherwise the image renders visually detached from its caption.
func (a *Assembler) appendSignatureSection(doc *docx.Document, vars VariableSet, sig *SignatureAsset, artifact *Artifact) {
	label := doc.AddParagraph().SpacingAfter(60)
	label.AddText("Signature Client(e):").Bold()

	if sig != nil && len(sig.PNG) > 0 {
		if docx.ValidatePNG(sig.PNG) == nil {
			imagePara := doc.AddParagraph()
			if err := imagePara.AddImage(sig.PNG, a.signatureWidth, a.signatureHeight); err == nil {
				artifact.SignatureEmbedded = true
				confirmation := doc.AddParagraph()
				confirmation.AddText(fmt.Sprintf(
					"[Signature électronique appliquée le %s]",
					sig.SignedAt.Format(DateFormat))).Italic().Size(8)
				return
			}
		}
		// bad signature bytes must never block document delivery
		artifact.SignatureFellBack = true
	}

	doc.AddParagraph().AddText("________________________________")

	// per-person signature lines for adults
	for i := 1; i <= model.MaxInsuredPersons; i++ {
		prefix := fmt.Sprintf("PERSONNE_%d_", i)
		if vars.Get(prefix+"SIGNATURE_DISPLAY") != DisplayVisible {
			continue
		}
		p := doc.AddParagraph().SpacingAfter(60)
		p.AddText("Signature " + vars.Get(prefix+"NOM") + ": ________________________")
	}
}

// heading renders a bold section heading
func (a *Assembler) heading(doc *docx.Document, text string) {
	p := doc.AddParagraph().SpacingAfter(120)
	p.AddText(text).Bold().Size(12)
}

// field renders one "Label: value" line
func (a *Assembler) field(doc *docx.Document, label, value string) {
	p := doc.AddParagraph().SpacingAfter(60)
	p.AddText(label + ": ").Bold()
	p.AddText(value)
}

// checkboxLine renders one checkbox marker followed by its label
func (a *Assembler) checkboxLine(doc *docx.Document, marker, label string) {
	if marker == "" {
		marker = MarkerBoxEmpty
	}
	doc.AddParagraph().SpacingAfter(60).AddText(marker + " " + label)
}
