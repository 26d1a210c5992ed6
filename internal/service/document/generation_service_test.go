package document

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/internal/repository"
	"github.com/opsio/esignpro-backend/pkg/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func testDB(t *testing.T, withDocuments bool) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	models := []interface{}{
		&model.Client{},
		&model.Advisor{},
		&model.InsuranceCase{},
		&model.InsurancePolicy{},
		&model.DocumentTemplate{},
		&model.CaseSignature{},
	}
	if withDocuments {
		models = append(models, &model.GeneratedDocument{})
	}
	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newService(t *testing.T, db *gorm.DB) *GenerationService {
	t.Helper()
	cfg := &config.DocgenConfig{}
	cfg.SetDefaults()
	caps := repository.DetectCapabilities(db)
	return NewGenerationService(
		repository.NewTemplateRepository(db, 0),
		repository.NewCaseRepository(db),
		repository.NewDocumentRepository(db),
		repository.NewSignatureRepository(db, caps),
		cfg,
	)
}

func seedTemplate(t *testing.T, db *gorm.DB, category, format, content string) {
	t.Helper()
	if err := db.Create(&model.DocumentTemplate{
		ID:       "tpl-" + category,
		Name:     "Test " + category,
		Category: category,
		Format:   format,
		Content:  content,
		IsActive: true,
	}).Error; err != nil {
		t.Fatalf("failed to seed template: %v", err)
	}
}

func seedCase(t *testing.T, db *gorm.DB, caseID string) {
	t.Helper()
	if err := db.Create(&model.Client{
		ID:        "client-1",
		FirstName: "Jean",
		LastName:  "Dupont",
		City:      "Lausanne",
	}).Error; err != nil {
		t.Fatalf("failed to seed client: %v", err)
	}
	if err := db.Create(&model.InsuranceCase{
		ID:               caseID,
		CaseNumber:       "CASE-2025-001",
		ClientID:         "client-1",
		InsuranceCompany: "AXA",
		PolicyNumber:     "AXA-123",
		PaymentMethod:    "commission",
	}).Error; err != nil {
		t.Fatalf("failed to seed case: %v", err)
	}
}

func validPNG(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.Black)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGenerateHTMLDocument(t *testing.T) {
	db := testDB(t, true)
	seedTemplate(t, db, model.TemplateCategoryResiliation, model.TemplateFormatHTML,
		"<p>Nom: {{CLIENT_NOM}}, Police: {{NUMERO_POLICE}}</p>")
	seedCase(t, db, "case-1")
	svc := newService(t, db)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		DocumentType: model.TemplateCategoryResiliation,
		CaseID:       "case-1",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !result.Saved {
		t.Error("expected document to be saved")
	}
	if !strings.Contains(result.Artifact.Content, "Nom: Dupont") {
		t.Errorf("client name not substituted: %q", result.Artifact.Content)
	}
	if !strings.Contains(result.Artifact.Content, "Police: AXA-123") {
		t.Errorf("policy number not substituted: %q", result.Artifact.Content)
	}

	var count int64
	db.Model(&model.GeneratedDocument{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 persisted document, got %d", count)
	}
}

func TestGenerateDataOverridesResolvedVariables(t *testing.T) {
	db := testDB(t, true)
	seedTemplate(t, db, model.TemplateCategoryResiliation, model.TemplateFormatHTML,
		"<p>{{CLIENT_NOM}}</p>")
	seedCase(t, db, "case-1")
	svc := newService(t, db)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		DocumentType: model.TemplateCategoryResiliation,
		CaseID:       "case-1",
		Data:         map[string]string{"CLIENT_NOM": "Remplacé"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(result.Artifact.Content, "Remplacé") {
		t.Errorf("caller override not applied: %q", result.Artifact.Content)
	}
}

func TestGenerateUnknownTemplate(t *testing.T) {
	db := testDB(t, true)
	seedCase(t, db, "case-1")
	svc := newService(t, db)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		DocumentType: "nonexistent",
		CaseID:       "case-1",
	})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestGenerateUnknownCase(t *testing.T) {
	db := testDB(t, true)
	seedTemplate(t, db, model.TemplateCategoryResiliation, model.TemplateFormatHTML, "<p>x</p>")
	svc := newService(t, db)

	_, err := svc.Generate(context.Background(), GenerateRequest{
		DocumentType: model.TemplateCategoryResiliation,
		CaseID:       "missing",
	})
	if !errors.Is(err, ErrCaseNotFound) {
		t.Errorf("expected ErrCaseNotFound, got %v", err)
	}
}

func TestGenerateEmbedsSignature(t *testing.T) {
	db := testDB(t, true)
	seedTemplate(t, db, model.TemplateCategoryOpsioInfoSheet, model.TemplateFormatDocx, "")
	seedCase(t, db, "case-1")
	signedAt := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	if err := db.Create(&model.CaseSignature{
		ID:            "sig-1",
		CaseID:        "case-1",
		SignatureData: validPNG(t),
		SignedAt:      &signedAt,
	}).Error; err != nil {
		t.Fatalf("failed to seed signature: %v", err)
	}
	svc := newService(t, db)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		DocumentType: model.TemplateCategoryOpsioInfoSheet,
		CaseID:       "case-1",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !result.Artifact.SignatureEmbedded {
		t.Error("expected signature to be embedded")
	}
	if result.Artifact.SignatureFellBack {
		t.Error("did not expect signature fallback")
	}
	if !result.Document.IsSigned {
		t.Error("expected document marked signed")
	}
	if result.Document.SignedAt == nil || !result.Document.SignedAt.Equal(signedAt) {
		t.Errorf("expected signed_at %v, got %v", signedAt, result.Document.SignedAt)
	}
}

func TestGenerateCorruptSignatureFallsBack(t *testing.T) {
	db := testDB(t, true)
	seedTemplate(t, db, model.TemplateCategoryOpsioInfoSheet, model.TemplateFormatDocx, "")
	seedCase(t, db, "case-1")
	if err := db.Create(&model.CaseSignature{
		ID:            "sig-1",
		CaseID:        "case-1",
		SignatureData: base64.StdEncoding.EncodeToString([]byte("not a png")),
	}).Error; err != nil {
		t.Fatalf("failed to seed signature: %v", err)
	}
	svc := newService(t, db)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		DocumentType: model.TemplateCategoryOpsioInfoSheet,
		CaseID:       "case-1",
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Artifact.SignatureEmbedded {
		t.Error("corrupt signature must not be embedded")
	}
	if !result.Artifact.SignatureFellBack {
		t.Error("expected signature fallback to be recorded")
	}
	if result.Document.IsSigned {
		t.Error("fallback document must not be marked signed")
	}
	if !result.Saved {
		t.Error("fallback must not block persistence")
	}
}

func TestGenerateReturnsArtifactWhenSaveFails(t *testing.T) {
	// generated_documents table missing, every insert attempt fails
	db := testDB(t, false)
	seedTemplate(t, db, model.TemplateCategoryResiliation, model.TemplateFormatHTML,
		"<p>{{CLIENT_NOM}}</p>")
	seedCase(t, db, "case-1")
	svc := newService(t, db)

	result, err := svc.Generate(context.Background(), GenerateRequest{
		DocumentType: model.TemplateCategoryResiliation,
		CaseID:       "case-1",
	})
	if err != nil {
		t.Fatalf("expected artifact despite save failure, got error: %v", err)
	}
	if result.Saved {
		t.Error("expected Saved=false when the insert fails")
	}
	if result.Artifact == nil || !strings.Contains(result.Artifact.Content, "Dupont") {
		t.Error("expected the generated artifact to be returned")
	}
}
