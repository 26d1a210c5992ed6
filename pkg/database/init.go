package database

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/pkg/config"
	"github.com/opsio/esignpro-backend/pkg/logger"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// InitDatabase opens the database connection (PostgreSQL or MySQL)
func InitDatabase(cfg *config.DatabaseConfig) error {
	var err error
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "postgres", "postgresql", "":
		dialector = postgres.Open(cfg.DSN())
	case "mysql":
		dialector = mysql.Open(cfg.DSN())
	default:
		return fmt.Errorf("unsupported database driver: %s (supported: postgres, mysql)", cfg.Driver)
	}

	logger.Infof("Connecting to %s database...", cfg.Driver)

	DB, err = gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  gormLogger.Warn,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	maxOpenConns := cfg.MaxOpenConns
	if maxOpenConns <= 0 {
		maxOpenConns = 100
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)

	maxIdleConns := cfg.MaxIdleConns
	if maxIdleConns <= 0 {
		maxIdleConns = 10
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)

	connMaxLifetime := cfg.ConnMaxLifetime
	if connMaxLifetime <= 0 {
		connMaxLifetime = 3600
	}
	sqlDB.SetConnMaxLifetime(time.Duration(connMaxLifetime) * time.Second)

	logger.Infof("Database connection pool configured: MaxOpenConns=%d, MaxIdleConns=%d, ConnMaxLifetime=%ds",
		maxOpenConns, maxIdleConns, connMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	logger.Infof("Database connection verified successfully")

	return nil
}

// AutoMigrateAll migrates every table of the e-signature domain
func AutoMigrateAll() error {
	return DB.AutoMigrate(
		&model.Client{},
		&model.Advisor{},
		&model.InsuranceCase{},
		&model.InsurancePolicy{},
		&model.DocumentTemplate{},
		&model.CaseSignature{},
		&model.ClientSignature{},
		&model.GeneratedDocument{},
	)
}

// SeedTemplates inserts the built-in document templates when the table is empty.
// Published templates are immutable: re-seeding never touches existing rows.
func SeedTemplates(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.DocumentTemplate{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, tpl := range builtinTemplates() {
		if err := db.Create(&tpl).Error; err != nil {
			return fmt.Errorf("failed to seed template %s: %w", tpl.Category, err)
		}
		logger.Infof("Seeded document template: %s (%s, v%s)", tpl.Name, tpl.Category, tpl.Version)
	}
	return nil
}

func builtinTemplates() []model.DocumentTemplate {
	resiliationPlaceholders, _ := json.Marshal([]string{
		"CLIENT_NOM", "CLIENT_PRENOM", "CLIENT_ADRESSE", "CLIENT_NPA_LOCALITE",
		"COMPAGNIE", "NUMERO_POLICE", "TYPE_POLICE", "DATE_RESILIATION", "MOTIF",
		"DATE_ACTUELLE", "LIEU_DATE",
		"PERSONNE_1_NOM", "PERSONNE_1_DISPLAY", "PERSONNE_1_SIGNATURE_DISPLAY",
		"PERSONNE_2_NOM", "PERSONNE_2_DISPLAY", "PERSONNE_2_SIGNATURE_DISPLAY",
		"PERSONNE_3_NOM", "PERSONNE_3_DISPLAY", "PERSONNE_3_SIGNATURE_DISPLAY",
		"PERSONNE_4_NOM", "PERSONNE_4_DISPLAY", "PERSONNE_4_SIGNATURE_DISPLAY",
	})

	infoSheetPlaceholders, _ := json.Marshal([]string{
		"CLIENT_NOM", "CLIENT_PRENOM", "CLIENT_ADRESSE", "CLIENT_NPA_LOCALITE",
		"CONSEILLER_NOM", "CONSEILLER_EMAIL", "CONSEILLER_TELEPHONE",
		"PAIEMENT_COMMISSION_CHECKED", "PAIEMENT_HONORAIRES_CHECKED",
		"DATE_ACTUELLE", "LIEU_DATE", "SIGNATURE_HASH",
	})

	return []model.DocumentTemplate{
		{
			Name:         "Lettre de résiliation",
			Category:     model.TemplateCategoryResiliation,
			Format:       model.TemplateFormatHTML,
			Placeholders: resiliationPlaceholders,
			Version:      "1.0.0",
			IsActive:     true,
			Content: `<html>
<body>
<p>{{CLIENT_PRENOM}} {{CLIENT_NOM}}<br>
{{CLIENT_ADRESSE}}<br>
{{CLIENT_NPA_LOCALITE}}</p>

<p>{{COMPAGNIE}}</p>

<p>{{LIEU_DATE}}</p>

<p><strong>Résiliation du contrat d'assurance — Police n° {{NUMERO_POLICE}}</strong></p>

<p>Madame, Monsieur,</p>

<p>Par la présente, je résilie mon contrat d'assurance {{TYPE_POLICE}}
(police n° {{NUMERO_POLICE}}) auprès de {{COMPAGNIE}} avec effet au {{DATE_RESILIATION}}.</p>

<p>Motif&nbsp;: {{MOTIF}}</p>

<div style="display:{{PERSONNE_1_DISPLAY}}">Personne assurée&nbsp;: {{PERSONNE_1_NOM}}</div>
<div style="display:{{PERSONNE_2_DISPLAY}}">Personne assurée&nbsp;: {{PERSONNE_2_NOM}}</div>
<div style="display:{{PERSONNE_3_DISPLAY}}">Personne assurée&nbsp;: {{PERSONNE_3_NOM}}</div>
<div style="display:{{PERSONNE_4_DISPLAY}}">Personne assurée&nbsp;: {{PERSONNE_4_NOM}}</div>

<p>Je vous prie de m'adresser une confirmation écrite de cette résiliation.</p>

<p>Veuillez agréer, Madame, Monsieur, mes salutations distinguées.</p>

<p>{{CLIENT_PRENOM}} {{CLIENT_NOM}}</p>

<div style="display:{{PERSONNE_1_SIGNATURE_DISPLAY}}">Signature&nbsp;: {{PERSONNE_1_NOM}} ________________</div>
<div style="display:{{PERSONNE_2_SIGNATURE_DISPLAY}}">Signature&nbsp;: {{PERSONNE_2_NOM}} ________________</div>
<div style="display:{{PERSONNE_3_SIGNATURE_DISPLAY}}">Signature&nbsp;: {{PERSONNE_3_NOM}} ________________</div>
<div style="display:{{PERSONNE_4_SIGNATURE_DISPLAY}}">Signature&nbsp;: {{PERSONNE_4_NOM}} ________________</div>
</body>
</html>`,
		},
		{
			Name:         "Feuille d'information Opsio",
			Category:     model.TemplateCategoryOpsioInfoSheet,
			Format:       model.TemplateFormatDocx,
			Placeholders: infoSheetPlaceholders,
			Version:      "1.0.0",
			IsActive:     true,
			// docx templates are assembled block by block from the variable
			// set; no raw content is stored
		},
	}
}
