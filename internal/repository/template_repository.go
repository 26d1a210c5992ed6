package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/opsio/esignpro-backend/internal/model"
	"github.com/opsio/esignpro-backend/pkg/logger"
	"github.com/opsio/esignpro-backend/pkg/metrics"
	pkgredis "github.com/opsio/esignpro-backend/pkg/redis"
	"gorm.io/gorm"
)

const templateCacheKeyPrefix = "esignpro:template:"

type TemplateRepository struct {
	db       *gorm.DB
	cacheTTL time.Duration
}

func NewTemplateRepository(db *gorm.DB, cacheTTLSeconds int) *TemplateRepository {
	if cacheTTLSeconds <= 0 {
		cacheTTLSeconds = 300
	}
	return &TemplateRepository{
		db:       db,
		cacheTTL: time.Duration(cacheTTLSeconds) * time.Second,
	}
}

// GetActiveByCategory returns the published template for a category,
// serving from the redis cache when available. Templates are immutable once
// published, so a short TTL only has to cover version replacement.
func (r *TemplateRepository) GetActiveByCategory(ctx context.Context, category string) (*model.DocumentTemplate, error) {
	if tpl := r.cacheGet(ctx, category); tpl != nil {
		return tpl, nil
	}

	var tpl model.DocumentTemplate
	err := r.db.Where("category = ? AND is_active = ?", category, true).
		Order("created_at DESC").First(&tpl).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	r.cacheSet(ctx, category, &tpl)
	return &tpl, nil
}

// GetByID fetches a template; returns nil, nil when the row does not exist
func (r *TemplateRepository) GetByID(id string) (*model.DocumentTemplate, error) {
	var tpl model.DocumentTemplate
	err := r.db.Where("id = ?", id).First(&tpl).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &tpl, nil
}

// List returns all templates ordered by category then version
func (r *TemplateRepository) List() ([]model.DocumentTemplate, error) {
	var templates []model.DocumentTemplate
	err := r.db.Order("category ASC").Order("version DESC").Find(&templates).Error
	return templates, err
}

func (r *TemplateRepository) cacheGet(ctx context.Context, category string) *model.DocumentTemplate {
	if !pkgredis.IsEnabled() {
		return nil
	}

	data, err := pkgredis.GetClient().Get(ctx, templateCacheKeyPrefix+category).Bytes()
	if err != nil {
		metrics.TemplateCacheHits.WithLabelValues("miss").Inc()
		return nil
	}

	var tpl model.DocumentTemplate
	if err := json.Unmarshal(data, &tpl); err != nil {
		logger.Warnf("Discarding corrupt template cache entry for %s: %v", category, err)
		metrics.TemplateCacheHits.WithLabelValues("miss").Inc()
		return nil
	}
	metrics.TemplateCacheHits.WithLabelValues("hit").Inc()
	return &tpl
}

func (r *TemplateRepository) cacheSet(ctx context.Context, category string, tpl *model.DocumentTemplate) {
	if !pkgredis.IsEnabled() {
		return
	}
	data, err := json.Marshal(tpl)
	if err != nil {
		return
	}
	if err := pkgredis.GetClient().Set(ctx, templateCacheKeyPrefix+category, data, r.cacheTTL).Err(); err != nil {
		logger.Warnf("Failed to cache template %s: %v", category, err)
	}
}
