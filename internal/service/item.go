package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/faiadgitm-oss/trpical-try/internal/logging"
	"github.com/faiadgitm-oss/trpical-try/internal/models"
	"github.com/faiadgitm-oss/trpical-try/internal/repo"
	"github.com/faiadgitm-oss/trpical-try/internal/transport"
)

type ItemService struct {
	repo    *repo.GormRepo
	photos  PhotoStore
	indexer Indexer
}

// NewItemService builds the admin item service. indexer may be nil.
func NewItemService(r *repo.GormRepo, photos PhotoStore, indexer Indexer) *ItemService {
	return &ItemService{repo: r, photos: photos, indexer: indexer}
}

func (svc *ItemService) CreateItem(ctx context.Context, form transport.ItemForm) (*models.Item, error) {
	name := strings.TrimSpace(value(form.Name))
	if name == "" {
		return nil, fmt.Errorf("%w: name required", ErrValidation)
	}

	price, err := parsePrice(value(form.Price))
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:        name,
		Description: value(form.Description),
		Price:       price,
		OutOfStock:  parseFlag(value(form.OutOfStock)),
	}
	if v, ok := parseVariations(value(form.Variations)); ok {
		item.Variations = v
	}

	if err := svc.assignCategory(ctx, item, value(form.Category)); err != nil {
		return nil, err
	}
	if err := svc.attachPhoto(item, form); err != nil {
		return nil, err
	}

	if err := svc.repo.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	svc.index(ctx, *item)
	return item, nil
}

// UpdateItem overwrites only the submitted fields. The photo is replaced
// only when a new file is attached.
func (svc *ItemService) UpdateItem(ctx context.Context, id uint, form transport.ItemForm) (*models.Item, error) {
	item, err := svc.repo.GetItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %d", ErrNotFound, id)
		}
		return nil, err
	}

	if form.Name != nil {
		if name := strings.TrimSpace(*form.Name); name != "" {
			item.Name = name
		}
	}
	if form.Description != nil {
		item.Description = *form.Description
	}
	if form.Price != nil && strings.TrimSpace(*form.Price) != "" {
		price, err := parsePrice(*form.Price)
		if err != nil {
			return nil, err
		}
		item.Price = price
	}
	if form.OutOfStock != nil {
		item.OutOfStock = parseFlag(*form.OutOfStock)
	}
	if form.Variations != nil {
		if v, ok := parseVariations(*form.Variations); ok {
			item.Variations = v
		}
	}
	if form.Category != nil {
		if err := svc.assignCategory(ctx, item, *form.Category); err != nil {
			return nil, err
		}
	}
	if err := svc.attachPhoto(item, form); err != nil {
		return nil, err
	}

	if err := svc.repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}
	svc.index(ctx, *item)
	return item, nil
}

// assignCategory resolves name to a category, creating it when missing.
// A blank name leaves the item untouched.
func (svc *ItemService) assignCategory(ctx context.Context, item *models.Item, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	cat, err := svc.repo.FindOrCreateCategory(ctx, name)
	if err != nil {
		return err
	}
	item.CategoryID = &cat.ID
	item.Category = cat
	return nil
}

func (svc *ItemService) attachPhoto(item *models.Item, form transport.ItemForm) error {
	if form.Photo == nil || form.Photo.Filename == "" || svc.photos == nil {
		return nil
	}
	stored, err := svc.photos.Save(form.Photo)
	if err != nil {
		return fmt.Errorf("save photo: %w", err)
	}
	item.Photo = &stored
	return nil
}

func (svc *ItemService) index(ctx context.Context, item models.Item) {
	if svc.indexer == nil {
		return
	}
	if err := svc.indexer.IndexItem(ctx, item); err != nil {
		logging.FromContext(ctx).Warn("index_item_error", "item_id", item.ID, "error", err)
	}
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// parsePrice treats a blank value as 0.
func parsePrice(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid price %q", ErrValidation, raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("%w: price must be >= 0", ErrValidation)
	}
	return price, nil
}

func parseFlag(raw string) bool {
	return strings.ToLower(strings.TrimSpace(raw)) == "true"
}

// parseVariations reports ok=false for blank or malformed input so callers
// can keep their current value.
func parseVariations(raw string) (models.Variations, bool) {
	var v models.Variations
	if strings.TrimSpace(raw) == "" {
		return v, false
	}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return models.Variations{}, false
	}
	return v, true
}
