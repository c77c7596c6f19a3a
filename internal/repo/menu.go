package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/faiadgitm-oss/trpical-try/internal/models"
)

func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Menu returns every category ordered by name with its items preloaded.
func (r *GormRepo) Menu(ctx context.Context) ([]models.Category, error) {
	var cats []models.Category
	if err := r.DB.WithContext(ctx).
		Preload("Items", byID).
		Order("name ASC").
		Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

func (r *GormRepo) ListItems(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := r.DB.WithContext(ctx).Preload("Category").Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.DB.WithContext(ctx).Preload("Category").First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// ItemsByIDs loads the items with the given ids in the order of ids.
// Unknown ids are skipped.
func (r *GormRepo) ItemsByIDs(ctx context.Context, ids []uint) ([]models.Item, error) {
	if len(ids) == 0 {
		return []models.Item{}, nil
	}

	var found []models.Item
	if err := r.DB.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}

	byKey := make(map[uint]models.Item, len(found))
	for _, it := range found {
		byKey[it.ID] = it
	}
	items := make([]models.Item, 0, len(found))
	for _, id := range ids {
		if it, ok := byKey[id]; ok {
			items = append(items, it)
		}
	}
	return items, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchItems matches q as a case-insensitive substring of name or description.
func (r *GormRepo) SearchItems(ctx context.Context, q string) ([]models.Item, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(q)) + "%"

	items := make([]models.Item, 0)
	if err := r.DB.WithContext(ctx).
		Preload("Category").
		Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("id ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindOrCreateCategory returns the category called name, creating it when
// missing. Concurrent callers with the same new name all get the one row.
func (r *GormRepo) FindOrCreateCategory(ctx context.Context, name string) (*models.Category, error) {
	db := r.DB.WithContext(ctx)

	insert := models.Category{Name: name}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&insert).Error; err != nil {
		return nil, err
	}

	var cat models.Category
	if err := db.Where("name = ?", name).First(&cat).Error; err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *GormRepo) CreateItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Omit("Category").Create(item).Error
}

func (r *GormRepo) SaveItem(ctx context.Context, item *models.Item) error {
	return r.DB.WithContext(ctx).Omit("Category").Save(item).Error
}
