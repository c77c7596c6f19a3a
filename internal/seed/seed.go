package seed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"

	"github.com/faiadgitm-oss/trpical-try/internal/models"
)

var DefaultCategories = []string{
	"New Ice Cream Flavors",
	"Natural Ice Cream",
	"Tropical Traditions",
	"Milkshake",
	"Thick Shake",
	"Tropical House Blends",
	"Juice Bottles - 500 ML",
	"Juices",
	"Smoothie",
	"Detox Healthy Juice",
	"Lassi Drink (Laban)",
	"Desi Kulfi",
	"Refreshing Summers Drinks",
	"Juice Bottles - 1.5 Liter",
	"Popsicles",
	"Tropical Mega Box",
}

const itemsPerCategory = 2

func defaultVariations() models.Variations {
	return models.Variations{
		Sizes: []models.SizeOption{
			{Name: "small", PriceDiff: 0},
			{Name: "large", PriceDiff: 25},
		},
		Toppings: []string{"chocolate", "nuts", "sprinkles"},
	}
}

func samplePrice(i int) float64 {
	return math.Round((50+float64(i)*20.5)*100) / 100
}

// Seed fills an empty catalog with the default categories and two sample
// items per category. It does nothing once any category exists.
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	var existing models.Category
	err := db.WithContext(ctx).Select("id").First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("check categories: %w", err)
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, name := range DefaultCategories {
			cat := models.Category{Name: name}
			if err := tx.Create(&cat).Error; err != nil {
				return fmt.Errorf("create category %q: %w", name, err)
			}

			for i := 1; i <= itemsPerCategory; i++ {
				item := models.Item{
					Name:        fmt.Sprintf("%s Item %d", name, i),
					Description: fmt.Sprintf("Delicious %s item %d.", strings.ToLower(name), i),
					Price:       samplePrice(i),
					CategoryID:  &cat.ID,
					Variations:  defaultVariations(),
				}
				if err := tx.Create(&item).Error; err != nil {
					return fmt.Errorf("create item %q: %w", item.Name, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
