package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/faiadgitm-oss/trpical-try/internal/db"
	"github.com/faiadgitm-oss/trpical-try/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "seed.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return gdb
}

func TestSeed_PopulatesEmptyCatalog(t *testing.T) {
	gdb := openTestDB(t)

	seeded, err := Seed(context.Background(), gdb)
	require.NoError(t, err)
	require.True(t, seeded)

	var cats, items int64
	require.NoError(t, gdb.Model(&models.Category{}).Count(&cats).Error)
	require.NoError(t, gdb.Model(&models.Item{}).Count(&items).Error)
	assert.EqualValues(t, len(DefaultCategories), cats)
	assert.EqualValues(t, len(DefaultCategories)*itemsPerCategory, items)

	var first models.Item
	require.NoError(t, gdb.Where("name = ?", "Juices Item 2").First(&first).Error)
	assert.Equal(t, 91.0, first.Price)
	assert.Equal(t, "Delicious juices item 2.", first.Description)
	require.Len(t, first.Variations.Sizes, 2)
	assert.Equal(t, 25.0, first.Variations.Sizes[1].PriceDiff)
	assert.Equal(t, []string{"chocolate", "nuts", "sprinkles"}, first.Variations.Toppings)
}

func TestSeed_Idempotent(t *testing.T) {
	gdb := openTestDB(t)

	_, err := Seed(context.Background(), gdb)
	require.NoError(t, err)

	seeded, err := Seed(context.Background(), gdb)
	require.NoError(t, err)
	assert.False(t, seeded)

	var cats int64
	require.NoError(t, gdb.Model(&models.Category{}).Count(&cats).Error)
	assert.EqualValues(t, len(DefaultCategories), cats)
}

func TestSeed_SkipsWhenAnyCategoryExists(t *testing.T) {
	gdb := openTestDB(t)
	require.NoError(t, gdb.Create(&models.Category{Name: "House"}).Error)

	seeded, err := Seed(context.Background(), gdb)
	require.NoError(t, err)
	assert.False(t, seeded)

	var items int64
	require.NoError(t, gdb.Model(&models.Item{}).Count(&items).Error)
	assert.Zero(t, items)
}
