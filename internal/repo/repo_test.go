package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/faiadgitm-oss/trpical-try/internal/db"
	"github.com/faiadgitm-oss/trpical-try/internal/models"
)

func newTestRepo(t *testing.T) *GormRepo {
	t.Helper()
	gdb, err := db.Open(context.Background(), filepath.Join(t.TempDir(), "repo.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })
	return New(gdb)
}

func mustItem(t *testing.T, r *GormRepo, cat *models.Category, name, desc string) models.Item {
	t.Helper()
	item := models.Item{Name: name, Description: desc, Price: 10}
	if cat != nil {
		item.CategoryID = &cat.ID
	}
	require.NoError(t, r.CreateItem(context.Background(), &item))
	return item
}

func TestMenu_CategoriesByNameItemsByID(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	smoothie, err := r.FindOrCreateCategory(ctx, "Smoothie")
	require.NoError(t, err)
	juices, err := r.FindOrCreateCategory(ctx, "Juices")
	require.NoError(t, err)

	mustItem(t, r, smoothie, "Mango", "")
	mustItem(t, r, juices, "Orange", "")
	mustItem(t, r, smoothie, "Berry", "")

	cats, err := r.Menu(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Juices", cats[0].Name)
	assert.Equal(t, "Smoothie", cats[1].Name)
	require.Len(t, cats[1].Items, 2)
	assert.Equal(t, "Mango", cats[1].Items[0].Name)
	assert.Equal(t, "Berry", cats[1].Items[1].Name)
}

func TestFindOrCreateCategory_Idempotent(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a, err := r.FindOrCreateCategory(ctx, "Popsicles")
	require.NoError(t, err)
	b, err := r.FindOrCreateCategory(ctx, "Popsicles")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)

	var n int64
	require.NoError(t, r.DB.Model(&models.Category{}).Count(&n).Error)
	assert.EqualValues(t, 1, n)
}

func TestSearchItems(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()
	cat, err := r.FindOrCreateCategory(ctx, "Shakes")
	require.NoError(t, err)

	mustItem(t, r, cat, "Mango Lassi", "sweet yoghurt drink")
	mustItem(t, r, cat, "Cold Coffee", "with a hint of MANGO")
	mustItem(t, r, nil, "Plain Water", "100% pure")

	got, err := r.SearchItems(ctx, "mango")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mango Lassi", got[0].Name)
	assert.Equal(t, "Cold Coffee", got[1].Name)
	require.NotNil(t, got[0].Category)
	assert.Equal(t, "Shakes", got[0].Category.Name)

	got, err = r.SearchItems(ctx, "%")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Plain Water", got[0].Name)

	got, err = r.SearchItems(ctx, "pizza")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestItemsByIDs_PreservesOrder(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	a := mustItem(t, r, nil, "A", "")
	b := mustItem(t, r, nil, "B", "")

	got, err := r.ItemsByIDs(ctx, []uint{b.ID, 999, a.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "B", got[0].Name)
	assert.Equal(t, "A", got[1].Name)
}

func TestListOrders_NewestFirst(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 3; i++ {
		o := models.Order{
			Items:     []models.LineItem{{Price: 1, Qty: 1}},
			Total:     1,
			Status:    models.OrderStatusPending,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, r.CreateOrder(ctx, &o))
	}

	orders, err := r.ListOrders(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.EqualValues(t, 3, orders[0].ID)
	assert.EqualValues(t, 1, orders[2].ID)

	page, err := r.ListOrders(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.EqualValues(t, 2, page[0].ID)

	total, err := r.CountOrders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestUpdateOrderStatus(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	o := models.Order{Items: []models.LineItem{{Price: 2, Qty: 3, Name: "Kulfi"}}, Total: 6, Status: models.OrderStatusPending}
	require.NoError(t, r.CreateOrder(ctx, &o))
	require.NoError(t, r.UpdateOrderStatus(ctx, &o, "out for delivery"))

	got, err := r.GetOrder(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "out for delivery", got.Status)
	assert.Equal(t, "Kulfi", got.Items[0].Name)

	_, err = r.GetOrder(ctx, 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
