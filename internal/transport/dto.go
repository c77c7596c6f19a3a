package transport

import (
	"mime/multipart"

	"github.com/faiadgitm-oss/trpical-try/internal/models"
	"github.com/faiadgitm-oss/trpical-try/internal/uploads"
)

type OrderLine struct {
	ID       *uint    `json:"id"`
	Name     string   `json:"name"`
	Qty      *int     `json:"qty"`
	Size     string   `json:"size"`
	Price    float64  `json:"price"`
	Toppings []string `json:"toppings"`
}

type PlaceOrderRequest struct {
	Items   []OrderLine `json:"items"`
	CarInfo string      `json:"car_info"`
}

type PlaceOrderResponse struct {
	OrderID uint   `json:"order_id"`
	Status  string `json:"status"`
}

type UpdateStatusRequest struct {
	Status *string `json:"status"`
}

type UpdateStatusResponse struct {
	OK     bool   `json:"ok"`
	Status string `json:"status"`
}

// ItemForm carries the admin item form. Nil fields were not submitted.
type ItemForm struct {
	Name        *string
	Description *string
	Price       *string
	Category    *string
	OutOfStock  *string
	Variations  *string
	Photo       *multipart.FileHeader
}

type ItemView struct {
	ID          uint              `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Price       float64           `json:"price"`
	Photo       *string           `json:"photo"`
	OutOfStock  bool              `json:"out_of_stock"`
	Category    *string           `json:"category"`
	Variations  models.Variations `json:"variations"`
}

type ItemResponse struct {
	OK   bool     `json:"ok"`
	Item ItemView `json:"item"`
}

type CategoryView struct {
	ID    uint       `json:"id"`
	Name  string     `json:"name"`
	Items []ItemView `json:"items"`
}

type MenuResponse struct {
	Categories []CategoryView `json:"categories"`
}

type SearchResponse struct {
	Results []ItemView `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func NewItemView(it models.Item) ItemView {
	v := ItemView{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		OutOfStock:  it.OutOfStock,
		Variations:  it.Variations,
	}
	if it.Photo != nil && *it.Photo != "" {
		url := uploads.URL(*it.Photo)
		v.Photo = &url
	}
	if it.Category != nil {
		name := it.Category.Name
		v.Category = &name
	}
	return v
}

func NewItemViews(items []models.Item) []ItemView {
	out := make([]ItemView, 0, len(items))
	for _, it := range items {
		out = append(out, NewItemView(it))
	}
	return out
}

func NewMenuResponse(cats []models.Category) MenuResponse {
	out := make([]CategoryView, 0, len(cats))
	for i := range cats {
		cat := cats[i]
		items := make([]ItemView, 0, len(cat.Items))
		for _, it := range cat.Items {
			it.Category = &cat
			items = append(items, NewItemView(it))
		}
		out = append(out, CategoryView{ID: cat.ID, Name: cat.Name, Items: items})
	}
	return MenuResponse{Categories: out}
}
