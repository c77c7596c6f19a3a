package models

import (
	"time"
)

const (
	OrderStatusPending  = "pending"
	OrderStatusAccepted = "accepted"
	OrderStatusReady    = "ready"
)

type Category struct {
	ID    uint   `gorm:"primaryKey;autoIncrement"          json:"id"`
	Name  string `gorm:"size:120;uniqueIndex;not null"    json:"name"`
	Items []Item `gorm:"foreignKey:CategoryID"            json:"items,omitempty"`
}

type Item struct {
	ID          uint       `gorm:"primaryKey;autoIncrement"   json:"id"`
	Name        string     `gorm:"size:140;not null"          json:"name"`
	Description string     `gorm:"type:text;default:''"       json:"description"`
	Price       float64    `gorm:"not null;check:price >= 0"  json:"price"`
	Photo       *string    `gorm:"size:300"                   json:"photo"`
	OutOfStock  bool       `gorm:"default:false"              json:"out_of_stock"`
	CategoryID  *uint      `gorm:"index"                      json:"category_id"`
	Category    *Category  `gorm:"foreignKey:CategoryID"      json:"-"`
	Variations  Variations `gorm:"serializer:json"            json:"variations"`
}

// Variations holds the size and topping options offered for an item.
type Variations struct {
	Sizes    []SizeOption `json:"sizes,omitempty"`
	Toppings []string     `json:"toppings,omitempty"`
}

type SizeOption struct {
	Name      string  `json:"name"`
	PriceDiff float64 `json:"price_diff"`
}

// LineItem is a snapshot of an item taken when the order was placed.
// It never follows later changes to the catalog.
type LineItem struct {
	ID       *uint    `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Qty      int      `json:"qty"`
	Size     string   `json:"size,omitempty"`
	Price    float64  `json:"price"`
	Toppings []string `json:"toppings,omitempty"`
}

type Order struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"            json:"id"`
	Items     []LineItem `gorm:"serializer:json;not null"            json:"items"`
	Total     float64    `gorm:"not null"                            json:"total"`
	CarInfo   string     `gorm:"size:300"                            json:"car_info"`
	Status    string     `gorm:"size:50;default:pending;not null"    json:"status"`
	CreatedAt time.Time  `gorm:"index"                               json:"created_at"`
}

// LineTotal returns the sum of price*qty over the given lines.
func LineTotal(lines []LineItem) float64 {
	var total float64
	for _, l := range lines {
		total += l.Price * float64(l.Qty)
	}
	return total
}
