package model

import (
	"time"

	"admin-datagrid/internal/table"
)

const (
	ProductActive   = "active"
	ProductInactive = "inactive"
)

// Product is a catalog item.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Status      string    `json:"status"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Product) RecordID() string { return p.ID }

const productSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "name", "sku", "category", "price", "stock", "status", "createdAt"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "name": {"type": "string", "minLength": 1},
    "sku": {"type": "string", "minLength": 1},
    "category": {"type": "string"},
    "description": {"type": "string"},
    "price": {"type": "number", "minimum": 0},
    "stock": {"type": "integer", "minimum": 0},
    "status": {"enum": ["active", "inactive"]},
    "imageUrl": {"type": "string"},
    "createdAt": {"type": "string", "format": "date-time"},
    "updatedAt": {"type": "string", "format": "date-time"}
  }
}`

// Products describes the product catalog.
func Products() Resource[Product] {
	return Resource[Product]{
		Descriptor: Descriptor{
			Name:         "Products",
			Route:        "/products",
			ItemsField:   "products",
			ItemField:    "product",
			Facets:       []string{"status", "category"},
			SearchFields: []string{"name", "sku", "description"},
			DateField:    "createdAt",
			SearchMinLen: 1,
			Schema:       productSchema,
			Actions:      []Action{toggleStatus, deleteImage},
		},
		Columns: []table.Column[Product]{
			{Key: "name", Title: "Name", Value: func(p Product) any { return p.Name }, Sortable: true},
			{Key: "sku", Title: "SKU", Value: func(p Product) any { return p.SKU }, Sortable: true, Hideable: true},
			{Key: "category", Title: "Category", Value: func(p Product) any { return p.Category }, Sortable: true, Hideable: true},
			{Key: "price", Title: "Price", Value: func(p Product) any { return p.Price }, Sortable: true},
			{Key: "stock", Title: "Stock", Value: func(p Product) any { return p.Stock }, Sortable: true, Hideable: true},
			{Key: "status", Title: "Status", Value: func(p Product) any { return p.Status }, Sortable: true, Hideable: true},
		},
	}
}
