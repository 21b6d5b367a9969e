package models

import (
	"strconv"
	"time"
)

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Images      []string  `json:"images"`
	Sizes       []string  `json:"sizes"`
	Colors      []string  `json:"colors,omitempty"`
	Material    string    `json:"material,omitempty"`
	InStock     bool      `json:"inStock"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (p Product) Key() string { return strconv.Itoa(p.ID) }
