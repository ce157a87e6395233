// internal/models/property.go
package models

import "time"

type Property struct {
	ID           string  `json:"idProperty" gorm:"type:varchar(36);primaryKey"`
	Name         string  `json:"name" gorm:"size:255;not null;index"`
	Address      string  `json:"address" gorm:"size:255;not null"`
	Price        float64 `json:"price" gorm:"type:decimal(14,2);not null;index"`
	CodeInternal string  `json:"codeInternal" gorm:"size:100"`
	Year         int     `json:"year"`
	OwnerID      string  `json:"idOwner,omitempty" gorm:"column:id_owner;size:64;index"`
}

type Owner struct {
	ID       string    `json:"idOwner" gorm:"column:id_owner;size:64;primaryKey"`
	Name     string    `json:"name" gorm:"size:255;not null"`
	Address  string    `json:"address" gorm:"size:255"`
	Photo    *string   `json:"photo,omitempty" gorm:"size:500"`
	Birthday time.Time `json:"birthday"`
}

type PropertyImage struct {
	ID         string `json:"idPropertyImage" gorm:"type:varchar(36);primaryKey"`
	PropertyID string `json:"idProperty" gorm:"column:id_property;type:varchar(36);not null;index"`
	File       string `json:"file" gorm:"size:500;not null"`
	Enabled    bool   `json:"enabled" gorm:"not null;index"`
}

// PropertyTrace is one sale-history record of a property.
type PropertyTrace struct {
	ID         string    `json:"idPropertyTrace" gorm:"type:varchar(36);primaryKey"`
	PropertyID string    `json:"idProperty" gorm:"column:id_property;type:varchar(36);not null;index"`
	DateSale   time.Time `json:"dateSale" gorm:"index"`
	Name       string    `json:"name" gorm:"size:255"`
	Value      float64   `json:"value" gorm:"type:decimal(14,2)"`
	Tax        float64   `json:"tax" gorm:"type:decimal(14,2)"`
}

// FullProperty is a property joined with its owner, enabled images and
// sale traces. Owner is nil when the property has none; Images and Traces
// are never nil.
type FullProperty struct {
	IDProperty   string          `json:"idProperty"`
	Name         string          `json:"name"`
	Address      string          `json:"address"`
	Price        float64         `json:"price"`
	CodeInternal string          `json:"codeInternal"`
	Year         int             `json:"year"`
	Owner        *Owner          `json:"owner"`
	Images       []PropertyImage `json:"images"`
	Traces       []PropertyTrace `json:"traces"`
}

// NewFullProperty copies the base fields of p and initializes empty relations.
func NewFullProperty(p Property) FullProperty {
	return FullProperty{
		IDProperty:   p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		Images:       []PropertyImage{},
		Traces:       []PropertyTrace{},
	}
}

// Dataset groups entities that are written together by the seed tool.
type Dataset struct {
	Owners     []Owner
	Properties []Property
	Images     []PropertyImage
	Traces     []PropertyTrace
}
