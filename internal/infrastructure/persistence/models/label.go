package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/label"
	"github.com/labelgen/backend/internal/domain/shared"
)

// LabelModel is the GORM model for the labels table. Left and right part
// details are flattened into prefixed columns.
type LabelModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	TemplateID         uuid.UUID `gorm:"column:template_id;type:uuid;not null;index"`
	LeftManufacturer   string    `gorm:"column:left_manufacturer;type:varchar(200);not null"`
	LeftPartNumber     string    `gorm:"column:left_part_number;type:varchar(200);not null"`
	LeftDescription    string    `gorm:"column:left_description;type:text"`
	LeftStockQuantity  string    `gorm:"column:left_stock_quantity;type:varchar(50)"`
	LeftBinLocation    string    `gorm:"column:left_bin_location;type:varchar(100)"`
	LeftImageURL       string    `gorm:"column:left_image_url;type:text"`
	LeftNotes          string    `gorm:"column:left_notes;type:text"`
	RightManufacturer  string    `gorm:"column:right_manufacturer;type:varchar(200)"`
	RightPartNumber    string    `gorm:"column:right_part_number;type:varchar(200)"`
	RightDescription   string    `gorm:"column:right_description;type:text"`
	RightStockQuantity string    `gorm:"column:right_stock_quantity;type:varchar(50)"`
	RightBinLocation   string    `gorm:"column:right_bin_location;type:varchar(100)"`
	RightImageURL      string    `gorm:"column:right_image_url;type:text"`
	RightNotes         string    `gorm:"column:right_notes;type:text"`
	DefaultCopies      int       `gorm:"column:default_copies;not null;default:1"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
	Version            int       `gorm:"not null;default:1"`
}

// TableName returns the table name for LabelModel
func (LabelModel) TableName() string {
	return "labels"
}

// ToDomain converts LabelModel to a domain Label
func (m *LabelModel) ToDomain() *label.Label {
	return &label.Label{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		TemplateID: m.TemplateID,
		Left: label.PartDetails{
			Manufacturer:  m.LeftManufacturer,
			PartNumber:    m.LeftPartNumber,
			Description:   m.LeftDescription,
			StockQuantity: m.LeftStockQuantity,
			BinLocation:   m.LeftBinLocation,
			ImageURL:      m.LeftImageURL,
			Notes:         m.LeftNotes,
		},
		Right: label.PartDetails{
			Manufacturer:  m.RightManufacturer,
			PartNumber:    m.RightPartNumber,
			Description:   m.RightDescription,
			StockQuantity: m.RightStockQuantity,
			BinLocation:   m.RightBinLocation,
			ImageURL:      m.RightImageURL,
			Notes:         m.RightNotes,
		},
		DefaultCopies: m.DefaultCopies,
	}
}

// LabelModelFromDomain creates a LabelModel from a domain Label
func LabelModelFromDomain(l *label.Label) *LabelModel {
	return &LabelModel{
		ID:                 l.ID,
		TemplateID:         l.TemplateID,
		LeftManufacturer:   l.Left.Manufacturer,
		LeftPartNumber:     l.Left.PartNumber,
		LeftDescription:    l.Left.Description,
		LeftStockQuantity:  l.Left.StockQuantity,
		LeftBinLocation:    l.Left.BinLocation,
		LeftImageURL:       l.Left.ImageURL,
		LeftNotes:          l.Left.Notes,
		RightManufacturer:  l.Right.Manufacturer,
		RightPartNumber:    l.Right.PartNumber,
		RightDescription:   l.Right.Description,
		RightStockQuantity: l.Right.StockQuantity,
		RightBinLocation:   l.Right.BinLocation,
		RightImageURL:      l.Right.ImageURL,
		RightNotes:         l.Right.Notes,
		DefaultCopies:      l.DefaultCopies,
		CreatedAt:          l.CreatedAt,
		UpdatedAt:          l.UpdatedAt,
		Version:            l.Version,
	}
}
