package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/labelgen/backend/internal/domain/layout"
	"github.com/labelgen/backend/internal/domain/shared"
	"github.com/labelgen/backend/internal/domain/template"
)

// TemplateModel is the GORM model for the label_templates table. Layout
// and FieldFormats are stored as JSON text so the column survives schema
// evolution of the layout format.
type TemplateModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key"`
	Name               string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description        string    `gorm:"type:text"`
	AccentColor        string    `gorm:"column:accent_color;type:varchar(7);not null"`
	ImagePosition      string    `gorm:"column:image_position;type:varchar(10);not null"`
	TextAlign          string    `gorm:"column:text_align;type:varchar(10);not null"`
	PartsPerLabel      int       `gorm:"column:parts_per_label;not null;default:1"`
	IncludeDescription bool      `gorm:"column:include_description;not null;default:true"`
	Layout             string    `gorm:"type:text;not null"`
	FieldFormats       string    `gorm:"column:field_formats;type:text;not null"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
	Version            int       `gorm:"not null;default:1"`
}

// TableName returns the table name for TemplateModel
func (TemplateModel) TableName() string {
	return "label_templates"
}

// ToDomain converts TemplateModel to a domain LabelTemplate. Stored
// layout and formats pass through normalization so rows written by an
// older build still come out consistent.
func (m *TemplateModel) ToDomain() *template.LabelTemplate {
	caps := layout.Capabilities{
		PartsPerLabel:      m.PartsPerLabel,
		IncludeDescription: m.IncludeDescription,
	}

	var formats map[string]string
	if m.FieldFormats != "" {
		_ = json.Unmarshal([]byte(m.FieldFormats), &formats)
	}

	return &template.LabelTemplate{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		Name:               m.Name,
		Description:        m.Description,
		AccentColor:        m.AccentColor,
		ImagePosition:      template.ImagePosition(m.ImagePosition),
		TextAlign:          template.TextAlign(m.TextAlign),
		PartsPerLabel:      m.PartsPerLabel,
		IncludeDescription: m.IncludeDescription,
		Layout:             layout.NormalizeJSON(m.Layout, caps),
		FieldFormats:       layout.NormalizeFormats(formats, caps),
	}
}

// TemplateModelFromDomain creates a TemplateModel from a domain LabelTemplate
func TemplateModelFromDomain(t *template.LabelTemplate) *TemplateModel {
	formats, err := json.Marshal(t.FieldFormats)
	if err != nil {
		formats = []byte("{}")
	}

	return &TemplateModel{
		ID:                 t.ID,
		Name:               t.Name,
		Description:        t.Description,
		AccentColor:        t.AccentColor,
		ImagePosition:      t.ImagePosition.String(),
		TextAlign:          t.TextAlign.String(),
		PartsPerLabel:      t.PartsPerLabel,
		IncludeDescription: t.IncludeDescription,
		Layout:             t.Layout.Encode(),
		FieldFormats:       string(formats),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
		Version:            t.Version,
	}
}
