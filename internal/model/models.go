package model

import (
	"time"
)

// KycTemplate 已提交的 KYC 模板
type KycTemplate struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	Title     string       `json:"title" gorm:"size:255;not null"`
	Category  string       `json:"category" gorm:"size:100;not null"`
	Status    string       `json:"status" gorm:"size:50;default:draft"` // draft, active, archived
	CreatedBy string       `json:"created_by" gorm:"size:100"`
	CreatedOn time.Time    `json:"created_on"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Sections  []KycSection `json:"sections,omitempty" gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE;"`
}

// KycSection 模板分区
type KycSection struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	TemplateID  uint       `json:"template_id" gorm:"index;not null"`
	SectionKey  string     `json:"section_key" gorm:"size:64;not null"` // 构建器分区 UUID
	Title       string     `json:"title" gorm:"size:255;not null"`
	Description string     `json:"description" gorm:"size:1000"`
	IsStandard  bool       `json:"is_standard" gorm:"default:false"`
	SortOrder   int        `json:"sort_order" gorm:"default:0"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Fields      []KycField `json:"fields,omitempty" gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE;"`
}

// KycField 分区字段
type KycField struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	SectionID        uint      `json:"section_id" gorm:"index;not null"`
	FieldKey         string    `json:"field_key" gorm:"size:64;not null"` // 构建器字段 UUID
	Name             string    `json:"name" gorm:"size:255;not null"`
	Type             string    `json:"type" gorm:"size:50;not null"` // text, number, dropdown, yesno, date, file
	Required         bool      `json:"required" gorm:"default:false"`
	DocumentRequired bool      `json:"document_required" gorm:"default:false"`
	Options          []string  `json:"options,omitempty" gorm:"serializer:json"`
	Placeholder      string    `json:"placeholder" gorm:"size:255"`
	SortOrder        int       `json:"sort_order" gorm:"default:0"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
