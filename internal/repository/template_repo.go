package repository

import (
	"errors"

	"github.com/procurelink/backend/internal/model"
	"gorm.io/gorm"
)

// templateRepository 实现
type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository 创建 Repository 实例
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// Create 创建模板（级联写入分区和字段）
func (r *templateRepository) Create(template *model.KycTemplate) error {
	return r.db.Create(template).Error
}

// List 获取模板列表（不含分区明细）
func (r *templateRepository) List() ([]model.KycTemplate, error) {
	var templates []model.KycTemplate
	result := r.db.Order("created_at DESC").Find(&templates)
	return templates, result.Error
}

// Get 获取模板详情，分区和字段按 sort_order 排序
func (r *templateRepository) Get(id uint) (*model.KycTemplate, error) {
	var template model.KycTemplate
	result := r.db.
		Preload("Sections", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Preload("Sections.Fields", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&template, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &template, nil
}

// Save 更新模板
func (r *templateRepository) Save(template *model.KycTemplate) error {
	return r.db.Save(template).Error
}

// Delete 删除模板（分区和字段级联删除）
func (r *templateRepository) Delete(id uint) error {
	if err := r.db.Where("section_id IN (?)",
		r.db.Model(&model.KycSection{}).Select("id").Where("template_id = ?", id),
	).Delete(&model.KycField{}).Error; err != nil {
		return err
	}
	if err := r.db.Where("template_id = ?", id).Delete(&model.KycSection{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&model.KycTemplate{}, id).Error
}
