package repository

import (
	"errors"

	"github.com/procurelink/backend/internal/model"
)

// ErrNotFound 记录不存在错误
var ErrNotFound = errors.New("record not found")

type TemplateRepository interface {
	Create(template *model.KycTemplate) error
	List() ([]model.KycTemplate, error)
	Get(id uint) (*model.KycTemplate, error)
	Save(template *model.KycTemplate) error
	Delete(id uint) error
}
