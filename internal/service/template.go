package service

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/klog/v2"

	"github.com/procurelink/backend/internal/eventbus"
	"github.com/procurelink/backend/internal/model"
	"github.com/procurelink/backend/internal/repository"
	"github.com/procurelink/backend/internal/service/statemachine"
)

var (
	ErrTemplateNotFound = errors.New("template not found")
	ErrTemplateActive   = errors.New("cannot delete an active template")
)

// TemplateDTO 模板数据传输对象（列表视图，不含分区明细）
type TemplateDTO struct {
	ID        uint   `json:"id"`
	Title     string `json:"title"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	CreatedBy string `json:"created_by"`
	CreatedOn string `json:"created_on"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TemplateDetailDTO 模板详情（含分区和字段）
type TemplateDetailDTO struct {
	ID        uint         `json:"id"`
	Title     string       `json:"title"`
	Category  string       `json:"category"`
	Status    string       `json:"status"`
	CreatedBy string       `json:"created_by"`
	CreatedOn string       `json:"created_on"`
	Sections  []SectionDTO `json:"sections"`
}

// SectionDTO 分区数据传输对象
type SectionDTO struct {
	ID          uint       `json:"id"`
	SectionKey  string     `json:"section_key"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsStandard  bool       `json:"is_standard"`
	SortOrder   int        `json:"sort_order"`
	Fields      []FieldDTO `json:"fields"`
}

// FieldDTO 字段数据传输对象
type FieldDTO struct {
	ID               uint     `json:"id"`
	FieldKey         string   `json:"field_key"`
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Required         bool     `json:"required"`
	DocumentRequired bool     `json:"document_required"`
	Options          []string `json:"options,omitempty"`
	Placeholder      string   `json:"placeholder,omitempty"`
	SortOrder        int      `json:"sort_order"`
}

// TemplateService 模板生命周期服务接口
type TemplateService interface {
	List(ctx context.Context) ([]*TemplateDTO, error)
	Get(ctx context.Context, id uint) (*TemplateDetailDTO, error)
	Delete(ctx context.Context, id uint) error
	Publish(ctx context.Context, id uint) (*TemplateDTO, error)
	Archive(ctx context.Context, id uint) (*TemplateDTO, error)
}

// templateService 实现
type templateService struct {
	templateRepo repository.TemplateRepository
	sm           *statemachine.TemplateStateMachine
	bus          *eventbus.Bus
}

// NewTemplateService 创建服务实例
func NewTemplateService(templateRepo repository.TemplateRepository, bus *eventbus.Bus) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		sm:           statemachine.NewTemplateStateMachine(),
		bus:          bus,
	}
}

// List 获取模板列表
func (s *templateService) List(ctx context.Context) ([]*TemplateDTO, error) {
	templates, err := s.templateRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	result := make([]*TemplateDTO, len(templates))
	for i, t := range templates {
		result[i] = toTemplateDTO(&t)
	}
	return result, nil
}

// Get 获取模板详情
func (s *templateService) Get(ctx context.Context, id uint) (*TemplateDetailDTO, error) {
	template, err := s.templateRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return toTemplateDetailDTO(template), nil
}

// Delete 删除模板。发布中（active）的模板不允许删除
func (s *templateService) Delete(ctx context.Context, id uint) error {
	template, err := s.templateRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	if template.Status == string(statemachine.TemplateStatusActive) {
		return ErrTemplateActive
	}

	if err := s.templateRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.publish(ctx, eventbus.TemplateEventDeleted, template)
	return nil
}

// Publish 发布模板（draft -> active）
func (s *templateService) Publish(ctx context.Context, id uint) (*TemplateDTO, error) {
	return s.transition(ctx, id, statemachine.TemplateStatusActive, eventbus.TemplateEventPublished)
}

// Archive 归档模板（draft/active -> archived），归档后不可再迁移
func (s *templateService) Archive(ctx context.Context, id uint) (*TemplateDTO, error) {
	return s.transition(ctx, id, statemachine.TemplateStatusArchived, eventbus.TemplateEventArchived)
}

// transition 通过状态机执行状态迁移并持久化
func (s *templateService) transition(ctx context.Context, id uint, to statemachine.TemplateStatus, eventType eventbus.TemplateEventType) (*TemplateDTO, error) {
	template, err := s.templateRepo.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := s.sm.Transition(statemachine.TemplateStatus(template.Status), to, template.ID); err != nil {
		return nil, err
	}

	template.Status = string(to)
	if err := s.templateRepo.Save(template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.publish(ctx, eventType, template)
	return toTemplateDTO(template), nil
}

func (s *templateService) publish(ctx context.Context, eventType eventbus.TemplateEventType, t *model.KycTemplate) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, eventbus.TemplateEvent{
		Type:       eventType,
		TemplateID: t.ID,
		Title:      t.Title,
		Category:   t.Category,
	}); err != nil {
		klog.V(6).Infof("模板事件发布失败: type=%s, err=%v", eventType, err)
	}
}

// toTemplateDTO 转换为 DTO
func toTemplateDTO(t *model.KycTemplate) *TemplateDTO {
	return &TemplateDTO{
		ID:        t.ID,
		Title:     t.Title,
		Category:  t.Category,
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
		CreatedOn: t.CreatedOn.Format("2006-01-02T15:04:05Z"),
		CreatedAt: t.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: t.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// toTemplateDetailDTO 转换为详情 DTO
func toTemplateDetailDTO(t *model.KycTemplate) *TemplateDetailDTO {
	sections := make([]SectionDTO, len(t.Sections))
	for i, sec := range t.Sections {
		fields := make([]FieldDTO, len(sec.Fields))
		for j, f := range sec.Fields {
			fields[j] = FieldDTO{
				ID:               f.ID,
				FieldKey:         f.FieldKey,
				Name:             f.Name,
				Type:             f.Type,
				Required:         f.Required,
				DocumentRequired: f.DocumentRequired,
				Options:          f.Options,
				Placeholder:      f.Placeholder,
				SortOrder:        f.SortOrder,
			}
		}
		sections[i] = SectionDTO{
			ID:          sec.ID,
			SectionKey:  sec.SectionKey,
			Title:       sec.Title,
			Description: sec.Description,
			IsStandard:  sec.IsStandard,
			SortOrder:   sec.SortOrder,
			Fields:      fields,
		}
	}

	return &TemplateDetailDTO{
		ID:        t.ID,
		Title:     t.Title,
		Category:  t.Category,
		Status:    t.Status,
		CreatedBy: t.CreatedBy,
		CreatedOn: t.CreatedOn.Format("2006-01-02T15:04:05Z"),
		Sections:  sections,
	}
}
