package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"k8s.io/klog/v2"

	"github.com/procurelink/backend/internal/builder"
	"github.com/procurelink/backend/internal/eventbus"
	"github.com/procurelink/backend/internal/repository"
)

var (
	ErrSessionNotFound = errors.New("editor session not found")
)

// SessionDTO 会话状态，含文档和视图层的展开分区集合
type SessionDTO struct {
	SessionID        string            `json:"session_id"`
	Document         *builder.Document `json:"document"`
	ExpandedSections []string          `json:"expanded_sections"`
}

// AddSectionRequest 新增分区请求。StandardKey 非空时从标准目录取，
// 否则按自定义分区处理
type AddSectionRequest struct {
	StandardKey string `json:"standard_key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Position 插入位置，-1 表示追加到末尾
	Position int `json:"position"`
}

// UpdateSectionRequest 更新分区请求
type UpdateSectionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AddFieldRequest 新增字段请求
type AddFieldRequest struct {
	Name             string   `json:"name"`
	Type             string   `json:"type"`
	Required         bool     `json:"required"`
	DocumentRequired bool     `json:"document_required"`
	Options          []string `json:"options"`
	Placeholder      string   `json:"placeholder"`
}

// UpdateFieldRequest 字段局部更新请求，nil 表示不修改
type UpdateFieldRequest struct {
	Name             *string   `json:"name"`
	Type             *string   `json:"type"`
	Required         *bool     `json:"required"`
	DocumentRequired *bool     `json:"document_required"`
	Options          *[]string `json:"options"`
	Placeholder      *string   `json:"placeholder"`
}

// DragBeginRequest 开始拖拽请求。Kind 为 section 或 field
type DragBeginRequest struct {
	Kind      string `json:"kind" binding:"required,oneof=section field"`
	SectionID string `json:"section_id" binding:"required"`
	FieldID   string `json:"field_id"`
}

// DragDropRequest 放下请求，目标按身份（ID）定位
type DragDropRequest struct {
	SectionID string `json:"section_id" binding:"required"`
	FieldID   string `json:"field_id"`
}

// EditorService 编辑器会话服务接口
type EditorService interface {
	CreateSession(ctx context.Context, templateID *uint, createdBy string) (*SessionDTO, error)
	GetSession(ctx context.Context, sessionID string) (*SessionDTO, error)
	CloseSession(ctx context.Context, sessionID string) error

	SetMetadata(ctx context.Context, sessionID, title, category string) error
	AddSection(ctx context.Context, sessionID string, req AddSectionRequest) (string, error)
	UpdateSection(ctx context.Context, sessionID, sectionID string, req UpdateSectionRequest) error
	RemoveSection(ctx context.Context, sessionID, sectionID string) error
	ToggleSection(ctx context.Context, sessionID, sectionID string) (bool, error)

	AddField(ctx context.Context, sessionID, sectionID string, req AddFieldRequest) (string, error)
	UpdateField(ctx context.Context, sessionID, sectionID, fieldID string, req UpdateFieldRequest) error
	RemoveField(ctx context.Context, sessionID, sectionID, fieldID string) error

	BeginDrag(ctx context.Context, sessionID string, req DragBeginRequest) error
	Drop(ctx context.Context, sessionID string, req DragDropRequest) error
	EndDrag(ctx context.Context, sessionID string) error

	Preview(ctx context.Context, sessionID string) (*builder.Preview, error)
	SetPreviewValue(ctx context.Context, sessionID, fieldID, value string) (*PreviewStateDTO, error)
	Submit(ctx context.Context, sessionID, by string) (*TemplateDTO, error)
}

// PreviewStateDTO 填写一个值后的满足状态
type PreviewStateDTO struct {
	FieldSatisfied       bool `json:"field_satisfied"`
	AllRequiredSatisfied bool `json:"all_required_satisfied"`
}

// editorSession 会话及其最近一次构建的投影
type editorSession struct {
	session *builder.Session
	preview *builder.Preview
}

// editorService 实现。会话表由互斥锁保护；每个文档仍然是
// 单会话单写者模型，锁只解决 HTTP 层带来的并发访问。
type editorService struct {
	mutex        sync.Mutex
	sessions     map[string]*editorSession
	templateRepo repository.TemplateRepository
	bus          *eventbus.Bus
}

// NewEditorService 创建服务实例
func NewEditorService(templateRepo repository.TemplateRepository, bus *eventbus.Bus) EditorService {
	return &editorService{
		sessions:     make(map[string]*editorSession),
		templateRepo: templateRepo,
		bus:          bus,
	}
}

// CreateSession 创建编辑会话。templateID 为 nil 时从标准分区目录
// 创建新草稿；否则以存储的模板为种子深拷贝（编辑/复制流程）。
func (s *editorService) CreateSession(ctx context.Context, templateID *uint, createdBy string) (*SessionDTO, error) {
	var doc *builder.Document
	var err error

	if templateID == nil {
		doc, err = builder.NewFromCatalog(builder.StandardCatalog(), createdBy)
		if err != nil {
			return nil, fmt.Errorf("failed to seed from catalog: %w", err)
		}
	} else {
		stored, gerr := s.templateRepo.Get(*templateID)
		if gerr != nil {
			if errors.Is(gerr, repository.ErrNotFound) {
				return nil, ErrTemplateNotFound
			}
			return nil, fmt.Errorf("failed to get template: %w", gerr)
		}
		doc, err = builder.Duplicate(modelToSeed(stored), createdBy)
		if err != nil {
			return nil, fmt.Errorf("failed to duplicate template: %w", err)
		}
	}

	sess := builder.NewSession(doc)
	s.mutex.Lock()
	s.sessions[sess.ID] = &editorSession{session: sess}
	s.mutex.Unlock()

	klog.V(6).Infof("编辑会话已创建: sessionID=%s, createdBy=%s", sess.ID, createdBy)
	return toSessionDTO(sess), nil
}

// GetSession 获取会话状态
func (s *editorService) GetSession(ctx context.Context, sessionID string) (*SessionDTO, error) {
	es, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return toSessionDTO(es.session), nil
}

// CloseSession 丢弃会话，不做持久化
func (s *editorService) CloseSession(ctx context.Context, sessionID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

// SetMetadata 更新模板标题/类目，校验推迟到提交
func (s *editorService) SetMetadata(ctx context.Context, sessionID, title, category string) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	es.session.Doc.SetMetadata(title, category)
	return nil
}

// AddSection 新增分区，新分区默认展开
func (s *editorService) AddSection(ctx context.Context, sessionID string, req AddSectionRequest) (string, error) {
	es, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}
	var sectionID string
	if req.StandardKey != "" {
		sectionID, err = es.session.Doc.AddStandardSection(req.StandardKey, req.Position)
		if err != nil {
			return "", err
		}
	} else {
		sectionID = es.session.Doc.AddCustomSection(req.Title, req.Description, req.Position)
	}
	es.session.ToggleSection(sectionID)
	return sectionID, nil
}

// UpdateSection 更新分区标题/描述
func (s *editorService) UpdateSection(ctx context.Context, sessionID, sectionID string, req UpdateSectionRequest) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	return es.session.Doc.UpdateSectionMeta(sectionID, req.Title, req.Description)
}

// RemoveSection 删除自定义分区
func (s *editorService) RemoveSection(ctx context.Context, sessionID, sectionID string) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	return es.session.Doc.RemoveSection(sectionID)
}

// ToggleSection 切换分区展开状态，返回切换后的状态
func (s *editorService) ToggleSection(ctx context.Context, sessionID, sectionID string) (bool, error) {
	es, err := s.lookup(sessionID)
	if err != nil {
		return false, err
	}
	if _, serr := es.session.Doc.Section(sectionID); serr != nil {
		return false, serr
	}
	es.session.ToggleSection(sectionID)
	return es.session.IsExpanded(sectionID), nil
}

// AddField 新增字段
func (s *editorService) AddField(ctx context.Context, sessionID, sectionID string, req AddFieldRequest) (string, error) {
	es, err := s.lookup(sessionID)
	if err != nil {
		return "", err
	}
	return es.session.Doc.AddField(sectionID, builder.FieldSpec{
		Name:             req.Name,
		Type:             builder.FieldType(req.Type),
		Required:         req.Required,
		DocumentRequired: req.DocumentRequired,
		Options:          req.Options,
		Placeholder:      req.Placeholder,
	})
}

// UpdateField 字段局部更新
func (s *editorService) UpdateField(ctx context.Context, sessionID, sectionID, fieldID string, req UpdateFieldRequest) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	patch := builder.FieldPatch{
		Name:             req.Name,
		Required:         req.Required,
		DocumentRequired: req.DocumentRequired,
		Options:          req.Options,
		Placeholder:      req.Placeholder,
	}
	if req.Type != nil {
		t := builder.FieldType(*req.Type)
		patch.Type = &t
	}
	return es.session.Doc.UpdateField(sectionID, fieldID, patch)
}

// RemoveField 删除字段
func (s *editorService) RemoveField(ctx context.Context, sessionID, sectionID, fieldID string) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	return es.session.Doc.RemoveField(sectionID, fieldID)
}

// BeginDrag 开始拖拽手势
func (s *editorService) BeginDrag(ctx context.Context, sessionID string, req DragBeginRequest) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if req.Kind == "field" {
		es.session.BeginFieldDrag(req.SectionID, req.FieldID)
	} else {
		es.session.BeginSectionDrag(req.SectionID)
	}
	return nil
}

// Drop 结束拖拽并执行重排。重排引擎对失效 ID 静默忽略，
// 这里不向调用方返回结构性错误
func (s *editorService) Drop(ctx context.Context, sessionID string, req DragDropRequest) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	if _, dragged := es.session.Dragging(); dragged != nil {
		es.session.DropOnField(req.SectionID, req.FieldID)
	} else {
		es.session.DropOnSection(req.SectionID)
	}
	return nil
}

// EndDrag 放弃拖拽
func (s *editorService) EndDrag(ctx context.Context, sessionID string) error {
	es, err := s.lookup(sessionID)
	if err != nil {
		return err
	}
	es.session.EndDrag()
	return nil
}

// Preview 按需构建投影。投影与文档完全隔离，后续编辑不影响已构建投影
func (s *editorService) Preview(ctx context.Context, sessionID string) (*builder.Preview, error) {
	es, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	es.preview = builder.BuildPreview(es.session.Doc)
	return es.preview, nil
}

// SetPreviewValue 填写投影字段值并返回满足状态
func (s *editorService) SetPreviewValue(ctx context.Context, sessionID, fieldID, value string) (*PreviewStateDTO, error) {
	es, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	if es.preview == nil {
		es.preview = builder.BuildPreview(es.session.Doc)
	}
	es.preview.SetValue(fieldID, value)
	return &PreviewStateDTO{
		FieldSatisfied:       es.preview.FieldSatisfied(fieldID),
		AllRequiredSatisfied: es.preview.AllRequiredSatisfied(),
	}, nil
}

// Submit 提交会话。构建器校验元数据并重算分区 Order，
// 快照持久化成功后丢弃会话并发布事件
func (s *editorService) Submit(ctx context.Context, sessionID, by string) (*TemplateDTO, error) {
	es, err := s.lookup(sessionID)
	if err != nil {
		return nil, err
	}

	snap, err := es.session.Doc.Submit()
	if err != nil {
		return nil, err
	}

	t := snapshotToModel(snap, string(builder.StatusDraft))
	if err := s.templateRepo.Create(t); err != nil {
		return nil, fmt.Errorf("failed to persist template: %w", err)
	}

	s.mutex.Lock()
	delete(s.sessions, sessionID)
	s.mutex.Unlock()

	if s.bus != nil {
		if perr := s.bus.Publish(ctx, eventbus.TemplateEvent{
			Type:       eventbus.TemplateEventSubmitted,
			TemplateID: t.ID,
			Title:      t.Title,
			Category:   t.Category,
			By:         by,
		}); perr != nil {
			klog.V(6).Infof("模板提交事件发布失败: %v", perr)
		}
	}

	klog.V(6).Infof("模板已提交: templateID=%d, title=%s", t.ID, t.Title)
	return toTemplateDTO(t), nil
}

func (s *editorService) lookup(sessionID string) (*editorSession, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	es, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return es, nil
}

// toSessionDTO 转换为 DTO。文档取深拷贝，返回值序列化时
// 不与会话内的后续编辑共享内存
func toSessionDTO(sess *builder.Session) *SessionDTO {
	return &SessionDTO{
		SessionID:        sess.ID,
		Document:         sess.Doc.Clone(),
		ExpandedSections: sess.ExpandedSectionIDs(),
	}
}
