package builder

import "time"

// TemplateStatus 模板状态
type TemplateStatus string

const (
	StatusDraft    TemplateStatus = "draft"
	StatusActive   TemplateStatus = "active"
	StatusArchived TemplateStatus = "archived"
)

// PreviewDocumentID 预览实例保留 ID，不会被持久化
const PreviewDocumentID = "preview"

// Document KYC 模板文档，分区的有序容器（聚合根）
type Document struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category string         `json:"category"`
	Sections []Section      `json:"sections"`
	Status   TemplateStatus `json:"status"`
	// CreatedBy/CreatedOn 创建时写入，之后不再变更
	CreatedBy string    `json:"created_by"`
	CreatedOn time.Time `json:"created_on"`
}

// NewFromCatalog 由标准分区目录创建新模板，所有分区和字段生成全新 ID。
// 目录为空或字段类型非法时返回 ErrInvalidSeed。
func NewFromCatalog(catalog []CatalogEntry, createdBy string) (*Document, error) {
	if len(catalog) == 0 {
		return nil, ErrInvalidSeed
	}
	doc := &Document{
		ID:        newID(),
		Status:    StatusDraft,
		CreatedBy: createdBy,
		CreatedOn: time.Now(),
		Sections:  make([]Section, 0, len(catalog)),
	}
	for _, e := range catalog {
		for _, f := range e.Fields {
			if !f.Type.Valid() {
				return nil, ErrInvalidSeed
			}
		}
		doc.Sections = append(doc.Sections, e.toSection())
	}
	return doc, nil
}

// Duplicate 以既有模板为种子创建新草稿，深拷贝全部结构并生成全新 ID，
// 绝不与种子共享任何 ID（编辑/复制流程共用）。
func Duplicate(seed *Document, createdBy string) (*Document, error) {
	if seed == nil || len(seed.Sections) == 0 {
		return nil, ErrInvalidSeed
	}
	for _, sec := range seed.Sections {
		for _, f := range sec.Fields {
			if !f.Type.Valid() {
				return nil, ErrInvalidSeed
			}
		}
	}
	doc := &Document{
		ID:        newID(),
		Title:     seed.Title,
		Category:  seed.Category,
		Status:    StatusDraft,
		CreatedBy: createdBy,
		CreatedOn: time.Now(),
		Sections:  make([]Section, len(seed.Sections)),
	}
	for i, sec := range seed.Sections {
		doc.Sections[i] = sec.clone(true)
	}
	return doc, nil
}

// SetMetadata 更新标题/类目，空串表示不修改；校验推迟到 Submit
func (d *Document) SetMetadata(title, category string) {
	if title != "" {
		d.Title = title
	}
	if category != "" {
		d.Category = category
	}
}

// Submit 校验元数据并按当前位置重算分区 Order（1..N），
// 返回与文档完全独立的快照。校验失败时文档不发生任何变更。
func (d *Document) Submit() (*Document, error) {
	if d.Title == "" {
		return nil, ErrMissingTitle
	}
	if d.Category == "" {
		return nil, ErrMissingCategory
	}
	for i := range d.Sections {
		d.Sections[i].Order = i + 1
	}
	snap := &Document{
		ID:        d.ID,
		Title:     d.Title,
		Category:  d.Category,
		Status:    d.Status,
		CreatedBy: d.CreatedBy,
		CreatedOn: d.CreatedOn,
		Sections:  make([]Section, len(d.Sections)),
	}
	for i, sec := range d.Sections {
		snap.Sections[i] = sec.clone(false)
	}
	return snap, nil
}

// sectionIndex 按 ID 查找分区下标，找不到返回 -1
func (d *Document) sectionIndex(sectionID string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}

// Section 按 ID 获取分区
func (d *Document) Section(sectionID string) (*Section, error) {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return nil, ErrSectionNotFound
	}
	return &d.Sections[idx], nil
}

// AddStandardSection 从标准分区目录插入分区，at 超界时收敛到 [0, len]。
// key 不在目录中时返回 ErrUnknownStandardSection。
func (d *Document) AddStandardSection(key string, at int) (string, error) {
	entry, ok := catalogEntry(key)
	if !ok {
		return "", ErrUnknownStandardSection
	}
	sec := entry.toSection()
	d.insertSection(sec, at)
	return sec.ID, nil
}

// AddCustomSection 插入空字段列表的自定义分区
func (d *Document) AddCustomSection(title, description string, at int) string {
	sec := Section{
		ID:          newID(),
		Title:       title,
		Description: description,
		IsStandard:  false,
		Fields:      []Field{},
	}
	d.insertSection(sec, at)
	return sec.ID
}

func (d *Document) insertSection(sec Section, at int) {
	if at < 0 || at > len(d.Sections) {
		at = len(d.Sections)
	}
	d.Sections = append(d.Sections, Section{})
	copy(d.Sections[at+1:], d.Sections[at:])
	d.Sections[at] = sec
}

// RemoveSection 删除自定义分区；标准分区返回 ErrStandardSectionProtected
func (d *Document) RemoveSection(sectionID string) error {
	idx := d.sectionIndex(sectionID)
	if idx < 0 {
		return ErrSectionNotFound
	}
	if d.Sections[idx].IsStandard {
		return ErrStandardSectionProtected
	}
	d.Sections = append(d.Sections[:idx], d.Sections[idx+1:]...)
	return nil
}

// UpdateSectionMeta 更新分区标题/描述，空串表示不修改。
// 标准分区的标题/描述固定，返回 ErrStandardSectionProtected。
func (d *Document) UpdateSectionMeta(sectionID, title, description string) error {
	sec, err := d.Section(sectionID)
	if err != nil {
		return err
	}
	if sec.IsStandard {
		return ErrStandardSectionProtected
	}
	if title != "" {
		sec.Title = title
	}
	if description != "" {
		sec.Description = description
	}
	return nil
}

// AddField 向分区追加字段，生成新 ID；spec 零值时默认 text/非必填
func (d *Document) AddField(sectionID string, spec FieldSpec) (string, error) {
	sec, err := d.Section(sectionID)
	if err != nil {
		return "", err
	}
	if spec.Type == "" {
		spec.Type = FieldTypeText
	}
	if !spec.Type.Valid() {
		return "", ErrInvalidFieldType
	}
	f := Field{
		ID:               newID(),
		Name:             spec.Name,
		Type:             spec.Type,
		Required:         spec.Required,
		DocumentRequired: spec.DocumentRequired,
		Options:          append([]string(nil), spec.Options...),
		Placeholder:      spec.Placeholder,
	}
	sec.Fields = append(sec.Fields, f)
	return f.ID, nil
}

// UpdateField 字段局部更新。类型从 dropdown 切走时不清空 Options，
// 仅在渲染时忽略（沿用既有产品行为，见 DESIGN.md）。
func (d *Document) UpdateField(sectionID, fieldID string, patch FieldPatch) error {
	sec, err := d.Section(sectionID)
	if err != nil {
		return err
	}
	idx := sec.fieldIndex(fieldID)
	if idx < 0 {
		return ErrFieldNotFound
	}
	if patch.Type != nil && !patch.Type.Valid() {
		return ErrInvalidFieldType
	}
	f := &sec.Fields[idx]
	if patch.Name != nil {
		f.Name = *patch.Name
	}
	if patch.Type != nil {
		f.Type = *patch.Type
	}
	if patch.Required != nil {
		f.Required = *patch.Required
	}
	if patch.DocumentRequired != nil {
		f.DocumentRequired = *patch.DocumentRequired
	}
	if patch.Options != nil {
		f.Options = append([]string(nil), (*patch.Options)...)
	}
	if patch.Placeholder != nil {
		f.Placeholder = *patch.Placeholder
	}
	return nil
}

// RemoveField 删除字段
func (d *Document) RemoveField(sectionID, fieldID string) error {
	sec, err := d.Section(sectionID)
	if err != nil {
		return err
	}
	idx := sec.fieldIndex(fieldID)
	if idx < 0 {
		return ErrFieldNotFound
	}
	sec.Fields = append(sec.Fields[:idx], sec.Fields[idx+1:]...)
	return nil
}

// Clone 深拷贝整个文档，保留全部 ID（快照/预览使用）
func (d *Document) Clone() *Document {
	c := *d
	c.Sections = make([]Section, len(d.Sections))
	for i, sec := range d.Sections {
		c.Sections[i] = sec.clone(false)
	}
	return &c
}
