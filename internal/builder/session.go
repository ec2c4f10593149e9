package builder

// FieldRef 拖拽中的字段定位
type FieldRef struct {
	SectionID string `json:"section_id"`
	FieldID   string `json:"field_id"`
}

// Session 编辑器会话。持有正在编辑的文档，外加两类瞬态视图状态：
// 拖拽手柄（拖拽结束时无条件清空，不属于文档）和展开分区集合
// （按分区 ID 记录，不进入持久化形态）。
type Session struct {
	ID  string
	Doc *Document

	draggedSectionID string
	draggedField     *FieldRef
	expanded         map[string]bool
}

// NewSession 创建会话；默认仅第一个标准分区（通常为 Basic Information）展开
func NewSession(doc *Document) *Session {
	s := &Session{
		ID:       newID(),
		Doc:      doc,
		expanded: make(map[string]bool),
	}
	for _, sec := range doc.Sections {
		if sec.IsStandard {
			s.expanded[sec.ID] = true
			break
		}
	}
	return s
}

// BeginSectionDrag 记录被拖拽的分区
func (s *Session) BeginSectionDrag(sectionID string) {
	s.draggedSectionID = sectionID
	s.draggedField = nil
}

// BeginFieldDrag 记录被拖拽的字段
func (s *Session) BeginFieldDrag(sectionID, fieldID string) {
	s.draggedField = &FieldRef{SectionID: sectionID, FieldID: fieldID}
	s.draggedSectionID = ""
}

// DropOnSection 将拖拽中的分区放到目标分区位置；无论成败清空拖拽状态
func (s *Session) DropOnSection(targetSectionID string) {
	if s.draggedSectionID != "" {
		s.Doc.MoveSection(s.draggedSectionID, targetSectionID)
	}
	s.EndDrag()
}

// DropOnField 将拖拽中的字段放到目标字段位置（支持跨分区）；
// 无论成败清空拖拽状态
func (s *Session) DropOnField(targetSectionID, targetFieldID string) {
	if s.draggedField != nil {
		s.Doc.MoveField(s.draggedField.SectionID, s.draggedField.FieldID,
			targetSectionID, targetFieldID)
	}
	s.EndDrag()
}

// EndDrag 放弃拖拽，清空拖拽状态
func (s *Session) EndDrag() {
	s.draggedSectionID = ""
	s.draggedField = nil
}

// Dragging 返回当前拖拽状态（分区 ID 或字段定位，二者至多其一）
func (s *Session) Dragging() (string, *FieldRef) {
	return s.draggedSectionID, s.draggedField
}

// ToggleSection 切换分区展开/折叠
func (s *Session) ToggleSection(sectionID string) {
	if s.expanded[sectionID] {
		delete(s.expanded, sectionID)
	} else {
		s.expanded[sectionID] = true
	}
}

// IsExpanded 分区是否展开
func (s *Session) IsExpanded(sectionID string) bool {
	return s.expanded[sectionID]
}

// ExpandedSectionIDs 按文档当前顺序返回展开的分区 ID
func (s *Session) ExpandedSectionIDs() []string {
	ids := make([]string, 0, len(s.expanded))
	for _, sec := range s.Doc.Sections {
		if s.expanded[sec.ID] {
			ids = append(ids, sec.ID)
		}
	}
	return ids
}
