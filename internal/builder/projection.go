package builder

import "sort"

// Preview 可填写的只读投影。构建后与源文档完全隔离：
// 继续编辑文档不会改变已生成的投影，填写 FormData 也不会写回文档。
type Preview struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Category string            `json:"category"`
	Sections []Section         `json:"sections"`
	FormData map[string]string `json:"form_data"`
}

// BuildPreview 生成当前文档状态的投影。分区按 Order 升序稳定排序
// （Order 相同时保持原列表顺序），FormData 初始为空。
func BuildPreview(doc *Document) *Preview {
	p := &Preview{
		ID:       PreviewDocumentID,
		Title:    doc.Title,
		Category: doc.Category,
		Sections: make([]Section, len(doc.Sections)),
		FormData: make(map[string]string),
	}
	for i, sec := range doc.Sections {
		p.Sections[i] = sec.clone(false)
	}
	sort.SliceStable(p.Sections, func(i, j int) bool {
		return p.Sections[i].Order < p.Sections[j].Order
	})
	return p
}

// SetValue 写入字段填写值。不做数值解析/范围校验，按输入原样保存
func (p *Preview) SetValue(fieldID, value string) {
	p.FormData[fieldID] = value
}

// field 在投影中按 ID 查找字段
func (p *Preview) field(fieldID string) *Field {
	for i := range p.Sections {
		if idx := p.Sections[i].fieldIndex(fieldID); idx >= 0 {
			return &p.Sections[i].Fields[idx]
		}
	}
	return nil
}

// FieldSatisfied 字段已填或非必填时为 true；未知字段为 false
func (p *Preview) FieldSatisfied(fieldID string) bool {
	f := p.field(fieldID)
	if f == nil {
		return false
	}
	return !f.Required || p.FormData[fieldID] != ""
}

// AllRequiredSatisfied 所有必填字段均已填写
func (p *Preview) AllRequiredSatisfied() bool {
	for _, sec := range p.Sections {
		for _, f := range sec.Fields {
			if f.Required && p.FormData[f.ID] == "" {
				return false
			}
		}
	}
	return true
}
