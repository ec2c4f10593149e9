package builder

// FieldType 字段类型
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeDropdown FieldType = "dropdown"
	FieldTypeYesNo    FieldType = "yesno"
	FieldTypeDate     FieldType = "date"
	FieldTypeFile     FieldType = "file"
)

// Valid 判断字段类型是否合法
func (t FieldType) Valid() bool {
	switch t {
	case FieldTypeText, FieldTypeNumber, FieldTypeDropdown,
		FieldTypeYesNo, FieldTypeDate, FieldTypeFile:
		return true
	}
	return false
}

// Field KYC 模板字段，最小编辑单元
type Field struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Type             FieldType `json:"type"`
	Required         bool      `json:"required"`
	DocumentRequired bool      `json:"document_required"`
	// Options 仅 dropdown 类型使用；类型切换后保留但忽略
	Options     []string `json:"options,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

// FieldSpec 新建字段参数，零值表示使用默认值（text，非必填）
type FieldSpec struct {
	Name             string
	Type             FieldType
	Required         bool
	DocumentRequired bool
	Options          []string
	Placeholder      string
}

// FieldPatch 字段局部更新，nil 表示不修改
type FieldPatch struct {
	Name             *string
	Type             *FieldType
	Required         *bool
	DocumentRequired *bool
	Options          *[]string
	Placeholder      *string
}

// clone 深拷贝字段；freshID 为 true 时生成新 ID
func (f Field) clone(freshID bool) Field {
	c := f
	if freshID {
		c.ID = newID()
	}
	c.Options = append([]string(nil), f.Options...)
	return c
}
