package builder

import "github.com/google/uuid"

// newID 生成分区/字段/会话使用的唯一标识
func newID() string {
	return uuid.NewString()
}

// Section 模板分区，字段的有序容器
type Section struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// IsStandard 创建时确定；标准分区不允许删除
	IsStandard bool    `json:"is_standard"`
	Fields     []Field `json:"fields"`
	// Order 提交时按当前位置重算为 1..N
	Order int `json:"order"`
}

// fieldIndex 按 ID 查找字段下标，找不到返回 -1
func (s *Section) fieldIndex(fieldID string) int {
	for i := range s.Fields {
		if s.Fields[i].ID == fieldID {
			return i
		}
	}
	return -1
}

// clone 深拷贝分区；freshIDs 为 true 时为分区和所有字段生成新 ID
func (s Section) clone(freshIDs bool) Section {
	c := s
	if freshIDs {
		c.ID = newID()
	}
	c.Fields = make([]Field, len(s.Fields))
	for i, f := range s.Fields {
		c.Fields[i] = f.clone(freshIDs)
	}
	return c
}
