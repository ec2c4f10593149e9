package builder

import "errors"

var (
	// ErrInvalidSeed 种子数据为空或包含非法字段类型
	ErrInvalidSeed = errors.New("invalid template seed")
	// ErrUnknownStandardSection 标准分区目录中不存在该 key
	ErrUnknownStandardSection = errors.New("unknown standard section")
	// ErrSectionNotFound 分区不存在
	ErrSectionNotFound = errors.New("section not found")
	// ErrFieldNotFound 字段不存在
	ErrFieldNotFound = errors.New("field not found")
	// ErrStandardSectionProtected 标准分区不允许删除或修改标题/描述
	ErrStandardSectionProtected = errors.New("standard section is protected")
	// ErrInvalidFieldType 非法字段类型
	ErrInvalidFieldType = errors.New("invalid field type")
	// ErrMissingTitle 提交时模板标题为空
	ErrMissingTitle = errors.New("template title is required")
	// ErrMissingCategory 提交时模板类目为空
	ErrMissingCategory = errors.New("template category is required")
)
