package service

import (
	"github.com/procurelink/backend/internal/builder"
	"github.com/procurelink/backend/internal/model"
)

// snapshotToModel 将提交快照转换为持久化模型
func snapshotToModel(snap *builder.Document, status string) *model.KycTemplate {
	t := &model.KycTemplate{
		Title:     snap.Title,
		Category:  snap.Category,
		Status:    status,
		CreatedBy: snap.CreatedBy,
		CreatedOn: snap.CreatedOn,
		Sections:  make([]model.KycSection, len(snap.Sections)),
	}
	for i, sec := range snap.Sections {
		ms := model.KycSection{
			SectionKey:  sec.ID,
			Title:       sec.Title,
			Description: sec.Description,
			IsStandard:  sec.IsStandard,
			SortOrder:   sec.Order,
			Fields:      make([]model.KycField, len(sec.Fields)),
		}
		for j, f := range sec.Fields {
			ms.Fields[j] = model.KycField{
				FieldKey:         f.ID,
				Name:             f.Name,
				Type:             string(f.Type),
				Required:         f.Required,
				DocumentRequired: f.DocumentRequired,
				Options:          append([]string(nil), f.Options...),
				Placeholder:      f.Placeholder,
				SortOrder:        j + 1,
			}
		}
		t.Sections[i] = ms
	}
	return t
}

// modelToSeed 将持久化模板还原为构建器文档，作为编辑/复制流程的种子。
// Duplicate 会为所有分区和字段重新生成 ID，这里沿用存储的 key 即可。
func modelToSeed(t *model.KycTemplate) *builder.Document {
	doc := &builder.Document{
		Title:     t.Title,
		Category:  t.Category,
		Status:    builder.TemplateStatus(t.Status),
		CreatedBy: t.CreatedBy,
		CreatedOn: t.CreatedOn,
		Sections:  make([]builder.Section, len(t.Sections)),
	}
	for i, sec := range t.Sections {
		bs := builder.Section{
			ID:          sec.SectionKey,
			Title:       sec.Title,
			Description: sec.Description,
			IsStandard:  sec.IsStandard,
			Order:       sec.SortOrder,
			Fields:      make([]builder.Field, len(sec.Fields)),
		}
		for j, f := range sec.Fields {
			bs.Fields[j] = builder.Field{
				ID:               f.FieldKey,
				Name:             f.Name,
				Type:             builder.FieldType(f.Type),
				Required:         f.Required,
				DocumentRequired: f.DocumentRequired,
				Options:          append([]string(nil), f.Options...),
				Placeholder:      f.Placeholder,
			}
		}
		doc.Sections[i] = bs
	}
	return doc
}
