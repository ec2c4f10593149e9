package builder

// CatalogField 标准分区目录中的字段种子
type CatalogField struct {
	Name             string    `json:"name"`
	Type             FieldType `json:"type"`
	Required         bool      `json:"required"`
	DocumentRequired bool      `json:"document_required"`
	Options          []string  `json:"options,omitempty"`
	Placeholder      string    `json:"placeholder,omitempty"`
}

// CatalogEntry 标准分区目录条目，进程启动时作为只读配置提供
type CatalogEntry struct {
	Key         string         `json:"key"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Fields      []CatalogField `json:"fields"`
}

// 标准分区 key
const (
	SectionKeyBasicInformation = "basic_information"
	SectionKeyDocuments        = "documents_certificates"
	SectionKeyKeyPersonnel     = "key_personnel"
	SectionKeyCompliance       = "compliance"
	SectionKeyNotes            = "notes"
	SectionKeyAttachments      = "attachments"
)

// StandardCatalog 返回内置的标准分区目录（有序）
func StandardCatalog() []CatalogEntry {
	return []CatalogEntry{
		{
			Key:         SectionKeyBasicInformation,
			Title:       "Basic Information",
			Description: "Core identity and registration details of the supplier",
			Fields: []CatalogField{
				{Name: "Company Name", Type: FieldTypeText, Required: true, Placeholder: "Registered legal name"},
				{Name: "Registration Number", Type: FieldTypeText, Required: true},
				{Name: "Country of Incorporation", Type: FieldTypeDropdown, Required: true, Options: []string{"United States", "United Kingdom", "Germany", "Singapore", "China", "India", "Other"}},
				{Name: "Date of Incorporation", Type: FieldTypeDate},
				{Name: "Number of Employees", Type: FieldTypeNumber},
			},
		},
		{
			Key:         SectionKeyDocuments,
			Title:       "Documents & Certificates",
			Description: "Registration, tax and quality certificates",
			Fields: []CatalogField{
				{Name: "Business Registration Certificate", Type: FieldTypeFile, Required: true, DocumentRequired: true},
				{Name: "Tax Registration Certificate", Type: FieldTypeFile, Required: true, DocumentRequired: true},
				{Name: "ISO 9001 Certified", Type: FieldTypeYesNo, DocumentRequired: true},
			},
		},
		{
			Key:         SectionKeyKeyPersonnel,
			Title:       "Key Personnel",
			Description: "Primary contacts and beneficial owners",
			Fields: []CatalogField{
				{Name: "Primary Contact Name", Type: FieldTypeText, Required: true},
				{Name: "Primary Contact Email", Type: FieldTypeText, Required: true, Placeholder: "name@company.com"},
				{Name: "Beneficial Owner", Type: FieldTypeText},
			},
		},
		{
			Key:         SectionKeyCompliance,
			Title:       "Compliance",
			Description: "Sanctions, anti-bribery and regulatory declarations",
			Fields: []CatalogField{
				{Name: "Subject to Sanctions", Type: FieldTypeYesNo, Required: true},
				{Name: "Anti-Bribery Policy in Place", Type: FieldTypeYesNo, Required: true, DocumentRequired: true},
				{Name: "Regulatory Licenses", Type: FieldTypeText, Placeholder: "List applicable licenses"},
			},
		},
		{
			Key:         SectionKeyNotes,
			Title:       "Notes",
			Description: "Free-form notes from the reviewing buyer",
			Fields: []CatalogField{
				{Name: "Internal Notes", Type: FieldTypeText, Placeholder: "Visible to your team only"},
			},
		},
		{
			Key:         SectionKeyAttachments,
			Title:       "Attachments",
			Description: "Any additional supporting documents",
			Fields: []CatalogField{
				{Name: "Additional Attachment", Type: FieldTypeFile, DocumentRequired: true},
			},
		},
	}
}

// catalogEntry 按 key 查找目录条目
func catalogEntry(key string) (CatalogEntry, bool) {
	for _, e := range StandardCatalog() {
		if e.Key == key {
			return e, true
		}
	}
	return CatalogEntry{}, false
}

// toSection 由目录条目生成带新 ID 的标准分区
func (e CatalogEntry) toSection() Section {
	sec := Section{
		ID:          newID(),
		Title:       e.Title,
		Description: e.Description,
		IsStandard:  true,
		Fields:      make([]Field, len(e.Fields)),
	}
	for i, f := range e.Fields {
		sec.Fields[i] = Field{
			ID:               newID(),
			Name:             f.Name,
			Type:             f.Type,
			Required:         f.Required,
			DocumentRequired: f.DocumentRequired,
			Options:          append([]string(nil), f.Options...),
			Placeholder:      f.Placeholder,
		}
	}
	return sec
}
