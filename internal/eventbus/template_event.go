package eventbus

type TemplateEventType string

const (
	TemplateEventSubmitted TemplateEventType = "TemplateSubmitted"
	TemplateEventPublished TemplateEventType = "TemplatePublished"
	TemplateEventArchived  TemplateEventType = "TemplateArchived"
	TemplateEventDeleted   TemplateEventType = "TemplateDeleted"
)

type TemplateEvent struct {
	Type       TemplateEventType
	TemplateID uint
	Title      string
	Category   string
	By         string
}
