package subscriber

import (
	"context"

	"k8s.io/klog/v2"

	"github.com/procurelink/backend/internal/eventbus"
)

// TemplateEventSubscriber 模板生命周期事件的审计日志订阅者
type TemplateEventSubscriber struct{}

func NewTemplateEventSubscriber() *TemplateEventSubscriber {
	return &TemplateEventSubscriber{}
}

func (s *TemplateEventSubscriber) Register(bus *eventbus.Bus) {
	if bus == nil {
		return
	}
	bus.Subscribe(eventbus.TemplateEventSubmitted, s.handleSubmitted)
	bus.Subscribe(eventbus.TemplateEventPublished, s.handleLifecycle)
	bus.Subscribe(eventbus.TemplateEventArchived, s.handleLifecycle)
	bus.Subscribe(eventbus.TemplateEventDeleted, s.handleLifecycle)
}

// handleSubmitted 处理模板提交事件
func (s *TemplateEventSubscriber) handleSubmitted(ctx context.Context, event eventbus.TemplateEvent) error {
	klog.V(6).Infof("模板提交事件处理成功: templateID=%d, title=%s, category=%s, by=%s",
		event.TemplateID, event.Title, event.Category, event.By)
	return nil
}

// handleLifecycle 处理发布/归档/删除事件
func (s *TemplateEventSubscriber) handleLifecycle(ctx context.Context, event eventbus.TemplateEvent) error {
	klog.V(6).Infof("模板生命周期事件处理成功: type=%s, templateID=%d, title=%s",
		event.Type, event.TemplateID, event.Title)
	return nil
}
