package statemachine

import (
	"fmt"

	"k8s.io/klog/v2"
)

// TemplateStatus 定义模板的所有可能状态
type TemplateStatus string

const (
	TemplateStatusDraft    TemplateStatus = "draft"    // 草稿（初始态）
	TemplateStatusActive   TemplateStatus = "active"   // 已发布，可分发给供应商填写
	TemplateStatusArchived TemplateStatus = "archived" // 已归档（终止态）
)

// TemplateTransition 定义模板状态迁移
type TemplateTransition struct {
	From TemplateStatus
	To   TemplateStatus
}

// TemplateStateMachine 模板状态机
type TemplateStateMachine struct {
	// 定义所有合法的状态迁移
	allowedTransitions map[TemplateTransition]bool
}

// NewTemplateStateMachine 创建新的模板状态机
func NewTemplateStateMachine() *TemplateStateMachine {
	sm := &TemplateStateMachine{
		allowedTransitions: make(map[TemplateTransition]bool),
	}

	// draft -> active（发布）
	// draft/active -> archived（归档）
	// archived 为终止态，不允许再迁移
	transitions := []TemplateTransition{
		{TemplateStatusDraft, TemplateStatusActive},
		{TemplateStatusDraft, TemplateStatusArchived},
		{TemplateStatusActive, TemplateStatusArchived},
	}

	for _, t := range transitions {
		sm.allowedTransitions[t] = true
	}

	return sm
}

// CanTransition 检查状态迁移是否合法
func (sm *TemplateStateMachine) CanTransition(from, to TemplateStatus) bool {
	if from == to {
		return false // 不允许状态不变
	}
	return sm.allowedTransitions[TemplateTransition{From: from, To: to}]
}

// ValidateTransition 验证状态迁移并返回错误
func (sm *TemplateStateMachine) ValidateTransition(from, to TemplateStatus) error {
	if !sm.CanTransition(from, to) {
		return &InvalidStateTransitionError{
			From: string(from),
			To:   string(to),
		}
	}
	return nil
}

// Transition 执行状态迁移（带日志）
func (sm *TemplateStateMachine) Transition(from, to TemplateStatus, templateID uint) error {
	if err := sm.ValidateTransition(from, to); err != nil {
		klog.V(6).Infof("模板状态迁移被拒绝: templateID=%d, %s -> %s, error=%v",
			templateID, from, to, err)
		return err
	}

	klog.V(6).Infof("模板状态迁移成功: templateID=%d, %s -> %s", templateID, from, to)
	return nil
}

// InvalidStateTransitionError 无效的状态迁移错误
type InvalidStateTransitionError struct {
	From string
	To   string
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid template state transition: %s -> %s", e.From, e.To)
}

// IsTerminal 判断状态是否为终止态（不能再迁移）
func IsTerminal(status TemplateStatus) bool {
	return status == TemplateStatusArchived
}
