package statemachine

import (
	"errors"
	"testing"
)

func TestCanTransition(t *testing.T) {
	sm := NewTemplateStateMachine()

	cases := []struct {
		from, to TemplateStatus
		want     bool
	}{
		{TemplateStatusDraft, TemplateStatusActive, true},
		{TemplateStatusDraft, TemplateStatusArchived, true},
		{TemplateStatusActive, TemplateStatusArchived, true},
		{TemplateStatusActive, TemplateStatusDraft, false},
		{TemplateStatusArchived, TemplateStatusDraft, false},
		{TemplateStatusArchived, TemplateStatusActive, false},
		{TemplateStatusDraft, TemplateStatusDraft, false},
	}
	for _, c := range cases {
		if got := sm.CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestValidateTransitionError(t *testing.T) {
	sm := NewTemplateStateMachine()

	err := sm.ValidateTransition(TemplateStatusArchived, TemplateStatusActive)
	if err == nil {
		t.Fatalf("expected error for archived -> active")
	}

	var transitionErr *InvalidStateTransitionError
	if !errors.As(err, &transitionErr) {
		t.Fatalf("expected InvalidStateTransitionError, got %T", err)
	}
	if transitionErr.From != "archived" || transitionErr.To != "active" {
		t.Fatalf("unexpected error payload: %+v", transitionErr)
	}
}

func TestIsTerminal(t *testing.T) {
	if !IsTerminal(TemplateStatusArchived) {
		t.Fatalf("archived must be terminal")
	}
	if IsTerminal(TemplateStatusDraft) || IsTerminal(TemplateStatusActive) {
		t.Fatalf("draft and active are not terminal")
	}
}
