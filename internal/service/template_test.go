package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/procurelink/backend/internal/eventbus"
	"github.com/procurelink/backend/internal/model"
	"github.com/procurelink/backend/internal/repository"
	"github.com/procurelink/backend/internal/service/statemachine"
)

func storedTemplate(status string) *model.KycTemplate {
	return &model.KycTemplate{
		ID:        3,
		Title:     "Supplier KYC",
		Category:  "Manufacturing",
		Status:    status,
		CreatedOn: time.Now(),
	}
}

func TestTemplateServicePublish(t *testing.T) {
	template := storedTemplate("draft")
	var saved *model.KycTemplate
	repo := &mockTemplateRepo{
		GetFunc: func(id uint) (*model.KycTemplate, error) {
			return template, nil
		},
		SaveFunc: func(tmpl *model.KycTemplate) error {
			saved = tmpl
			return nil
		},
	}
	bus := eventbus.NewBus()
	var published bool
	bus.Subscribe(eventbus.TemplateEventPublished, func(ctx context.Context, e eventbus.TemplateEvent) error {
		published = true
		return nil
	})

	svc := NewTemplateService(repo, bus)
	dto, err := svc.Publish(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "active", dto.Status)
	require.NotNil(t, saved)
	assert.Equal(t, "active", saved.Status)
	assert.True(t, published)
}

func TestTemplateServicePublishArchivedRejected(t *testing.T) {
	repo := &mockTemplateRepo{
		GetFunc: func(id uint) (*model.KycTemplate, error) {
			return storedTemplate("archived"), nil
		},
	}

	svc := NewTemplateService(repo, nil)
	_, err := svc.Publish(context.Background(), 3)
	require.Error(t, err)

	var transitionErr *statemachine.InvalidStateTransitionError
	assert.ErrorAs(t, err, &transitionErr)
}

func TestTemplateServiceArchiveFromDraftAndActive(t *testing.T) {
	for _, from := range []string{"draft", "active"} {
		template := storedTemplate(from)
		repo := &mockTemplateRepo{
			GetFunc: func(id uint) (*model.KycTemplate, error) {
				return template, nil
			},
		}
		svc := NewTemplateService(repo, nil)

		dto, err := svc.Archive(context.Background(), 3)
		require.NoError(t, err, "archive from %s", from)
		assert.Equal(t, "archived", dto.Status)
	}
}

func TestTemplateServiceDeleteActiveRejected(t *testing.T) {
	deleted := false
	repo := &mockTemplateRepo{
		GetFunc: func(id uint) (*model.KycTemplate, error) {
			return storedTemplate("active"), nil
		},
		DeleteFunc: func(id uint) error {
			deleted = true
			return nil
		},
	}

	svc := NewTemplateService(repo, nil)
	err := svc.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, ErrTemplateActive)
	assert.False(t, deleted)
}

func TestTemplateServiceDeleteDraft(t *testing.T) {
	deleted := false
	repo := &mockTemplateRepo{
		GetFunc: func(id uint) (*model.KycTemplate, error) {
			return storedTemplate("draft"), nil
		},
		DeleteFunc: func(id uint) error {
			deleted = true
			return nil
		},
	}

	svc := NewTemplateService(repo, nil)
	require.NoError(t, svc.Delete(context.Background(), 3))
	assert.True(t, deleted)
}

func TestTemplateServiceGetNotFound(t *testing.T) {
	repo := &mockTemplateRepo{
		GetFunc: func(id uint) (*model.KycTemplate, error) {
			return nil, repository.ErrNotFound
		},
	}

	svc := NewTemplateService(repo, nil)
	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrTemplateNotFound)
}
