package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/procurelink/backend/internal/builder"
	"github.com/procurelink/backend/internal/eventbus"
	"github.com/procurelink/backend/internal/model"
	"github.com/procurelink/backend/internal/repository"
)

type mockTemplateRepo struct {
	CreateFunc func(template *model.KycTemplate) error
	ListFunc   func() ([]model.KycTemplate, error)
	GetFunc    func(id uint) (*model.KycTemplate, error)
	SaveFunc   func(template *model.KycTemplate) error
	DeleteFunc func(id uint) error
}

func (m *mockTemplateRepo) Create(template *model.KycTemplate) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(template)
	}
	return nil
}

func (m *mockTemplateRepo) List() ([]model.KycTemplate, error) {
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *mockTemplateRepo) Get(id uint) (*model.KycTemplate, error) {
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTemplateRepo) Save(template *model.KycTemplate) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(template)
	}
	return nil
}

func (m *mockTemplateRepo) Delete(id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	return nil
}

func TestEditorServiceCreateSessionFromCatalog(t *testing.T) {
	svc := NewEditorService(&mockTemplateRepo{}, nil)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, nil, "buyer-1")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if len(session.Document.Sections) != 6 {
		t.Fatalf("expected 6 standard sections, got %d", len(session.Document.Sections))
	}
	if len(session.ExpandedSections) != 1 || session.ExpandedSections[0] != session.Document.Sections[0].ID {
		t.Fatalf("expected only the first section expanded, got %v", session.ExpandedSections)
	}

	got, err := svc.GetSession(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.Document.ID != session.Document.ID {
		t.Fatalf("expected the same document")
	}
}

func TestEditorServiceCreateSessionFromStoredTemplate(t *testing.T) {
	stored := &model.KycTemplate{
		ID:        7,
		Title:     "Supplier KYC",
		Category:  "Manufacturing",
		Status:    "active",
		CreatedOn: time.Now(),
		Sections: []model.KycSection{
			{
				SectionKey: "sec-1",
				Title:      "Basic Information",
				IsStandard: true,
				SortOrder:  1,
				Fields: []model.KycField{
					{FieldKey: "f-1", Name: "Company Name", Type: "text", Required: true, SortOrder: 1},
				},
			},
		},
	}
	svc := NewEditorService(&mockTemplateRepo{
		GetFunc: func(id uint) (*model.KycTemplate, error) {
			if id != 7 {
				return nil, repository.ErrNotFound
			}
			return stored, nil
		},
	}, nil)

	templateID := uint(7)
	session, err := svc.CreateSession(context.Background(), &templateID, "buyer-2")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if session.Document.Title != "Supplier KYC" {
		t.Fatalf("expected seeded title, got %s", session.Document.Title)
	}
	if session.Document.Status != builder.StatusDraft {
		t.Fatalf("duplicated document must start as draft, got %s", session.Document.Status)
	}
	// fresh ids, never aliased from storage keys
	if session.Document.Sections[0].ID == "sec-1" {
		t.Fatalf("session document must not reuse stored section keys")
	}
}

func TestEditorServiceCreateSessionTemplateNotFound(t *testing.T) {
	svc := NewEditorService(&mockTemplateRepo{}, nil)

	templateID := uint(99)
	if _, err := svc.CreateSession(context.Background(), &templateID, ""); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestEditorServiceSessionNotFound(t *testing.T) {
	svc := NewEditorService(&mockTemplateRepo{}, nil)
	ctx := context.Background()

	if _, err := svc.GetSession(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := svc.SetMetadata(ctx, "missing", "t", "c"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestEditorServiceSessionDTOIsolated(t *testing.T) {
	svc := NewEditorService(&mockTemplateRepo{}, nil)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, nil, "buyer-1")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	// callers marshal the DTO after the service releases its lock;
	// mutating it must not reach the live session document
	session.Document.Title = "mutated outside"
	session.Document.Sections[0].Title = "mutated section"

	got, err := svc.GetSession(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got.Document.Title == "mutated outside" {
		t.Fatalf("session DTO must not alias the live document")
	}
	if got.Document.Sections[0].Title == "mutated section" {
		t.Fatalf("session DTO must not alias the live sections")
	}
}

func TestEditorServiceSubmitPersistsAndDropsSession(t *testing.T) {
	var captured *model.KycTemplate
	repo := &mockTemplateRepo{
		CreateFunc: func(template *model.KycTemplate) error {
			template.ID = 11
			captured = template
			return nil
		},
	}
	bus := eventbus.NewBus()
	var event *eventbus.TemplateEvent
	bus.Subscribe(eventbus.TemplateEventSubmitted, func(ctx context.Context, e eventbus.TemplateEvent) error {
		event = &e
		return nil
	})

	svc := NewEditorService(repo, bus)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, nil, "buyer-1")
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if err := svc.SetMetadata(ctx, session.SessionID, "Supplier KYC", "Manufacturing"); err != nil {
		t.Fatalf("SetMetadata() error = %v", err)
	}

	dto, err := svc.Submit(ctx, session.SessionID, "buyer-1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if dto.ID != 11 {
		t.Fatalf("expected persisted id 11, got %d", dto.ID)
	}
	if captured == nil || len(captured.Sections) != 6 {
		t.Fatalf("expected 6 persisted sections")
	}
	for i, sec := range captured.Sections {
		if sec.SortOrder != i+1 {
			t.Fatalf("persisted sort order must be contiguous, section %d has %d", i, sec.SortOrder)
		}
	}
	if event == nil || event.TemplateID != 11 {
		t.Fatalf("expected submitted event for template 11")
	}

	// session is gone after a successful submit
	if _, err := svc.GetSession(ctx, session.SessionID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session to be dropped, got %v", err)
	}
}

func TestEditorServiceSubmitValidationKeepsSession(t *testing.T) {
	svc := NewEditorService(&mockTemplateRepo{}, nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, nil, "buyer-1")

	if _, err := svc.Submit(ctx, session.SessionID, "buyer-1"); !errors.Is(err, builder.ErrMissingTitle) {
		t.Fatalf("expected ErrMissingTitle, got %v", err)
	}
	// validation failure keeps the session editable
	if _, err := svc.GetSession(ctx, session.SessionID); err != nil {
		t.Fatalf("session must survive a failed submit, got %v", err)
	}
}

func TestEditorServicePreviewFlow(t *testing.T) {
	svc := NewEditorService(&mockTemplateRepo{}, nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, nil, "buyer-1")
	preview, err := svc.Preview(ctx, session.SessionID)
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}

	var requiredID string
	for _, sec := range preview.Sections {
		for _, f := range sec.Fields {
			if f.Required {
				requiredID = f.ID
				break
			}
		}
		if requiredID != "" {
			break
		}
	}

	state, err := svc.SetPreviewValue(ctx, session.SessionID, requiredID, "ACME Ltd")
	if err != nil {
		t.Fatalf("SetPreviewValue() error = %v", err)
	}
	if !state.FieldSatisfied {
		t.Fatalf("filled required field should be satisfied")
	}
	if state.AllRequiredSatisfied {
		t.Fatalf("other required fields are still empty")
	}
}

func TestEditorServiceDragFlow(t *testing.T) {
	svc := NewEditorService(&mockTemplateRepo{}, nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx, nil, "buyer-1")
	first := session.Document.Sections[0].ID
	third := session.Document.Sections[2].ID

	if err := svc.BeginDrag(ctx, session.SessionID, DragBeginRequest{Kind: "section", SectionID: first}); err != nil {
		t.Fatalf("BeginDrag() error = %v", err)
	}
	if err := svc.Drop(ctx, session.SessionID, DragDropRequest{SectionID: third}); err != nil {
		t.Fatalf("Drop() error = %v", err)
	}

	got, _ := svc.GetSession(ctx, session.SessionID)
	if got.Document.Sections[2].ID != first {
		t.Fatalf("expected dragged section at index 2")
	}
}
