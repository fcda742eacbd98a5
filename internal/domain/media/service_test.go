package media

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/surgward/surgward/internal/platform/apperr"
	"github.com/surgward/surgward/internal/platform/auth"
)

type mockRepo struct {
	refs map[uuid.UUID]*MediaReference
}

func newMockRepo() *mockRepo {
	return &mockRepo{refs: make(map[uuid.UUID]*MediaReference)}
}

func (m *mockRepo) Create(_ context.Context, ref *MediaReference) error {
	ref.ID = uuid.New()
	ref.CreatedAt = time.Now()
	m.refs[ref.ID] = ref
	return nil
}

func (m *mockRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]*MediaReference, error) {
	var result []*MediaReference
	for _, ref := range m.refs {
		if ref.PatientID == patientID {
			result = append(result, ref)
		}
	}
	return result, nil
}

func (m *mockRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.refs[id]; !ok {
		return apperr.NotFoundf("media reference %s", id)
	}
	delete(m.refs, id)
	return nil
}

func resident() *auth.Identity {
	return &auth.Identity{StaffID: uuid.New(), DisplayName: "Dr. Junior", Role: auth.RoleResident}
}

func surgeon() *auth.Identity {
	return &auth.Identity{StaffID: uuid.New(), DisplayName: "Dr. Cutter", Role: auth.RoleSurgeon}
}

func head() *auth.Identity {
	return &auth.Identity{StaffID: uuid.New(), DisplayName: "Dr. Chief", Role: auth.RoleHead}
}

func TestCreate(t *testing.T) {
	svc := NewService(newMockRepo())
	actor := resident()

	ref, err := svc.Create(context.Background(), actor, CreateRequest{
		PatientID: uuid.New(), FileName: "xray.png", FileType: "image/png",
		URL: "https://files.internal/xray.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.UploadedBy != actor.StaffID {
		t.Error("uploaded_by must stamp the actor")
	}
}

func TestCreate_RoleGate(t *testing.T) {
	svc := NewService(newMockRepo())
	req := CreateRequest{PatientID: uuid.New(), URL: "https://files.internal/f"}

	if _, err := svc.Create(context.Background(), surgeon(), req); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("surgeon must not upload, got %v", err)
	}
	if _, err := svc.Create(context.Background(), head(), req); err != nil {
		t.Errorf("head should upload: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	svc := NewService(newMockRepo())

	var ve *apperr.ValidationError
	if _, err := svc.Create(context.Background(), resident(), CreateRequest{URL: "u"}); !errors.As(err, &ve) {
		t.Errorf("expected validation error for missing patient, got %v", err)
	}
	if _, err := svc.Create(context.Background(), resident(), CreateRequest{PatientID: uuid.New()}); !errors.As(err, &ve) {
		t.Errorf("expected validation error for missing url, got %v", err)
	}
}

func TestListByPatient(t *testing.T) {
	svc := NewService(newMockRepo())
	pid := uuid.New()

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), resident(), CreateRequest{PatientID: pid, URL: "u"}); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), resident(), CreateRequest{PatientID: uuid.New(), URL: "u"}); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	refs, err := svc.ListByPatient(context.Background(), surgeon(), pid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 2 {
		t.Errorf("expected 2 references, got %d", len(refs))
	}
}

func TestDelete_RoleGate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	ref, err := svc.Create(context.Background(), resident(), CreateRequest{PatientID: uuid.New(), URL: "u"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(context.Background(), surgeon(), ref.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("surgeon must not delete, got %v", err)
	}
	if err := svc.Delete(context.Background(), resident(), ref.ID); err != nil {
		t.Fatalf("resident should delete: %v", err)
	}
	if len(repo.refs) != 0 {
		t.Error("reference should be gone")
	}
}
