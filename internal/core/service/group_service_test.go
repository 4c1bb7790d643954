package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

type stubGroupRepo struct {
	groups      map[uuid.UUID]*domain.Group
	assignments []*domain.GroupAssignment
}

func newStubGroupRepo() *stubGroupRepo {
	return &stubGroupRepo{groups: make(map[uuid.UUID]*domain.Group)}
}

func (r *stubGroupRepo) Create(_ context.Context, g *domain.Group) error {
	clone := *g
	r.groups[g.ID] = &clone
	return nil
}

func (r *stubGroupRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Group, error) {
	g, ok := r.groups[id]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *stubGroupRepo) ListByCreator(_ context.Context, userID uuid.UUID) ([]*domain.Group, error) {
	var out []*domain.Group
	for _, g := range r.groups {
		if g.CreatedByUserID == userID {
			clone := *g
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubGroupRepo) Update(_ context.Context, g *domain.Group) error {
	if _, ok := r.groups[g.ID]; !ok {
		return domain.ErrGroupNotFound
	}
	clone := *g
	r.groups[g.ID] = &clone
	return nil
}

func (r *stubGroupRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.groups[id]; !ok {
		return domain.ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}

func (r *stubGroupRepo) InsertAssignment(_ context.Context, a *domain.GroupAssignment) error {
	clone := *a
	r.assignments = append(r.assignments, &clone)
	return nil
}

func (r *stubGroupRepo) SetRemovedDate(_ context.Context, groupID, animalID uuid.UUID, removedDate time.Time) error {
	for _, a := range r.assignments {
		if a.GroupID == groupID && a.AnimalID == animalID && a.RemovedDate == nil {
			d := removedDate
			a.RemovedDate = &d
			return nil
		}
	}
	return domain.ErrAssignmentNotFound
}

func (r *stubGroupRepo) ListAssignmentsByGroup(_ context.Context, groupID uuid.UUID) ([]*domain.GroupAssignment, error) {
	var out []*domain.GroupAssignment
	for _, a := range r.assignments {
		if a.GroupID == groupID {
			clone := *a
			out = append(out, &clone)
		}
	}
	return out, nil
}

type groupFixture struct {
	svc        *GroupService
	animals    *stubAnimalRepo
	masterData *stubMasterDataRepo
	owner      ports.Actor
	animalID   uuid.UUID
}

func newGroupFixture(t *testing.T) *groupFixture {
	t.Helper()

	f := &groupFixture{
		animals:    newStubAnimalRepo(),
		masterData: newStubMasterDataRepo(),
		owner:      ports.Actor{UserID: uuid.New(), Role: domain.RoleUser},
	}
	a := &domain.Animal{ID: uuid.New(), TagID: "LOT-1", OwnerUserID: f.owner.UserID}
	if err := f.animals.Create(context.Background(), a); err != nil {
		t.Fatalf("seed animal: %v", err)
	}
	f.animalID = a.ID
	f.svc = NewGroupService(newStubGroupRepo(), f.animals, newStubFarmRepo(), f.masterData, &stubRecorder{}, zerolog.Nop())
	return f
}

func TestGroupService_CreateGroup_SetsCreator(t *testing.T) {
	f := newGroupFixture(t)

	g, err := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{Name: "Lote Engorde"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}
	if g.CreatedByUserID != f.owner.UserID {
		t.Fatalf("creator not set from actor")
	}
	if g.ID == uuid.Nil {
		t.Fatalf("expected generated group ID")
	}
}

func TestGroupService_CreateGroup_PurposeCategoryChecked(t *testing.T) {
	f := newGroupFixture(t)

	breedID := f.masterData.add(domain.CategoryBreed, "Brahman")
	if _, err := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{
		Name:      "Lote Cria",
		PurposeID: &breedID,
	}); err != domain.ErrMasterDataNotFound {
		t.Fatalf("expected ErrMasterDataNotFound for wrong category, got %v", err)
	}

	purposeID := f.masterData.add(domain.CategoryGroupPurpose, "Engorde")
	if _, err := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{
		Name:      "Lote Cria",
		PurposeID: &purposeID,
	}); err != nil {
		t.Fatalf("create with valid purpose failed: %v", err)
	}
}

func TestGroupService_GetGroup_Ownership(t *testing.T) {
	f := newGroupFixture(t)

	g, err := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{Name: "Lote A"})
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}

	stranger := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if _, err := f.svc.GetGroup(context.Background(), stranger, g.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := ports.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	if _, err := f.svc.GetGroup(context.Background(), admin, g.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}
}

func TestGroupService_AssignAnimal(t *testing.T) {
	f := newGroupFixture(t)

	g, _ := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{Name: "Lote A"})

	a, err := f.svc.AssignAnimal(context.Background(), f.owner, g.ID, ports.AssignAnimalInput{
		AnimalID:     f.animalID,
		AssignedDate: time.Now(),
		Notes:        "ingreso por destete",
	})
	if err != nil {
		t.Fatalf("AssignAnimal returned error: %v", err)
	}
	if a.GroupID != g.ID || a.AnimalID != f.animalID {
		t.Fatalf("unexpected assignment: %+v", a)
	}

	list, err := f.svc.ListAssignments(context.Background(), f.owner, g.ID)
	if err != nil {
		t.Fatalf("ListAssignments returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(list))
	}
}

func TestGroupService_AssignAnimal_ForeignAnimal(t *testing.T) {
	f := newGroupFixture(t)

	g, _ := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{Name: "Lote A"})

	foreign := &domain.Animal{ID: uuid.New(), TagID: "FOR-2", OwnerUserID: uuid.New()}
	_ = f.animals.Create(context.Background(), foreign)

	if _, err := f.svc.AssignAnimal(context.Background(), f.owner, g.ID, ports.AssignAnimalInput{
		AnimalID:     foreign.ID,
		AssignedDate: time.Now(),
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGroupService_RemoveAnimal(t *testing.T) {
	f := newGroupFixture(t)

	g, _ := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{Name: "Lote A"})
	if _, err := f.svc.AssignAnimal(context.Background(), f.owner, g.ID, ports.AssignAnimalInput{
		AnimalID:     f.animalID,
		AssignedDate: time.Now(),
	}); err != nil {
		t.Fatalf("AssignAnimal returned error: %v", err)
	}

	removed := time.Now().Add(24 * time.Hour)
	if err := f.svc.RemoveAnimal(context.Background(), f.owner, g.ID, f.animalID, removed); err != nil {
		t.Fatalf("RemoveAnimal returned error: %v", err)
	}

	list, _ := f.svc.ListAssignments(context.Background(), f.owner, g.ID)
	if list[0].RemovedDate == nil {
		t.Fatalf("expected removed date to be set")
	}

	// Closed memberships cannot be closed again.
	if err := f.svc.RemoveAnimal(context.Background(), f.owner, g.ID, f.animalID, removed); err != domain.ErrAssignmentNotFound {
		t.Fatalf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestGroupService_DeleteGroup_Ownership(t *testing.T) {
	f := newGroupFixture(t)

	g, _ := f.svc.CreateGroup(context.Background(), f.owner, ports.GroupInput{Name: "Lote A"})

	stranger := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if err := f.svc.DeleteGroup(context.Background(), stranger, g.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DeleteGroup(context.Background(), f.owner, g.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.svc.GetGroup(context.Background(), f.owner, g.ID); err != domain.ErrGroupNotFound {
		t.Fatalf("expected ErrGroupNotFound, got %v", err)
	}
}
