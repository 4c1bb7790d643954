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

type stubReproductionRepo struct {
	events    map[uuid.UUID]*domain.ReproductiveEvent
	offspring map[uuid.UUID]*domain.OffspringBorn
}

func newStubReproductionRepo() *stubReproductionRepo {
	return &stubReproductionRepo{
		events:    make(map[uuid.UUID]*domain.ReproductiveEvent),
		offspring: make(map[uuid.UUID]*domain.OffspringBorn),
	}
}

func (r *stubReproductionRepo) InsertEvent(_ context.Context, e *domain.ReproductiveEvent) error {
	clone := *e
	r.events[e.ID] = &clone
	return nil
}

func (r *stubReproductionRepo) FindEvent(_ context.Context, id uuid.UUID) (*domain.ReproductiveEvent, error) {
	e, ok := r.events[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubReproductionRepo) ListEventsByAnimal(_ context.Context, animalID uuid.UUID) ([]*domain.ReproductiveEvent, error) {
	var out []*domain.ReproductiveEvent
	for _, e := range r.events {
		if e.AnimalID == animalID {
			clone := *e
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubReproductionRepo) DeleteEvent(_ context.Context, id uuid.UUID) error {
	if _, ok := r.events[id]; !ok {
		return domain.ErrRecordNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *stubReproductionRepo) InsertOffspring(_ context.Context, o *domain.OffspringBorn) error {
	clone := *o
	r.offspring[o.ID] = &clone
	return nil
}

func (r *stubReproductionRepo) ListOffspringByEvent(_ context.Context, eventID uuid.UUID) ([]*domain.OffspringBorn, error) {
	var out []*domain.OffspringBorn
	for _, o := range r.offspring {
		if o.ReproductiveEventID == eventID {
			clone := *o
			out = append(out, &clone)
		}
	}
	return out, nil
}

type reproductionFixture struct {
	svc     *ReproductionService
	animals *stubAnimalRepo
	owner   ports.Actor
	damID   uuid.UUID
	sireID  uuid.UUID
}

func newReproductionFixture(t *testing.T) *reproductionFixture {
	t.Helper()

	f := &reproductionFixture{
		animals: newStubAnimalRepo(),
		owner:   ports.Actor{UserID: uuid.New(), Role: domain.RoleUser},
	}
	dam := &domain.Animal{ID: uuid.New(), TagID: "VAC-1", Sex: domain.SexFemale, OwnerUserID: f.owner.UserID}
	sire := &domain.Animal{ID: uuid.New(), TagID: "TOR-1", Sex: domain.SexMale, OwnerUserID: f.owner.UserID}
	for _, a := range []*domain.Animal{dam, sire} {
		if err := f.animals.Create(context.Background(), a); err != nil {
			t.Fatalf("seed animal: %v", err)
		}
	}
	f.damID, f.sireID = dam.ID, sire.ID
	f.svc = NewReproductionService(newStubReproductionRepo(), f.animals, newStubFarmRepo(), &stubRecorder{}, zerolog.Nop())
	return f
}

func TestReproductionService_CreateEvent(t *testing.T) {
	f := newReproductionFixture(t)

	e, err := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:     f.damID,
		EventType:    domain.ReproInsemination,
		EventDate:    time.Now(),
		SireAnimalID: &f.sireID,
	})
	if err != nil {
		t.Fatalf("CreateEvent returned error: %v", err)
	}
	if e.CreatedByUserID != f.owner.UserID {
		t.Fatalf("creator not set from actor")
	}
	if e.SireAnimalID == nil || *e.SireAnimalID != f.sireID {
		t.Fatalf("sire reference lost")
	}
}

func TestReproductionService_CreateEvent_InvalidType(t *testing.T) {
	f := newReproductionFixture(t)

	if _, err := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:  f.damID,
		EventType: "Trasplante",
		EventDate: time.Now(),
	}); err != domain.ErrInvalidRecord {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}

	bad := domain.GestationResult("Quizas")
	if _, err := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:        f.damID,
		EventType:       domain.ReproGestationDiagnosis,
		EventDate:       time.Now(),
		GestationResult: &bad,
	}); err != domain.ErrInvalidRecord {
		t.Fatalf("expected ErrInvalidRecord for bad result, got %v", err)
	}
}

func TestReproductionService_CreateEvent_SireMustBeOwned(t *testing.T) {
	f := newReproductionFixture(t)

	foreign := &domain.Animal{ID: uuid.New(), TagID: "FOR-3", Sex: domain.SexMale, OwnerUserID: uuid.New()}
	_ = f.animals.Create(context.Background(), foreign)

	if _, err := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:     f.damID,
		EventType:    domain.ReproMating,
		EventDate:    time.Now(),
		SireAnimalID: &foreign.ID,
	}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReproductionService_GetEvent_OwnershipThroughDam(t *testing.T) {
	f := newReproductionFixture(t)

	e, _ := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:  f.damID,
		EventType: domain.ReproMating,
		EventDate: time.Now(),
	})

	stranger := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if _, err := f.svc.GetEvent(context.Background(), stranger, e.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.GetEvent(context.Background(), f.owner, e.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
}

func TestReproductionService_AddOffspring(t *testing.T) {
	f := newReproductionFixture(t)

	count := 1
	e, _ := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:          f.damID,
		EventType:         domain.ReproBirth,
		EventDate:         time.Now(),
		NumberOfOffspring: &count,
	})

	calf := &domain.Animal{ID: uuid.New(), TagID: "TER-1", OwnerUserID: f.owner.UserID}
	_ = f.animals.Create(context.Background(), calf)

	o, err := f.svc.AddOffspring(context.Background(), f.owner, e.ID, calf.ID)
	if err != nil {
		t.Fatalf("AddOffspring returned error: %v", err)
	}
	if o.ReproductiveEventID != e.ID || o.OffspringAnimalID != calf.ID {
		t.Fatalf("unexpected offspring link: %+v", o)
	}

	list, err := f.svc.ListOffspring(context.Background(), f.owner, e.ID)
	if err != nil {
		t.Fatalf("ListOffspring returned error: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 offspring, got %d", len(list))
	}
}

func TestReproductionService_AddOffspring_ForeignCalf(t *testing.T) {
	f := newReproductionFixture(t)

	e, _ := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:  f.damID,
		EventType: domain.ReproBirth,
		EventDate: time.Now(),
	})

	foreign := &domain.Animal{ID: uuid.New(), TagID: "FOR-4", OwnerUserID: uuid.New()}
	_ = f.animals.Create(context.Background(), foreign)

	if _, err := f.svc.AddOffspring(context.Background(), f.owner, e.ID, foreign.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReproductionService_DeleteEvent(t *testing.T) {
	f := newReproductionFixture(t)

	e, _ := f.svc.CreateEvent(context.Background(), f.owner, ports.ReproductiveEventInput{
		AnimalID:  f.damID,
		EventType: domain.ReproWeaning,
		EventDate: time.Now(),
	})

	if err := f.svc.DeleteEvent(context.Background(), f.owner, e.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := f.svc.GetEvent(context.Background(), f.owner, e.ID); err != domain.ErrRecordNotFound {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
