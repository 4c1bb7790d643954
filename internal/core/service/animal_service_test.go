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

type stubAnimalRepo struct {
	animals map[uuid.UUID]*domain.Animal
}

func newStubAnimalRepo() *stubAnimalRepo {
	return &stubAnimalRepo{animals: make(map[uuid.UUID]*domain.Animal)}
}

func (r *stubAnimalRepo) Create(_ context.Context, a *domain.Animal) error {
	for _, existing := range r.animals {
		if existing.TagID == a.TagID {
			return domain.ErrTagExists
		}
	}
	clone := *a
	r.animals[a.ID] = &clone
	return nil
}

func (r *stubAnimalRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Animal, error) {
	a, ok := r.animals[id]
	if !ok {
		return nil, domain.ErrAnimalNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *stubAnimalRepo) List(_ context.Context, filter ports.ListAnimalsFilter) ([]*domain.Animal, int64, error) {
	var matched []*domain.Animal
	for _, a := range r.animals {
		if a.OwnerUserID != filter.OwnerUserID {
			continue
		}
		if filter.Status != "" && string(a.CurrentStatus) != filter.Status {
			continue
		}
		clone := *a
		matched = append(matched, &clone)
	}
	total := int64(len(matched))

	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubAnimalRepo) Update(_ context.Context, a *domain.Animal) error {
	if _, ok := r.animals[a.ID]; !ok {
		return domain.ErrAnimalNotFound
	}
	clone := *a
	r.animals[a.ID] = &clone
	return nil
}

func (r *stubAnimalRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.animals[id]; !ok {
		return domain.ErrAnimalNotFound
	}
	delete(r.animals, id)
	return nil
}

type stubMasterDataRepo struct {
	items  map[uuid.UUID]*domain.MasterData
	params map[string]*domain.ConfigParameter
}

func newStubMasterDataRepo() *stubMasterDataRepo {
	return &stubMasterDataRepo{
		items:  make(map[uuid.UUID]*domain.MasterData),
		params: make(map[string]*domain.ConfigParameter),
	}
}

func (r *stubMasterDataRepo) add(category, name string) uuid.UUID {
	id := uuid.New()
	r.items[id] = &domain.MasterData{ID: id, Category: category, Name: name, IsActive: true}
	return id
}

func (r *stubMasterDataRepo) Create(_ context.Context, m *domain.MasterData) error {
	for _, existing := range r.items {
		if existing.Category == m.Category && existing.Name == m.Name {
			return domain.ErrMasterDataExists
		}
	}
	clone := *m
	r.items[m.ID] = &clone
	return nil
}

func (r *stubMasterDataRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.MasterData, error) {
	m, ok := r.items[id]
	if !ok {
		return nil, domain.ErrMasterDataNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *stubMasterDataRepo) List(_ context.Context, category string) ([]*domain.MasterData, error) {
	var out []*domain.MasterData
	for _, m := range r.items {
		if category == "" || m.Category == category {
			clone := *m
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubMasterDataRepo) Update(_ context.Context, m *domain.MasterData) error {
	if _, ok := r.items[m.ID]; !ok {
		return domain.ErrMasterDataNotFound
	}
	clone := *m
	r.items[m.ID] = &clone
	return nil
}

func (r *stubMasterDataRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return domain.ErrMasterDataNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubMasterDataRepo) UpsertParameter(_ context.Context, p *domain.ConfigParameter) error {
	clone := *p
	r.params[p.Name] = &clone
	return nil
}

func (r *stubMasterDataRepo) FindParameterByName(_ context.Context, name string) (*domain.ConfigParameter, error) {
	p, ok := r.params[name]
	if !ok {
		return nil, domain.ErrParamNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubMasterDataRepo) ListParameters(_ context.Context) ([]*domain.ConfigParameter, error) {
	var out []*domain.ConfigParameter
	for _, p := range r.params {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubMasterDataRepo) DeleteParameter(_ context.Context, name string) error {
	if _, ok := r.params[name]; !ok {
		return domain.ErrParamNotFound
	}
	delete(r.params, name)
	return nil
}

type animalFixture struct {
	svc        *AnimalService
	animals    *stubAnimalRepo
	farms      *stubFarmRepo
	masterData *stubMasterDataRepo
	owner      ports.Actor
}

func newAnimalFixture() *animalFixture {
	f := &animalFixture{
		animals:    newStubAnimalRepo(),
		farms:      newStubFarmRepo(),
		masterData: newStubMasterDataRepo(),
		owner:      ports.Actor{UserID: uuid.New(), Role: domain.RoleUser},
	}
	f.svc = NewAnimalService(f.animals, f.farms, f.masterData, &stubRecorder{}, zerolog.Nop())
	return f
}

func validAnimalInput(tag string) ports.CreateAnimalInput {
	return ports.CreateAnimalInput{
		TagID:         tag,
		Sex:           domain.SexFemale,
		CurrentStatus: domain.AnimalActive,
		Origin:        domain.OriginBornOnFarm,
	}
}

func TestAnimalService_CreateAnimal_Success(t *testing.T) {
	f := newAnimalFixture()

	a, err := f.svc.CreateAnimal(context.Background(), f.owner, validAnimalInput("BOV-001"))
	if err != nil {
		t.Fatalf("CreateAnimal returned error: %v", err)
	}
	if a.OwnerUserID != f.owner.UserID {
		t.Fatalf("owner not set from actor")
	}
	if a.CurrentStatus != domain.AnimalActive {
		t.Fatalf("unexpected status: %s", a.CurrentStatus)
	}
}

func TestAnimalService_CreateAnimal_InvalidEnums(t *testing.T) {
	f := newAnimalFixture()

	in := validAnimalInput("BOV-002")
	in.Sex = "Unknown"
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, in); err != domain.ErrInvalidAnimal {
		t.Fatalf("expected ErrInvalidAnimal for bad sex, got %v", err)
	}

	in = validAnimalInput("")
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, in); err != domain.ErrInvalidAnimal {
		t.Fatalf("expected ErrInvalidAnimal for empty tag, got %v", err)
	}
}

func TestAnimalService_CreateAnimal_SpeciesCategoryChecked(t *testing.T) {
	f := newAnimalFixture()

	// A breed row referenced as species reads as not-found.
	breedID := f.masterData.add(domain.CategoryBreed, "Brahman")
	in := validAnimalInput("BOV-003")
	in.SpeciesID = &breedID
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, in); err != domain.ErrMasterDataNotFound {
		t.Fatalf("expected ErrMasterDataNotFound, got %v", err)
	}

	speciesID := f.masterData.add(domain.CategorySpecies, "Bovino")
	in.SpeciesID = &speciesID
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, in); err != nil {
		t.Fatalf("create with valid species failed: %v", err)
	}
}

func TestAnimalService_CreateAnimal_LotOwnershipChecked(t *testing.T) {
	f := newAnimalFixture()

	otherFarm := &domain.Farm{ID: uuid.New(), Name: "Ajena", OwnerUserID: uuid.New()}
	_ = f.farms.Create(context.Background(), otherFarm)
	lot := &domain.Lot{ID: uuid.New(), FarmID: otherFarm.ID, Name: "Potrero 1"}
	_ = f.farms.CreateLot(context.Background(), lot)

	in := validAnimalInput("BOV-004")
	in.CurrentLotID = &lot.ID
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, in); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign lot, got %v", err)
	}
}

func TestAnimalService_CreateAnimal_ParentMustBeOwned(t *testing.T) {
	f := newAnimalFixture()

	foreign := &domain.Animal{ID: uuid.New(), TagID: "X-1", OwnerUserID: uuid.New()}
	_ = f.animals.Create(context.Background(), foreign)

	in := validAnimalInput("BOV-005")
	in.MotherID = &foreign.ID
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, in); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for foreign mother, got %v", err)
	}

	missing := uuid.New()
	in.MotherID = &missing
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, in); err != domain.ErrAnimalNotFound {
		t.Fatalf("expected ErrAnimalNotFound for missing mother, got %v", err)
	}
}

func TestAnimalService_CreateAnimal_DuplicateTag(t *testing.T) {
	f := newAnimalFixture()

	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, validAnimalInput("BOV-006")); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := f.svc.CreateAnimal(context.Background(), f.owner, validAnimalInput("BOV-006")); err != domain.ErrTagExists {
		t.Fatalf("expected ErrTagExists, got %v", err)
	}
}

func TestAnimalService_ListAnimals_ScopedAndPaged(t *testing.T) {
	f := newAnimalFixture()

	for i := 0; i < 5; i++ {
		tag := "BOV-10" + string(rune('0'+i))
		if _, err := f.svc.CreateAnimal(context.Background(), f.owner, validAnimalInput(tag)); err != nil {
			t.Fatalf("create %s failed: %v", tag, err)
		}
	}
	// Another user's animal must never appear in the listing.
	foreign := &domain.Animal{ID: uuid.New(), TagID: "FOR-1", OwnerUserID: uuid.New()}
	_ = f.animals.Create(context.Background(), foreign)

	res, err := f.svc.ListAnimals(context.Background(), f.owner, ports.ListAnimalsFilter{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Total != 5 {
		t.Fatalf("expected total 5, got %d", res.Total)
	}
	if len(res.Items) != 2 {
		t.Fatalf("expected 2 items on page, got %d", len(res.Items))
	}
	if res.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", res.TotalPages)
	}
}

func TestAnimalService_ListAnimals_LimitClamped(t *testing.T) {
	f := newAnimalFixture()

	res, err := f.svc.ListAnimals(context.Background(), f.owner, ports.ListAnimalsFilter{Page: 0, Limit: 10000})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if res.Page != 1 {
		t.Fatalf("expected page clamped to 1, got %d", res.Page)
	}
	if res.Limit != maxPageLimit {
		t.Fatalf("expected limit clamped to %d, got %d", maxPageLimit, res.Limit)
	}
}

func TestAnimalService_UpdateAnimal_StatusTransition(t *testing.T) {
	f := newAnimalFixture()

	a, _ := f.svc.CreateAnimal(context.Background(), f.owner, validAnimalInput("BOV-200"))

	sold := domain.AnimalSold
	updated, err := f.svc.UpdateAnimal(context.Background(), f.owner, a.ID, ports.UpdateAnimalInput{CurrentStatus: &sold})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.CurrentStatus != domain.AnimalSold {
		t.Fatalf("status not updated: %s", updated.CurrentStatus)
	}

	bad := domain.AnimalStatus("Desconocido")
	if _, err := f.svc.UpdateAnimal(context.Background(), f.owner, a.ID, ports.UpdateAnimalInput{CurrentStatus: &bad}); err != domain.ErrInvalidAnimal {
		t.Fatalf("expected ErrInvalidAnimal, got %v", err)
	}
}

func TestAnimalService_DeleteAnimal_Ownership(t *testing.T) {
	f := newAnimalFixture()

	a, _ := f.svc.CreateAnimal(context.Background(), f.owner, validAnimalInput("BOV-300"))

	stranger := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if err := f.svc.DeleteAnimal(context.Background(), stranger, a.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := f.svc.DeleteAnimal(context.Background(), f.owner, a.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
}

func TestAnimalService_SharedFarmAccess(t *testing.T) {
	f := newAnimalFixture()

	farm := &domain.Farm{ID: uuid.New(), Name: "Compartida", OwnerUserID: f.owner.UserID}
	_ = f.farms.Create(context.Background(), farm)
	lot := &domain.Lot{ID: uuid.New(), FarmID: farm.ID, Name: "Potrero 2"}
	_ = f.farms.CreateLot(context.Background(), lot)

	in := validAnimalInput("BOV-400")
	in.CurrentLotID = &lot.ID
	a, err := f.svc.CreateAnimal(context.Background(), f.owner, in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	guest := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if _, err := f.svc.GetAnimal(context.Background(), guest, a.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden before grant, got %v", err)
	}

	grant := &domain.FarmAccess{UserID: guest.UserID, FarmID: farm.ID, AssignedByUserID: f.owner.UserID, AssignedAt: time.Now()}
	if err := f.farms.GrantAccess(context.Background(), grant); err != nil {
		t.Fatalf("seed grant: %v", err)
	}

	if _, err := f.svc.GetAnimal(context.Background(), guest, a.ID); err != nil {
		t.Fatalf("shared read failed: %v", err)
	}

	// The grant also lets the guest place their own animal on the farm's lot.
	gin := validAnimalInput("CAP-001")
	gin.CurrentLotID = &lot.ID
	if _, err := f.svc.CreateAnimal(context.Background(), guest, gin); err != nil {
		t.Fatalf("create on shared lot failed: %v", err)
	}
}
