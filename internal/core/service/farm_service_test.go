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

type stubRecorder struct {
	entries []domain.ActivityEntry
}

func (r *stubRecorder) Record(entry domain.ActivityEntry) {
	r.entries = append(r.entries, entry)
}

type stubFarmRepo struct {
	farms  map[uuid.UUID]*domain.Farm
	lots   map[uuid.UUID]*domain.Lot
	access map[uuid.UUID]map[uuid.UUID]*domain.FarmAccess
}

func newStubFarmRepo() *stubFarmRepo {
	return &stubFarmRepo{
		farms:  make(map[uuid.UUID]*domain.Farm),
		lots:   make(map[uuid.UUID]*domain.Lot),
		access: make(map[uuid.UUID]map[uuid.UUID]*domain.FarmAccess),
	}
}

func (r *stubFarmRepo) Create(_ context.Context, f *domain.Farm) error {
	clone := *f
	r.farms[f.ID] = &clone
	return nil
}

func (r *stubFarmRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Farm, error) {
	f, ok := r.farms[id]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	clone := *f
	return &clone, nil
}

func (r *stubFarmRepo) ListByOwner(_ context.Context, ownerUserID uuid.UUID) ([]*domain.Farm, error) {
	var out []*domain.Farm
	for _, f := range r.farms {
		if f.OwnerUserID == ownerUserID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFarmRepo) Update(_ context.Context, f *domain.Farm) error {
	if _, ok := r.farms[f.ID]; !ok {
		return domain.ErrFarmNotFound
	}
	clone := *f
	r.farms[f.ID] = &clone
	return nil
}

func (r *stubFarmRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.farms[id]; !ok {
		return domain.ErrFarmNotFound
	}
	delete(r.farms, id)
	return nil
}

func (r *stubFarmRepo) CreateLot(_ context.Context, l *domain.Lot) error {
	for _, existing := range r.lots {
		if existing.FarmID == l.FarmID && existing.Name == l.Name {
			return domain.ErrLotExists
		}
	}
	clone := *l
	r.lots[l.ID] = &clone
	return nil
}

func (r *stubFarmRepo) FindLotByID(_ context.Context, id uuid.UUID) (*domain.Lot, error) {
	l, ok := r.lots[id]
	if !ok {
		return nil, domain.ErrLotNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubFarmRepo) ListLotsByFarm(_ context.Context, farmID uuid.UUID) ([]*domain.Lot, error) {
	var out []*domain.Lot
	for _, l := range r.lots {
		if l.FarmID == farmID {
			clone := *l
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFarmRepo) UpdateLot(_ context.Context, l *domain.Lot) error {
	if _, ok := r.lots[l.ID]; !ok {
		return domain.ErrLotNotFound
	}
	clone := *l
	r.lots[l.ID] = &clone
	return nil
}

func (r *stubFarmRepo) DeleteLot(_ context.Context, id uuid.UUID) error {
	if _, ok := r.lots[id]; !ok {
		return domain.ErrLotNotFound
	}
	delete(r.lots, id)
	return nil
}

func (r *stubFarmRepo) GrantAccess(_ context.Context, a *domain.FarmAccess) error {
	grants, ok := r.access[a.FarmID]
	if !ok {
		grants = make(map[uuid.UUID]*domain.FarmAccess)
		r.access[a.FarmID] = grants
	}
	if _, exists := grants[a.UserID]; exists {
		return domain.ErrAccessExists
	}
	clone := *a
	grants[a.UserID] = &clone
	return nil
}

func (r *stubFarmRepo) RevokeAccess(_ context.Context, farmID, userID uuid.UUID) error {
	if _, ok := r.access[farmID][userID]; !ok {
		return domain.ErrAccessNotFound
	}
	delete(r.access[farmID], userID)
	return nil
}

func (r *stubFarmRepo) HasAccess(_ context.Context, farmID, userID uuid.UUID) (bool, error) {
	a, ok := r.access[farmID][userID]
	if !ok {
		return false, nil
	}
	if a.ExpiresAt != nil && !a.ExpiresAt.After(time.Now()) {
		return false, nil
	}
	return true, nil
}

func (r *stubFarmRepo) ListAccessByFarm(_ context.Context, farmID uuid.UUID) ([]*domain.FarmAccess, error) {
	var out []*domain.FarmAccess
	for _, a := range r.access[farmID] {
		clone := *a
		out = append(out, &clone)
	}
	return out, nil
}

func TestFarmService_CreateFarm_SetsOwner(t *testing.T) {
	repo := newStubFarmRepo()
	recorder := &stubRecorder{}
	svc := NewFarmService(repo, recorder, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, err := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "La Esperanza", Location: "Meta"})
	if err != nil {
		t.Fatalf("CreateFarm returned error: %v", err)
	}
	if farm.OwnerUserID != owner.UserID {
		t.Fatalf("owner not set from actor: %s", farm.OwnerUserID)
	}
	if len(recorder.entries) != 1 || recorder.entries[0].Action != "create" || recorder.entries[0].Entity != "farm" {
		t.Fatalf("expected one farm create activity entry, got %+v", recorder.entries)
	}
}

func TestFarmService_GetFarm_Ownership(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "El Refugio"})

	stranger := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if _, err := svc.GetFarm(context.Background(), stranger, farm.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	admin := ports.Actor{UserID: uuid.New(), Role: domain.RoleAdmin}
	if _, err := svc.GetFarm(context.Background(), admin, farm.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}

	if _, err := svc.GetFarm(context.Background(), owner, uuid.New()); err != domain.ErrFarmNotFound {
		t.Fatalf("expected ErrFarmNotFound, got %v", err)
	}
}

func TestFarmService_UpdateFarm_Partial(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "Monteverde", Location: "Huila"})

	newName := "Monteverde Alto"
	updated, err := svc.UpdateFarm(context.Background(), owner, farm.ID, ports.UpdateFarmInput{Name: &newName})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Monteverde Alto" {
		t.Fatalf("name not updated: %s", updated.Name)
	}
	if updated.Location != "Huila" {
		t.Fatalf("location should be untouched: %s", updated.Location)
	}
}

func TestFarmService_Lots_ScopedToFarm(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farmA, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "A"})
	farmB, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "B"})

	lot, err := svc.CreateLot(context.Background(), owner, farmA.ID, ports.LotInput{Name: "Potrero 1"})
	if err != nil {
		t.Fatalf("create lot failed: %v", err)
	}

	// A lot cannot be updated through another farm's path.
	if _, err := svc.UpdateLot(context.Background(), owner, farmB.ID, lot.ID, ports.LotInput{Name: "X"}); err != domain.ErrLotNotFound {
		t.Fatalf("expected ErrLotNotFound, got %v", err)
	}

	lots, err := svc.ListLots(context.Background(), owner, farmA.ID)
	if err != nil {
		t.Fatalf("list lots failed: %v", err)
	}
	if len(lots) != 1 || lots[0].Name != "Potrero 1" {
		t.Fatalf("unexpected lots: %+v", lots)
	}
}

func TestFarmService_CreateLot_DuplicateName(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "C"})

	if _, err := svc.CreateLot(context.Background(), owner, farm.ID, ports.LotInput{Name: "Potrero 1"}); err != nil {
		t.Fatalf("first lot failed: %v", err)
	}
	if _, err := svc.CreateLot(context.Background(), owner, farm.ID, ports.LotInput{Name: "Potrero 1"}); err != domain.ErrLotExists {
		t.Fatalf("expected ErrLotExists, got %v", err)
	}
}

func TestFarmService_GrantAccess_OwnerOnly(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "La Esperanza"})

	stranger := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if _, err := svc.GrantAccess(context.Background(), stranger, farm.ID, ports.GrantAccessInput{UserID: uuid.New()}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	guest := uuid.New()
	a, err := svc.GrantAccess(context.Background(), owner, farm.ID, ports.GrantAccessInput{UserID: guest})
	if err != nil {
		t.Fatalf("GrantAccess returned error: %v", err)
	}
	if a.AssignedByUserID != owner.UserID {
		t.Fatalf("assigner not set from actor")
	}

	// Granting the owner their own farm is a conflict.
	if _, err := svc.GrantAccess(context.Background(), owner, farm.ID, ports.GrantAccessInput{UserID: owner.UserID}); err != domain.ErrAccessExists {
		t.Fatalf("expected ErrAccessExists, got %v", err)
	}
	if _, err := svc.GrantAccess(context.Background(), owner, farm.ID, ports.GrantAccessInput{UserID: guest}); err != domain.ErrAccessExists {
		t.Fatalf("expected ErrAccessExists on duplicate grant, got %v", err)
	}
}

func TestFarmService_SharedUserCanRead(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "El Refugio"})
	if _, err := svc.CreateLot(context.Background(), owner, farm.ID, ports.LotInput{Name: "Potrero 1"}); err != nil {
		t.Fatalf("create lot failed: %v", err)
	}

	guest := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if _, err := svc.GetFarm(context.Background(), guest, farm.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden before grant, got %v", err)
	}

	if _, err := svc.GrantAccess(context.Background(), owner, farm.ID, ports.GrantAccessInput{UserID: guest.UserID}); err != nil {
		t.Fatalf("GrantAccess returned error: %v", err)
	}

	if _, err := svc.GetFarm(context.Background(), guest, farm.ID); err != nil {
		t.Fatalf("shared read failed: %v", err)
	}
	lots, err := svc.ListLots(context.Background(), guest, farm.ID)
	if err != nil {
		t.Fatalf("shared lot listing failed: %v", err)
	}
	if len(lots) != 1 {
		t.Fatalf("expected 1 lot, got %d", len(lots))
	}

	// Sharing never grants write access.
	name := "Robada"
	if _, err := svc.UpdateFarm(context.Background(), guest, farm.ID, ports.UpdateFarmInput{Name: &name}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden on shared write, got %v", err)
	}
}

func TestFarmService_ExpiredGrantDenied(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "Monteverde"})

	guest := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	expired := time.Now().Add(-time.Hour)
	if _, err := svc.GrantAccess(context.Background(), owner, farm.ID, ports.GrantAccessInput{UserID: guest.UserID, ExpiresAt: &expired}); err != nil {
		t.Fatalf("GrantAccess returned error: %v", err)
	}

	if _, err := svc.GetFarm(context.Background(), guest, farm.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for expired grant, got %v", err)
	}
}

func TestFarmService_RevokeAccess(t *testing.T) {
	repo := newStubFarmRepo()
	svc := NewFarmService(repo, &stubRecorder{}, zerolog.Nop())

	owner := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	farm, _ := svc.CreateFarm(context.Background(), owner, ports.CreateFarmInput{Name: "La Aurora"})

	guest := ports.Actor{UserID: uuid.New(), Role: domain.RoleUser}
	if _, err := svc.GrantAccess(context.Background(), owner, farm.ID, ports.GrantAccessInput{UserID: guest.UserID}); err != nil {
		t.Fatalf("GrantAccess returned error: %v", err)
	}
	if err := svc.RevokeAccess(context.Background(), owner, farm.ID, guest.UserID); err != nil {
		t.Fatalf("RevokeAccess returned error: %v", err)
	}

	if _, err := svc.GetFarm(context.Background(), guest, farm.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden after revoke, got %v", err)
	}
	if err := svc.RevokeAccess(context.Background(), owner, farm.ID, guest.UserID); err != domain.ErrAccessNotFound {
		t.Fatalf("expected ErrAccessNotFound, got %v", err)
	}
}
