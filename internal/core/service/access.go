package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

// farmAccessible reports whether the actor may work with the farm: its
// owner, an admin, or a user holding an unexpired shared-access grant.
func farmAccessible(ctx context.Context, farms ports.FarmRepository, actor ports.Actor, farm *domain.Farm) (bool, error) {
	if farm.OwnerUserID == actor.UserID || actor.Role == domain.RoleAdmin {
		return true, nil
	}
	return farms.HasAccess(ctx, farm.ID, actor.UserID)
}

// animalAccessible enforces the actor's right to work with an animal. The
// owner and admins always pass; other users pass when the animal sits on a
// lot of a farm shared with them.
func animalAccessible(ctx context.Context, farms ports.FarmRepository, actor ports.Actor, animal *domain.Animal) error {
	if animal.OwnerUserID == actor.UserID || actor.Role == domain.RoleAdmin {
		return nil
	}
	if animal.CurrentLotID == nil {
		return domain.ErrForbidden
	}
	lot, err := farms.FindLotByID(ctx, *animal.CurrentLotID)
	if err != nil {
		return err
	}
	ok, err := farms.HasAccess(ctx, lot.FarmID, actor.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}

// lotAccessible resolves the lot's farm and applies farmAccessible.
func lotAccessible(ctx context.Context, farms ports.FarmRepository, actor ports.Actor, lotID uuid.UUID) error {
	lot, err := farms.FindLotByID(ctx, lotID)
	if err != nil {
		return err
	}
	farm, err := farms.FindByID(ctx, lot.FarmID)
	if err != nil {
		return err
	}
	ok, err := farmAccessible(ctx, farms, actor, farm)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrForbidden
	}
	return nil
}
