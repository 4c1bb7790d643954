package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mifinca/fincamanager/internal/core/domain"
	"github.com/mifinca/fincamanager/internal/core/ports"
)

const animalColumns = `
	id, tag_id, name, species_id, breed_id, sex,
	date_of_birth, current_status, origin, owner_user_id,
	mother_animal_id, father_animal_id, description, photo_url,
	current_lot_id, created_at, updated_at`

// AnimalRepository persists animals in Postgres.
type AnimalRepository struct {
	db *sql.DB
}

func NewAnimalRepository(db *sql.DB) *AnimalRepository {
	return &AnimalRepository{db: db}
}

func (r *AnimalRepository) Create(ctx context.Context, a *domain.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, tag_id, name, species_id, breed_id, sex,
			date_of_birth, current_status, origin, owner_user_id,
			mother_animal_id, father_animal_id, description, photo_url,
			current_lot_id, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
	`,
		a.ID,
		a.TagID,
		a.Name,
		a.SpeciesID,
		a.BreedID,
		a.Sex,
		a.DateOfBirth,
		a.CurrentStatus,
		a.Origin,
		a.OwnerUserID,
		a.MotherID,
		a.FatherID,
		a.Description,
		a.PhotoURL,
		a.CurrentLotID,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return conflictErr(err, domain.ErrTagExists)
}

func (r *AnimalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Animal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+animalColumns+` FROM animals WHERE id = $1`, id)

	a, err := scanAnimal(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrAnimalNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// List returns a page of animals matching filter and the total count for
// the same predicate.
func (r *AnimalRepository) List(ctx context.Context, filter ports.ListAnimalsFilter) ([]*domain.Animal, int64, error) {
	where := []string{"owner_user_id = $1"}
	args := []any{filter.OwnerUserID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("current_status = $%d", len(args)))
	}
	if filter.SpeciesID != nil {
		args = append(args, *filter.SpeciesID)
		where = append(where, fmt.Sprintf("species_id = $%d", len(args)))
	}
	if filter.LotID != nil {
		args = append(args, *filter.LotID)
		where = append(where, fmt.Sprintf("current_lot_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where = append(where, fmt.Sprintf("(tag_id ILIKE $%d OR name ILIKE $%d)", len(args), len(args)))
	}
	predicate := strings.Join(where, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM animals WHERE `+predicate, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(
		`SELECT %s FROM animals WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		animalColumns, predicate, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var animals []*domain.Animal
	for rows.Next() {
		a, err := scanAnimal(rows.Scan)
		if err != nil {
			return nil, 0, err
		}
		animals = append(animals, a)
	}
	return animals, total, rows.Err()
}

func (r *AnimalRepository) Update(ctx context.Context, a *domain.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET name = $2,
		    species_id = $3,
		    breed_id = $4,
		    date_of_birth = $5,
		    current_status = $6,
		    description = $7,
		    photo_url = $8,
		    current_lot_id = $9,
		    updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.Name,
		a.SpeciesID,
		a.BreedID,
		a.DateOfBirth,
		a.CurrentStatus,
		a.Description,
		a.PhotoURL,
		a.CurrentLotID,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAnimalNotFound
	}
	return nil
}

func (r *AnimalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM animals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return domain.ErrAnimalNotFound
	}
	return nil
}

func scanAnimal(scan func(...any) error) (*domain.Animal, error) {
	var a domain.Animal
	err := scan(
		&a.ID,
		&a.TagID,
		&a.Name,
		&a.SpeciesID,
		&a.BreedID,
		&a.Sex,
		&a.DateOfBirth,
		&a.CurrentStatus,
		&a.Origin,
		&a.OwnerUserID,
		&a.MotherID,
		&a.FatherID,
		&a.Description,
		&a.PhotoURL,
		&a.CurrentLotID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
