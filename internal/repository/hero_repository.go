package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/heroes/internal/models"
)

// ErrNotFound is returned by conditional writes that matched no row.
var ErrNotFound = errors.New("hero repository: hero not found")

// HeroChanges describes a partial update. A nil field is left untouched.
type HeroChanges struct {
	Name      *string
	Abilities *[]string
	Origin    *string
}

// Empty reports whether the change set carries no fields.
func (c HeroChanges) Empty() bool {
	return c.Name == nil && c.Abilities == nil && c.Origin == nil
}

// HeroRepository issues CRUD statements against the heroes table.
type HeroRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewHeroRepository constructs a repository once a database handle is supplied.
func NewHeroRepository(db *gorm.DB) (*HeroRepository, error) {
	if db == nil {
		return nil, errors.New("hero repository: db is required")
	}
	return &HeroRepository{db: db, now: time.Now}, nil
}

func ensuredContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}

// Insert persists a new hero and returns it with its generated id.
func (r *HeroRepository) Insert(ctx context.Context, hero *models.Hero) (*models.Hero, error) {
	if hero == nil {
		return nil, errors.New("hero repository: hero is required")
	}
	ctx = ensuredContext(ctx)

	record := *hero
	record.ID = 0
	record.Normalise()

	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindAll returns every hero ordered by id.
func (r *HeroRepository) FindAll(ctx context.Context) ([]models.Hero, error) {
	ctx = ensuredContext(ctx)

	heroes := make([]models.Hero, 0)
	if err := r.db.WithContext(ctx).Order("id").Find(&heroes).Error; err != nil {
		return nil, err
	}
	return heroes, nil
}

// FindByID loads a single hero. A missing row is reported through found=false, not an error.
func (r *HeroRepository) FindByID(ctx context.Context, id uint) (*models.Hero, bool, error) {
	ctx = ensuredContext(ctx)

	var hero models.Hero
	err := r.db.WithContext(ctx).Take(&hero, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &hero, true, nil
}

// UpdateByID applies changes with a single conditional UPDATE and returns the stored row.
// ErrNotFound is returned when no row carries the id at the time of the statement.
func (r *HeroRepository) UpdateByID(ctx context.Context, id uint, changes HeroChanges) (*models.Hero, error) {
	ctx = ensuredContext(ctx)

	// updated_at is always written so the statement touches the row even when the
	// supplied values equal the stored ones.
	updates := map[string]any{"updated_at": r.now()}
	if changes.Name != nil {
		updates["name"] = strings.TrimSpace(*changes.Name)
	}
	if changes.Origin != nil {
		updates["origin"] = strings.TrimSpace(*changes.Origin)
	}
	if changes.Abilities != nil {
		updates["abilities"] = models.NormaliseAbilities(*changes.Abilities)
	}

	var updated *models.Hero
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Hero{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}

		var hero models.Hero
		if err := tx.Take(&hero, "id = ?", id).Error; err != nil {
			return err
		}
		updated = &hero
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteByID removes a hero with a single conditional DELETE.
// ErrNotFound is returned when no row carries the id.
func (r *HeroRepository) DeleteByID(ctx context.Context, id uint) error {
	ctx = ensuredContext(ctx)

	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Hero{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
