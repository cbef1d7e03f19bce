package repositoryImp

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"gardenguru/entities"
	"gardenguru/pkg/apperr"
	"gardenguru/pkg/plant/repository"
)

type plantRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlantRepository { return &plantRepo{db} }

func (r *plantRepo) Create(ctx context.Context, p *entities.Plant) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// FindByID scopes by owner unless ownerID is empty.
func (r *plantRepo) FindByID(ctx context.Context, id, ownerID string) (*entities.Plant, error) {
	var p entities.Plant
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	if err := q.First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("plant not found")
		}
		return nil, err
	}
	return &p, nil
}

func (r *plantRepo) ListByOwner(ctx context.Context, ownerID string) ([]entities.Plant, error) {
	var ps []entities.Plant
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

// Search matches the user-defined, common and scientific names case-insensitively.
func (r *plantRepo) Search(ctx context.Context, query, ownerID string) ([]entities.Plant, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	q := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(common_name) LIKE ? OR LOWER(scientific_name) LIKE ?", like, like, like)
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	var ps []entities.Plant
	if err := q.Order("name ASC").Find(&ps).Error; err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *plantRepo) Update(ctx context.Context, p *entities.Plant) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *plantRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	q := r.db.WithContext(ctx).Where("id = ?", id)
	if ownerID != "" {
		q = q.Where("owner_id = ?", ownerID)
	}
	res := q.Delete(&entities.Plant{})
	return res.RowsAffected > 0, res.Error
}
