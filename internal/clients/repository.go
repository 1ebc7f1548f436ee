package clients

import (
	"context"

	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/database"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

// Filters narrows a client listing.
type Filters struct {
	Name   string
	Status string
}

// Repository persists clients.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, cl *models.Client) (uint, error) {
	if err := r.db.WithContext(ctx).Create(cl).Error; err != nil {
		return 0, err
	}
	return cl.ID, nil
}

func (r *Repository) List(ctx context.Context, f Filters, limit, offset int) ([]models.Client, error) {
	q := r.db.WithContext(ctx).Model(&models.Client{})
	if f.Name != "" {
		like := database.Like(f.Name)
		q = q.Where("("+database.Contains("first_name")+" OR "+database.Contains("last_name")+")", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	rows := make([]models.Client, 0, limit)
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	return database.UpdateByID[models.Client](ctx, r.db, id, fields)
}

// DeleteByID removes the client. Linked cases keep their row with client_id nulled.
func (r *Repository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	return database.DeleteByID[models.Client](ctx, r.db, id)
}

// Exists reports whether a client with id exists.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	return database.ExistsByID[models.Client](ctx, r.db, id)
}
