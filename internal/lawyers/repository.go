package lawyers

import (
	"context"

	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/database"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

// Filters narrows a lawyer listing. Zero values mean "no filter".
type Filters struct {
	Name          string
	LawyerType    string
	Country       string
	MinExperience *int
}

// Repository persists lawyers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, l *models.Lawyer) (uint, error) {
	if err := r.db.WithContext(ctx).Create(l).Error; err != nil {
		return 0, err
	}
	return l.ID, nil
}

func (r *Repository) List(ctx context.Context, f Filters, limit, offset int) ([]models.Lawyer, error) {
	q := r.db.WithContext(ctx).Model(&models.Lawyer{})
	if f.Name != "" {
		like := database.Like(f.Name)
		q = q.Where("("+database.Contains("first_name")+" OR "+database.Contains("last_name")+")", like, like)
	}
	if f.LawyerType != "" {
		q = q.Where("lawyer_type = ?", f.LawyerType)
	}
	if f.Country != "" {
		q = q.Where("country = ?", f.Country)
	}
	if f.MinExperience != nil {
		q = q.Where("years_of_experience >= ?", *f.MinExperience)
	}

	rows := make([]models.Lawyer, 0, limit)
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	return database.UpdateByID[models.Lawyer](ctx, r.db, id, fields)
}

// DeleteByID removes the lawyer. The store cascades to their clients,
// appointments and case-team memberships.
func (r *Repository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	return database.DeleteByID[models.Lawyer](ctx, r.db, id)
}

// Exists reports whether a lawyer with id exists.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	return database.ExistsByID[models.Lawyer](ctx, r.db, id)
}
