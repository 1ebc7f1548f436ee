package blogs

import (
	"context"

	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/database"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
	"github.com/aldoetobex/legal-practice-backend/pkg/sanitize"
)

const excerptLen = 160

// View is a blog as listed: publication state and a plain-text excerpt.
type View struct {
	models.Blog
	Status  string `json:"status"`
	Excerpt string `json:"excerpt"`
}

func newView(b models.Blog) View {
	status := "Draft"
	if b.IsPosted {
		status = "Posted"
	}
	return View{Blog: b, Status: status, Excerpt: sanitize.Summary(sanitize.Text(b.Brief), excerptLen)}
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, b *models.Blog) (uint, error) {
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		return 0, err
	}
	return b.ID, nil
}

func (r *Repository) List(ctx context.Context, title string, limit, offset int) ([]View, error) {
	q := r.db.WithContext(ctx).Model(&models.Blog{})
	if title != "" {
		q = q.Where(database.Contains("title"), database.Like(title))
	}
	var rows []models.Blog
	if err := q.Order("created_on DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]View, 0, len(rows))
	for _, b := range rows {
		out = append(out, newView(b))
	}
	return out, nil
}

func (r *Repository) UpdateByID(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	return database.UpdateByID[models.Blog](ctx, r.db, id, fields)
}

func (r *Repository) DeleteByID(ctx context.Context, id uint) (bool, error) {
	return database.DeleteByID[models.Blog](ctx, r.db, id)
}
