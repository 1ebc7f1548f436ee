package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/database"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

// ErrLawyerNotFound is a foreign-key rejection on lawyer_id.
var ErrLawyerNotFound = errors.New("lawyer not found")

// Filters narrows an appointment listing. Zero values are ignored.
type Filters struct {
	ClientName string
	// Day matches appointments whose date_time falls on that UTC calendar day.
	Day      *time.Time
	LawyerID uint
}

// View adds the display id to an appointment.
type View struct {
	models.Appointment
	CustomID string `json:"customId"`
}

// CustomID renders the display id, e.g. 7 -> "A007".
func CustomID(id uint) string {
	return fmt.Sprintf("A%03d", id)
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, a *models.Appointment) (uint, error) {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return 0, fmt.Errorf("%w: %v", ErrLawyerNotFound, err)
	}
	if err != nil {
		return 0, err
	}
	return a.ID, nil
}

func (r *Repository) List(ctx context.Context, f Filters, limit, offset int) ([]View, error) {
	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if f.ClientName != "" {
		q = q.Where(database.Contains("client_name"), database.Like(f.ClientName))
	}
	if f.Day != nil {
		y, m, d := f.Day.UTC().Date()
		start := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		q = q.Where("date_time >= ? AND date_time < ?", start, start.AddDate(0, 0, 1))
	}
	if f.LawyerID != 0 {
		q = q.Where("lawyer_id = ?", f.LawyerID)
	}

	var rows []models.Appointment
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]View, 0, len(rows))
	for _, a := range rows {
		out = append(out, View{Appointment: a, CustomID: CustomID(a.ID)})
	}
	return out, nil
}
