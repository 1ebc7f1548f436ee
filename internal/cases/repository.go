package cases

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/database"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

var (
	ErrCaseNotFound = errors.New("case not found")
	// ErrDuplicateCaseNumber is a unique violation on cases.case_number.
	ErrDuplicateCaseNumber = errors.New("case number already exists")
	// ErrReferenceNotFound is a foreign-key rejection (unknown client, lawyer or case).
	ErrReferenceNotFound = errors.New("referenced client, lawyer or case not found")
	// ErrAlreadyOnTeam is a unique violation on the (case, lawyer) team pair.
	ErrAlreadyOnTeam = errors.New("lawyer already on case team")
	ErrNoFields          = database.ErrNoFields
)

// Filters narrows a case listing.
type Filters struct {
	CaseTitle string
}

// Pagination bounds a listing. Limit <= 0 returns every match.
type Pagination struct {
	Limit  int
	Offset int
}

// TeamLawyer is the display projection of a team member.
type TeamLawyer struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// CaseDetail is a case with its current team.
type CaseDetail struct {
	models.Case
	Lawyers []TeamLawyer `json:"lawyers"`
}

// AdditionalDetails are the optional opposing-side facts of a client-linked case.
type AdditionalDetails struct {
	OpposingParty      *string  `json:"opposingParty" validate:"omitempty,max=255"`
	OpposingCounsel    *string  `json:"opposingCounsel" validate:"omitempty,max=255"`
	EstimatedCaseValue *float64 `json:"estimatedCaseValue" validate:"omitempty,gte=0"`
}

// ByClientInput is a case for a client the caller has already confirmed exists.
type ByClientInput struct {
	ClientID          uint
	CaseTitle         string
	CaseNumber        string
	CaseType          string
	Jurisdiction      string
	Priority          string
	FillingDate       datatypes.Date
	CaseDescription   *string
	Status            models.CaseStatus
	AdditionalDetails AdditionalDetails
}

// Repository owns cases and their team join rows.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// translate maps store constraint errors onto this package's sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrDuplicateCaseNumber, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", ErrReferenceNotFound, err)
	default:
		return err
	}
}

// CreateCase inserts one row as given. The caller has already resolved the
// client linkage; no dual-mode checks happen here.
func (r *Repository) CreateCase(ctx context.Context, c *models.Case) (uint, error) {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return 0, translate(err)
	}
	return c.ID, nil
}

// CreateByClientID inserts a linked-mode case: client snapshot columns stay
// empty and the additional details are flattened into top-level columns.
func (r *Repository) CreateByClientID(ctx context.Context, in ByClientInput) (uint, error) {
	return r.CreateCase(ctx, in.toCase())
}

func (in ByClientInput) toCase() *models.Case {
	status := in.Status
	if status == "" {
		status = models.CaseActive
	}
	clientID := in.ClientID
	return &models.Case{
		ClientID:           &clientID,
		CaseTitle:          in.CaseTitle,
		CaseNumber:         in.CaseNumber,
		CaseType:           in.CaseType,
		Jurisdiction:       in.Jurisdiction,
		Priority:           in.Priority,
		FillingDate:        in.FillingDate,
		CaseDescription:    in.CaseDescription,
		OpposingParty:      in.AdditionalDetails.OpposingParty,
		OpposingCounsel:    in.AdditionalDetails.OpposingCounsel,
		EstimatedCaseValue: in.AdditionalDetails.EstimatedCaseValue,
		Status:             status,
	}
}

// AddLawyersToCase inserts one team row per distinct lawyer id. An empty list
// is a no-op. Unknown case or lawyer ids are rejected by the store.
func (r *Repository) AddLawyersToCase(ctx context.Context, caseID uint, lawyerIDs []uint) error {
	return addLawyers(r.db.WithContext(ctx), caseID, lawyerIDs)
}

func addLawyers(db *gorm.DB, caseID uint, lawyerIDs []uint) error {
	if len(lawyerIDs) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(lawyerIDs))
	rows := make([]models.CaseLawyer, 0, len(lawyerIDs))
	for _, id := range lawyerIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		rows = append(rows, models.CaseLawyer{CaseID: caseID, LawyerID: id})
	}
	err := db.Create(&rows).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrAlreadyOnTeam, err)
	}
	return translate(err)
}

// CreateWithTeam inserts the case and attaches its team in one transaction;
// any failure rolls both back.
func (r *Repository) CreateWithTeam(ctx context.Context, c *models.Case, lawyerIDs []uint) (uint, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return translate(err)
		}
		return addLawyers(tx, c.ID, lawyerIDs)
	})
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

// CreateByClientIDWithTeam is CreateByClientID plus team attach, atomically.
func (r *Repository) CreateByClientIDWithTeam(ctx context.Context, in ByClientInput, lawyerIDs []uint) (uint, error) {
	return r.CreateWithTeam(ctx, in.toCase(), lawyerIDs)
}

func (r *Repository) filtered(ctx context.Context, f Filters) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Case{})
	if f.CaseTitle != "" {
		q = q.Where(database.Contains("case_title"), database.Like(f.CaseTitle))
	}
	return q
}

// GetAllCases lists matching cases newest first, without team or children.
func (r *Repository) GetAllCases(ctx context.Context, f Filters, p Pagination) ([]models.Case, error) {
	q := r.filtered(ctx, f).Order("created_at DESC").Order("id DESC")
	if p.Limit > 0 {
		q = q.Limit(p.Limit).Offset(p.Offset)
	}
	rows := make([]models.Case, 0)
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetCaseByID returns the case and its team, or ErrCaseNotFound.
func (r *Repository) GetCaseByID(ctx context.Context, id uint) (*CaseDetail, error) {
	var c models.Case
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCaseNotFound
		}
		return nil, err
	}

	team := make([]TeamLawyer, 0)
	err := r.db.WithContext(ctx).
		Table("case_lawyers").
		Select("lawyers.id, lawyers.first_name, lawyers.last_name").
		Joins("JOIN lawyers ON lawyers.id = case_lawyers.lawyer_id").
		Where("case_lawyers.case_id = ?", id).
		Order("case_lawyers.id ASC").
		Scan(&team).Error
	if err != nil {
		return nil, err
	}
	return &CaseDetail{Case: c, Lawyers: team}, nil
}

// UpdateCaseByID writes only the given columns. An empty map returns
// ErrNoFields without touching the store. The bool reports whether the row existed.
func (r *Repository) UpdateCaseByID(ctx context.Context, id uint, fields map[string]any) (bool, error) {
	ok, err := database.UpdateByID[models.Case](ctx, r.db, id, fields)
	return ok, translate(err)
}

// DeleteCaseByID removes the case; the store cascades to team, comments,
// notes and files.
func (r *Repository) DeleteCaseByID(ctx context.Context, id uint) (bool, error) {
	return database.DeleteByID[models.Case](ctx, r.db, id)
}

// IsLinked reports whether the case references a client. ErrCaseNotFound if absent.
func (r *Repository) IsLinked(ctx context.Context, id uint) (bool, error) {
	var c models.Case
	err := r.db.WithContext(ctx).Select("id", "client_id").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrCaseNotFound
	}
	if err != nil {
		return false, err
	}
	return c.ClientID != nil, nil
}
