// Package casemanager owns the collections hanging off a case: comments,
// notes, team membership and uploaded files. Every row is removed by the
// store when its case is deleted.
package casemanager

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

var (
	ErrCaseNotFound         = errors.New("case not found")
	ErrCaseOrLawyerNotFound = errors.New("case or lawyer not found")
	ErrAlreadyOnTeam        = errors.New("lawyer already on case team")
)

// TeamMember is the display projection of a lawyer on a case team.
type TeamMember struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// insert creates row and maps a foreign-key rejection onto notFound.
func (r *Repository) insert(ctx context.Context, row any, notFound error) error {
	err := r.db.WithContext(ctx).Create(row).Error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", notFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %v", ErrAlreadyOnTeam, err)
	default:
		return err
	}
}

func newestFirst[T any](ctx context.Context, db *gorm.DB, caseID uint, tsColumn string) ([]T, error) {
	rows := make([]T, 0)
	err := db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order(tsColumn + " DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) AddComment(ctx context.Context, caseID uint, text string) (uint, error) {
	row := models.CaseComment{CaseID: caseID, Comment: text}
	if err := r.insert(ctx, &row, ErrCaseNotFound); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *Repository) GetComments(ctx context.Context, caseID uint) ([]models.CaseComment, error) {
	return newestFirst[models.CaseComment](ctx, r.db, caseID, "created_at")
}

func (r *Repository) AddNote(ctx context.Context, caseID uint, title, description string) (uint, error) {
	row := models.CaseNote{CaseID: caseID, Title: title, Description: description}
	if err := r.insert(ctx, &row, ErrCaseNotFound); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *Repository) GetNotes(ctx context.Context, caseID uint) ([]models.CaseNote, error) {
	return newestFirst[models.CaseNote](ctx, r.db, caseID, "created_at")
}

// AddLawyer puts a lawyer on the team and returns the membership id.
// A repeated pair returns ErrAlreadyOnTeam.
func (r *Repository) AddLawyer(ctx context.Context, caseID, lawyerID uint) (uint, error) {
	row := models.CaseLawyer{CaseID: caseID, LawyerID: lawyerID}
	if err := r.insert(ctx, &row, ErrCaseOrLawyerNotFound); err != nil {
		return 0, err
	}
	return row.ID, nil
}

// RemoveLawyer reports whether the membership existed. An absent pair is
// a negative result, not an error.
func (r *Repository) RemoveLawyer(ctx context.Context, caseID, lawyerID uint) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("case_id = ? AND lawyer_id = ?", caseID, lawyerID).
		Delete(&models.CaseLawyer{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetTeamLawyers lists the team in the order members were added.
func (r *Repository) GetTeamLawyers(ctx context.Context, caseID uint) ([]TeamMember, error) {
	team := make([]TeamMember, 0)
	err := r.db.WithContext(ctx).
		Table("case_lawyers").
		Select("lawyers.id, lawyers.first_name, lawyers.last_name, lawyers.email").
		Joins("JOIN lawyers ON lawyers.id = case_lawyers.lawyer_id").
		Where("case_lawyers.case_id = ?", caseID).
		Order("case_lawyers.id ASC").
		Scan(&team).Error
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *Repository) AddFile(ctx context.Context, caseID uint, filename, location string) (uint, error) {
	row := models.CaseFile{CaseID: caseID, Filename: filename, FileURL: location}
	if err := r.insert(ctx, &row, ErrCaseNotFound); err != nil {
		return 0, err
	}
	return row.ID, nil
}

func (r *Repository) GetFiles(ctx context.Context, caseID uint) ([]models.CaseFile, error) {
	return newestFirst[models.CaseFile](ctx, r.db, caseID, "uploaded_at")
}
