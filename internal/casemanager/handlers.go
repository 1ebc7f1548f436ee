package casemanager

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/internal/storage"
	"github.com/aldoetobex/legal-practice-backend/pkg/utils"
	"github.com/aldoetobex/legal-practice-backend/pkg/validation"
)

// MaxFileSize caps a single upload.
const MaxFileSize = 10 * 1024 * 1024

// ===== DTOs =====

// AddCommentRequest text is stored as sent, as are note fields; clients
// escape them when rendering.
type AddCommentRequest struct {
	Comment string `json:"comment" validate:"required,notblank,max=5000"`
}

type AddNoteRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank,max=10000"`
}

type AddLawyerRequest struct {
	LawyerID uint `json:"lawyerId" validate:"required,gt=0"`
}

type UploadedFile struct {
	FileID  uint   `json:"fileId"`
	FileURL string `json:"fileUrl"`
}

type Handler struct {
	repo   *Repository
	store  storage.Store
	logger *slog.Logger
}

func NewHandler(db *gorm.DB, store storage.Store, logger *slog.Logger) *Handler {
	return &Handler{repo: NewRepository(db), store: store, logger: logger}
}

// bind parses and validates the body. On false the caller returns err as is;
// a validation failure has already been written.
func bind(c *fiber.Ctx, in any) (bool, error) {
	if err := c.BodyParser(in); err != nil {
		return false, fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return false, validation.Respond(c, errs)
	}
	return true, nil
}

func notFound(err error, op string) error {
	switch {
	case errors.Is(err, ErrCaseNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Case not found")
	case errors.Is(err, ErrCaseOrLawyerNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Case or lawyer not found")
	case errors.Is(err, ErrAlreadyOnTeam):
		return fiber.NewError(fiber.StatusConflict, "Lawyer is already on this case")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Add Comment godoc
// @Summary      Add comment to case
// @Tags         case-manager
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "case id"
// @Param        payload  body      AddCommentRequest  true  "Comment"
// @Success      200      {object}  models.Envelope    "data: {commentId}"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Router       /cases/manager/{id}/comments [post]
func (h *Handler) AddComment(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	var in AddCommentRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, err := h.repo.AddComment(c.UserContext(), caseID, in.Comment)
	if err != nil {
		return notFound(err, "add comment")
	}
	return utils.OK(c, "Comment added successfully", fiber.Map{"commentId": id})
}

// Get Comments godoc
// @Summary      List case comments, newest first
// @Tags         case-manager
// @Produce      json
// @Param        id   path      int  true  "case id"
// @Success      200  {object}  models.Envelope  "data: []models.CaseComment"
// @Router       /cases/manager/{id}/comments [get]
func (h *Handler) GetComments(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	rows, err := h.repo.GetComments(c.UserContext(), caseID)
	if err != nil {
		return fmt.Errorf("get comments: %w", err)
	}
	return utils.OK(c, "Comments fetched successfully", rows)
}

// Add Note godoc
// @Summary      Add note to case
// @Tags         case-manager
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "case id"
// @Param        payload  body      AddNoteRequest  true  "Note"
// @Success      200      {object}  models.Envelope "data: {noteId}"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Router       /cases/manager/{id}/notes [post]
func (h *Handler) AddNote(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	var in AddNoteRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, err := h.repo.AddNote(c.UserContext(), caseID, in.Title, in.Description)
	if err != nil {
		return notFound(err, "add note")
	}
	return utils.OK(c, "Note added successfully", fiber.Map{"noteId": id})
}

// Get Notes godoc
// @Summary      List case notes, newest first
// @Tags         case-manager
// @Produce      json
// @Param        id   path      int  true  "case id"
// @Success      200  {object}  models.Envelope  "data: []models.CaseNote"
// @Router       /cases/manager/{id}/notes [get]
func (h *Handler) GetNotes(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	rows, err := h.repo.GetNotes(c.UserContext(), caseID)
	if err != nil {
		return fmt.Errorf("get notes: %w", err)
	}
	return utils.OK(c, "Notes fetched successfully", rows)
}

// Add Lawyer godoc
// @Summary      Add lawyer to case team
// @Tags         case-manager
// @Accept       json
// @Produce      json
// @Param        id       path      int               true  "case id"
// @Param        payload  body      AddLawyerRequest  true  "Lawyer"
// @Success      200      {object}  models.Envelope   "data: {addedId}"
// @Failure      404      {object}  models.ErrorResponse
// @Failure      409      {object}  models.ErrorResponse
// @Router       /cases/manager/{id}/lawyers [post]
func (h *Handler) AddLawyer(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	var in AddLawyerRequest
	if ok, err := bind(c, &in); !ok {
		return err
	}
	id, err := h.repo.AddLawyer(c.UserContext(), caseID, in.LawyerID)
	if err != nil {
		return notFound(err, "add lawyer")
	}
	return utils.OK(c, "Lawyer added to case successfully", fiber.Map{"addedId": id})
}

// Remove Lawyer godoc
// @Summary      Remove lawyer from case team
// @Tags         case-manager
// @Produce      json
// @Param        id        path      int  true  "case id"
// @Param        lawyerId  path      int  true  "lawyer id"
// @Success      200       {object}  models.Envelope
// @Failure      404       {object}  models.ErrorResponse
// @Router       /cases/manager/{id}/lawyers/{lawyerId} [delete]
func (h *Handler) RemoveLawyer(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	lawyerID, err := utils.ParseID(c, "lawyerId")
	if err != nil {
		return err
	}
	ok, err := h.repo.RemoveLawyer(c.UserContext(), caseID, lawyerID)
	if err != nil {
		return fmt.Errorf("remove lawyer: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Case or lawyer not found")
	}
	return utils.OK(c, "Lawyer removed from case successfully", nil)
}

// Get Team godoc
// @Summary      List case team
// @Tags         case-manager
// @Produce      json
// @Param        id   path      int  true  "case id"
// @Success      200  {object}  models.Envelope  "data: []TeamMember"
// @Router       /cases/manager/{id}/lawyers [get]
func (h *Handler) GetTeamLawyers(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	team, err := h.repo.GetTeamLawyers(c.UserContext(), caseID)
	if err != nil {
		return fmt.Errorf("get team: %w", err)
	}
	return utils.OK(c, "Team lawyers fetched successfully", team)
}

// Upload File godoc
// @Summary      Upload a case document
// @Description  Stores the blob and records its location on the case
// @Tags         case-manager
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "case id"
// @Param        file  formData  file  true  "document (max 10MB)"
// @Success      200   {object}  models.Envelope  "data: UploadedFile"
// @Failure      400   {object}  models.ErrorResponse
// @Failure      404   {object}  models.ErrorResponse
// @Failure      500   {object}  models.ErrorResponse
// @Router       /cases/manager/{id}/files [post]
func (h *Handler) UploadFile(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "file is required (multipart field: file)")
	}
	if fh.Size <= 0 {
		return fiber.NewError(fiber.StatusBadRequest, "empty file")
	}
	if fh.Size > MaxFileSize {
		return fiber.NewError(fiber.StatusBadRequest, "max 10MB per file")
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = mime.TypeByExtension(filepath.Ext(fh.Filename))
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	ctx := c.UserContext()
	key := storage.ObjectKey(caseID, fh.Filename)
	location, err := h.store.Put(ctx, key, f, ct, fh.Size)
	if err != nil {
		return fmt.Errorf("store upload: %w", err)
	}

	id, err := h.repo.AddFile(ctx, caseID, filepath.Base(fh.Filename), location)
	if err != nil {
		if derr := h.store.Delete(ctx, key); derr != nil {
			h.logger.Warn("orphaned upload", slog.String("key", key), slog.Any("err", derr))
		}
		return notFound(err, "record upload")
	}
	return utils.OK(c, "File uploaded successfully", UploadedFile{FileID: id, FileURL: location})
}

// Get Files godoc
// @Summary      List case files, newest first
// @Tags         case-manager
// @Produce      json
// @Param        id   path      int  true  "case id"
// @Success      200  {object}  models.Envelope  "data: []models.CaseFile"
// @Router       /cases/manager/{id}/files [get]
func (h *Handler) GetFiles(c *fiber.Ctx) error {
	caseID, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	rows, err := h.repo.GetFiles(c.UserContext(), caseID)
	if err != nil {
		return fmt.Errorf("get files: %w", err)
	}
	return utils.OK(c, "Files fetched successfully", rows)
}
