package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
	"github.com/aldoetobex/legal-practice-backend/pkg/utils"
	"github.com/aldoetobex/legal-practice-backend/pkg/validation"
)

// ExistenceChecker answers whether an entity with the given id exists.
type ExistenceChecker interface {
	Exists(ctx context.Context, id uint) (bool, error)
}

// ===== DTOs =====

type CreateCaseRequest struct {
	CaseTitle          string   `json:"caseTitle" validate:"required,notblank,max=255"`
	CaseNumber         *int64   `json:"caseNumber" validate:"required,gt=0"`
	CaseType           string   `json:"caseType" validate:"required,notblank,max=100"`
	Jurisdiction       string   `json:"jurisdiction" validate:"required,notblank,max=255"`
	Priority           string   `json:"priority" validate:"required,notblank,max=50"`
	FillingDate        string   `json:"fillingDate" validate:"required,isodate"`
	CaseDescription    *string  `json:"caseDescription" validate:"omitempty,max=10000"`
	ClientID           *uint    `json:"clientId" validate:"omitempty,gt=0"`
	ClientName         *string  `json:"clientName" validate:"omitempty,max=255"`
	ClientCompany      *string  `json:"clientCompany" validate:"omitempty,max=255"`
	ClientEmail        *string  `json:"clientEmail" validate:"omitempty,email,max=255"`
	ClientPhone        *string  `json:"clientPhone" validate:"omitempty,phone"`
	ClientAddress      *string  `json:"clientAddress" validate:"omitempty,max=1000"`
	OpposingParty      *string  `json:"opposingParty" validate:"omitempty,max=255"`
	OpposingCounsel    *string  `json:"opposingCounsel" validate:"omitempty,max=255"`
	EstimatedCaseValue *float64 `json:"estimatedCaseValue" validate:"omitempty,gte=0"`
	Status             string   `json:"status" validate:"omitempty,oneof=open closed pending"`
	Lawyers            []uint   `json:"lawyers" validate:"omitempty,dive,gt=0"`
}

// CaseNumberInput accepts either a JSON string or a JSON number.
type CaseNumberInput string

func (n *CaseNumberInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = CaseNumberInput(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return fmt.Errorf("caseNumberInput must be a string or a number")
	}
	*n = CaseNumberInput(num.String())
	return nil
}

type CreateByClientRequest struct {
	ClientID          uint              `json:"clientId" validate:"required,gt=0"`
	CaseTitle         string            `json:"caseTitle" validate:"required,notblank,max=255"`
	CaseNumberInput   CaseNumberInput   `json:"caseNumberInput" swaggertype:"string" validate:"required,max=90"`
	CaseType          string            `json:"caseType" validate:"required,notblank,max=100"`
	Jurisdiction      string            `json:"jurisdiction" validate:"required,notblank,max=255"`
	Priority          string            `json:"priority" validate:"required,notblank,max=50"`
	FillingDate       string            `json:"fillingDate" validate:"required,isodate"`
	CaseDescription   string            `json:"caseDescription" validate:"required,notblank,max=10000"`
	AdditionalDetails AdditionalDetails `json:"additionalDetails"`
	Lawyers           []uint            `json:"lawyers" validate:"omitempty,dive,gt=0"`
	Status            string            `json:"status" validate:"omitempty,oneof=open closed pending active"`
}

// UpdateCaseRequest carries only the fields to change. JSON null counts as
// absent. The client link itself cannot be changed here.
type UpdateCaseRequest struct {
	CaseTitle          *string  `json:"caseTitle" validate:"omitempty,notblank,max=255"`
	CaseNumber         *string  `json:"caseNumber" validate:"omitempty,notblank,max=100"`
	CaseType           *string  `json:"caseType" validate:"omitempty,notblank,max=100"`
	Jurisdiction       *string  `json:"jurisdiction" validate:"omitempty,notblank,max=255"`
	Priority           *string  `json:"priority" validate:"omitempty,notblank,max=50"`
	FillingDate        *string  `json:"fillingDate" validate:"omitempty,isodate"`
	CaseDescription    *string  `json:"caseDescription" validate:"omitempty,max=10000"`
	ClientName         *string  `json:"clientName" validate:"omitempty,max=255"`
	ClientCompany      *string  `json:"clientCompany" validate:"omitempty,max=255"`
	ClientEmail        *string  `json:"clientEmail" validate:"omitempty,email,max=255"`
	ClientPhone        *string  `json:"clientPhone" validate:"omitempty,phone"`
	ClientAddress      *string  `json:"clientAddress" validate:"omitempty,max=1000"`
	OpposingParty      *string  `json:"opposingParty" validate:"omitempty,max=255"`
	OpposingCounsel    *string  `json:"opposingCounsel" validate:"omitempty,max=255"`
	EstimatedCaseValue *float64 `json:"estimatedCaseValue" validate:"omitempty,gte=0"`
	Status             *string  `json:"status" validate:"omitempty,oneof=open closed pending active"`
}

// touchesSnapshot reports whether any client snapshot column is being written.
func (in UpdateCaseRequest) touchesSnapshot() bool {
	return in.ClientName != nil || in.ClientCompany != nil || in.ClientEmail != nil ||
		in.ClientPhone != nil || in.ClientAddress != nil
}

// Changes maps the provided fields to column names.
func (in UpdateCaseRequest) Changes() map[string]any {
	out := map[string]any{}
	for col, v := range map[string]*string{
		"case_title":       in.CaseTitle,
		"case_number":      in.CaseNumber,
		"case_type":        in.CaseType,
		"jurisdiction":     in.Jurisdiction,
		"priority":         in.Priority,
		"case_description": in.CaseDescription,
		"client_name":      in.ClientName,
		"client_company":   in.ClientCompany,
		"client_email":     in.ClientEmail,
		"client_phone":     in.ClientPhone,
		"client_address":   in.ClientAddress,
		"opposing_party":   in.OpposingParty,
		"opposing_counsel": in.OpposingCounsel,
		"status":           in.Status,
	} {
		if v != nil {
			out[col] = *v
		}
	}
	if in.FillingDate != nil {
		// validated by isodate
		d, _ := parseDate(*in.FillingDate)
		out["filling_date"] = d
	}
	if in.EstimatedCaseValue != nil {
		out["estimated_case_value"] = *in.EstimatedCaseValue
	}
	return out
}

type CreatedCase struct {
	CaseID     uint   `json:"caseId"`
	CaseNumber string `json:"caseNumber"`
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := validation.ParseDate(s)
	if err != nil {
		return datatypes.Date{}, err
	}
	y, m, d := t.Date()
	return datatypes.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)), nil
}

type Handler struct {
	repo    *Repository
	clients ExistenceChecker
}

func NewHandler(db *gorm.DB, clients ExistenceChecker) *Handler {
	return &Handler{repo: NewRepository(db), clients: clients}
}

func (h *Handler) requireClient(ctx context.Context, id uint) error {
	ok, err := h.clients.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check client: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Client not found")
	}
	return nil
}

// writeError maps repository sentinels onto HTTP errors.
func writeError(err error, op string) error {
	switch {
	case errors.Is(err, ErrDuplicateCaseNumber):
		return fiber.NewError(fiber.StatusConflict, "Case number already exists")
	case errors.Is(err, ErrReferenceNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Referenced client or lawyer not found")
	case errors.Is(err, ErrCaseNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Case not found")
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// Create Case godoc
// @Summary      Create case
// @Description  With clientId the case is linked to that client; without it clientName, clientEmail and clientPhone are stored on the case
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateCaseRequest  true  "Case payload"
// @Success      200      {object}  models.Envelope    "data: CreatedCase"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Failure      409      {object}  models.ErrorResponse
// @Failure      500      {object}  models.ErrorResponse
// @Router       /cases [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	ref, missing := ResolveClientRef(in.ClientID, in.ClientName, in.ClientCompany, in.ClientEmail, in.ClientPhone, in.ClientAddress)
	if len(missing) > 0 {
		errs := make(map[string][]string, len(missing))
		for _, f := range missing {
			errs[f] = []string{"This field is required when clientId is not provided"}
		}
		return validation.Respond(c, errs)
	}
	if linked, ok := ref.(LinkedClient); ok {
		if err := h.requireClient(c.UserContext(), linked.ID); err != nil {
			return err
		}
	}

	filling, _ := parseDate(in.FillingDate)
	status := models.CaseOpen
	if in.Status != "" {
		status = models.CaseStatus(in.Status)
	}
	cs := models.Case{
		CaseTitle:          strings.TrimSpace(in.CaseTitle),
		CaseNumber:         strconv.FormatInt(*in.CaseNumber, 10),
		CaseType:           strings.TrimSpace(in.CaseType),
		Jurisdiction:       strings.TrimSpace(in.Jurisdiction),
		Priority:           strings.TrimSpace(in.Priority),
		FillingDate:        filling,
		CaseDescription:    in.CaseDescription,
		OpposingParty:      in.OpposingParty,
		OpposingCounsel:    in.OpposingCounsel,
		EstimatedCaseValue: in.EstimatedCaseValue,
		Status:             status,
	}
	ref.apply(&cs)

	id, err := h.repo.CreateWithTeam(c.UserContext(), &cs, in.Lawyers)
	if err != nil {
		return writeError(err, "create case")
	}
	return utils.OK(c, "Case created successfully", CreatedCase{CaseID: id, CaseNumber: cs.CaseNumber})
}

// Create Case By Client godoc
// @Summary      Create case for an existing client
// @Description  caseNumber is "CASE-" + caseNumberInput; status defaults to active
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateByClientRequest  true  "Case payload"
// @Success      200      {object}  models.Envelope        "data: CreatedCase"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Failure      409      {object}  models.ErrorResponse
// @Failure      500      {object}  models.ErrorResponse
// @Router       /cases/client_id [post]
func (h *Handler) CreateByClientID(c *fiber.Ctx) error {
	var in CreateByClientRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
			Status:  false,
			Message: "Missing required fields",
			Errors:  errs,
		})
	}
	if err := h.requireClient(c.UserContext(), in.ClientID); err != nil {
		return err
	}

	filling, _ := parseDate(in.FillingDate)
	input := ByClientInput{
		ClientID:          in.ClientID,
		CaseTitle:         strings.TrimSpace(in.CaseTitle),
		CaseNumber:        "CASE-" + string(in.CaseNumberInput),
		CaseType:          strings.TrimSpace(in.CaseType),
		Jurisdiction:      strings.TrimSpace(in.Jurisdiction),
		Priority:          strings.TrimSpace(in.Priority),
		FillingDate:       filling,
		CaseDescription:   &in.CaseDescription,
		Status:            models.CaseStatus(in.Status),
		AdditionalDetails: in.AdditionalDetails,
	}
	id, err := h.repo.CreateByClientIDWithTeam(c.UserContext(), input, in.Lawyers)
	if err != nil {
		return writeError(err, "create case by client")
	}
	return utils.OK(c, "Case created successfully linked to client", CreatedCase{CaseID: id, CaseNumber: input.CaseNumber})
}

// List Cases godoc
// @Summary      List cases
// @Description  Newest first; team and child collections are not included
// @Tags         cases
// @Produce      json
// @Param        caseTitle  query  string  false  "title substring, case-insensitive"
// @Param        page       query  int     false  "page"
// @Param        limit      query  int     false  "limit"
// @Success      200  {object}  models.Envelope  "data: []models.Case"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /cases [get]
func (h *Handler) List(c *fiber.Ctx) error {
	_, limit, offset := utils.ParsePage(c)
	rows, err := h.repo.GetAllCases(c.UserContext(),
		Filters{CaseTitle: strings.TrimSpace(c.Query("caseTitle"))},
		Pagination{Limit: limit, Offset: offset})
	if err != nil {
		return fmt.Errorf("list cases: %w", err)
	}
	return utils.OK(c, "Cases fetched successfully", rows)
}

// Get Case godoc
// @Summary      Get case with its team
// @Tags         cases
// @Produce      json
// @Param        id   path      int  true  "case id"
// @Success      200  {object}  models.Envelope  "data: CaseDetail"
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id} [get]
func (h *Handler) Get(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.repo.GetCaseByID(c.UserContext(), id)
	if err != nil {
		return writeError(err, "get case")
	}
	return utils.OK(c, "Case fetched successfully", detail)
}

// Update Case godoc
// @Summary      Update case
// @Description  Client snapshot fields can only be edited on cases without a linked client
// @Tags         cases
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "case id"
// @Param        payload  body      UpdateCaseRequest  true  "Fields to change"
// @Success      200      {object}  models.Envelope
// @Failure      400      {object}  models.ErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Failure      409      {object}  models.ErrorResponse
// @Router       /cases/{id} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	var in UpdateCaseRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}
	changes := in.Changes()
	if len(changes) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No valid fields provided for update")
	}

	if in.touchesSnapshot() {
		linked, err := h.repo.IsLinked(c.UserContext(), id)
		if errors.Is(err, ErrCaseNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Case not found or no changes made")
		}
		if err != nil {
			return fmt.Errorf("check case link: %w", err)
		}
		if linked {
			return fiber.NewError(fiber.StatusBadRequest, "Client details cannot be edited on a case linked to a client")
		}
	}

	ok, err := h.repo.UpdateCaseByID(c.UserContext(), id, changes)
	if err != nil {
		return writeError(err, "update case")
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Case not found or no changes made")
	}
	return utils.OK(c, "Case updated successfully", nil)
}

// Delete Case godoc
// @Summary      Delete case
// @Description  Removes the team, comments, notes and files with it
// @Tags         cases
// @Produce      json
// @Param        id   path      int  true  "case id"
// @Success      200  {object}  models.Envelope
// @Failure      404  {object}  models.ErrorResponse
// @Router       /cases/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.repo.DeleteCaseByID(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Case not found")
	}
	return utils.OK(c, "Case deleted successfully", nil)
}
