package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
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

type CreateClientRequest struct {
	ClientType     string  `json:"clientType" validate:"required,max=100"`
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Email          string  `json:"email" validate:"required,email,max=255"`
	PhoneNumber    string  `json:"phoneNumber" validate:"required,phone"`
	AltPhoneNumber *string `json:"altPhoneNumber" validate:"omitempty,phone"`
	Website        *string `json:"website" validate:"omitempty,url,max=255"`
	StreetAddress  string  `json:"streetAddress" validate:"required,max=255"`
	City           string  `json:"city" validate:"required,max=100"`
	State          string  `json:"state" validate:"required,max=100"`
	ZipCode        string  `json:"zipCode" validate:"required,max=20"`
	Country        string  `json:"country" validate:"required,max=100"`
	AssignedLawyer uint    `json:"assignedLawyer" validate:"required,gt=0"`
	Priority       string  `json:"priority" validate:"required,oneof=Low Medium High"`
	Billed         *bool   `json:"billed" validate:"required"`
	Notes          *string `json:"notes" validate:"omitempty,max=5000"`
	Status         string  `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UpdateClientRequest carries only the fields to change. JSON null counts as absent.
type UpdateClientRequest struct {
	ClientType     *string `json:"clientType" validate:"omitempty,min=1,max=100"`
	FirstName      *string `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName       *string `json:"lastName" validate:"omitempty,min=1,max=100"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	PhoneNumber    *string `json:"phoneNumber" validate:"omitempty,phone"`
	AltPhoneNumber *string `json:"altPhoneNumber" validate:"omitempty,phone"`
	Website        *string `json:"website" validate:"omitempty,url,max=255"`
	StreetAddress  *string `json:"streetAddress" validate:"omitempty,min=1,max=255"`
	City           *string `json:"city" validate:"omitempty,min=1,max=100"`
	State          *string `json:"state" validate:"omitempty,min=1,max=100"`
	ZipCode        *string `json:"zipCode" validate:"omitempty,min=1,max=20"`
	Country        *string `json:"country" validate:"omitempty,min=1,max=100"`
	AssignedLawyer *uint   `json:"assignedLawyer" validate:"omitempty,gt=0"`
	Priority       *string `json:"priority" validate:"omitempty,oneof=Low Medium High"`
	Billed         *bool   `json:"billed"`
	Notes          *string `json:"notes" validate:"omitempty,max=5000"`
	Status         *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// Changes maps the provided fields to column names.
func (in UpdateClientRequest) Changes() map[string]any {
	out := map[string]any{}
	for col, v := range map[string]*string{
		"client_type":      in.ClientType,
		"first_name":       in.FirstName,
		"last_name":        in.LastName,
		"email":            in.Email,
		"phone_number":     in.PhoneNumber,
		"alt_phone_number": in.AltPhoneNumber,
		"website":          in.Website,
		"street_address":   in.StreetAddress,
		"city":             in.City,
		"state":            in.State,
		"zip_code":         in.ZipCode,
		"country":          in.Country,
		"priority":         in.Priority,
		"notes":            in.Notes,
		"status":           in.Status,
	} {
		if v != nil {
			out[col] = strings.TrimSpace(*v)
		}
	}
	if in.AssignedLawyer != nil {
		out["assigned_lawyer"] = *in.AssignedLawyer
	}
	if in.Billed != nil {
		out["billed"] = *in.Billed
	}
	return out
}

type Handler struct {
	repo    *Repository
	lawyers ExistenceChecker
}

func NewHandler(db *gorm.DB, lawyers ExistenceChecker) *Handler {
	return &Handler{repo: NewRepository(db), lawyers: lawyers}
}

// Create Client godoc
// @Summary      Create client
// @Description  The assigned lawyer must exist
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateClientRequest  true  "Client payload"
// @Success      200      {object}  models.Envelope      "data: {id}"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      500      {object}  models.ErrorResponse
// @Router       /clients [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateClientRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	ok, err := h.lawyers.Exists(c.UserContext(), in.AssignedLawyer)
	if err != nil {
		return fmt.Errorf("check lawyer: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Assigned lawyer does not exist")
	}

	status := models.ClientActive
	if in.Status != "" {
		status = models.ClientStatus(in.Status)
	}
	cl := models.Client{
		ClientType:       strings.TrimSpace(in.ClientType),
		FirstName:        strings.TrimSpace(in.FirstName),
		LastName:         strings.TrimSpace(in.LastName),
		Email:            strings.TrimSpace(in.Email),
		PhoneNumber:      strings.TrimSpace(in.PhoneNumber),
		AltPhoneNumber:   in.AltPhoneNumber,
		Website:          in.Website,
		StreetAddress:    strings.TrimSpace(in.StreetAddress),
		City:             strings.TrimSpace(in.City),
		State:            strings.TrimSpace(in.State),
		ZipCode:          strings.TrimSpace(in.ZipCode),
		Country:          strings.TrimSpace(in.Country),
		AssignedLawyerID: in.AssignedLawyer,
		Priority:         in.Priority,
		Billed:           *in.Billed,
		Notes:            in.Notes,
		Status:           status,
	}
	id, err := h.repo.Create(c.UserContext(), &cl)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return utils.OK(c, "Client created successfully", fiber.Map{"id": id})
}

// List Clients godoc
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Param        name    query  string  false  "first/last name substring"
// @Param        status  query  string  false  "active | inactive"
// @Param        page    query  int     false  "page"
// @Param        limit   query  int     false  "limit"
// @Success      200  {object}  models.Envelope  "data: []models.Client"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /clients [get]
func (h *Handler) List(c *fiber.Ctx) error {
	_, limit, offset := utils.ParsePage(c)
	rows, err := h.repo.List(c.UserContext(), Filters{
		Name:   strings.TrimSpace(c.Query("name")),
		Status: strings.TrimSpace(c.Query("status")),
	}, limit, offset)
	if err != nil {
		return fmt.Errorf("list clients: %w", err)
	}
	return utils.OK(c, "Clients fetched successfully", rows)
}

// Update Client godoc
// @Summary      Update client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "client id"
// @Param        payload  body      UpdateClientRequest  true  "Fields to change"
// @Success      200      {object}  models.Envelope
// @Failure      400      {object}  models.ErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Router       /clients/{id} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	var in UpdateClientRequest
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

	if in.AssignedLawyer != nil {
		ok, err := h.lawyers.Exists(c.UserContext(), *in.AssignedLawyer)
		if err != nil {
			return fmt.Errorf("check lawyer: %w", err)
		}
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Assigned lawyer with id %d does not exist", *in.AssignedLawyer))
		}
	}

	ok, err := h.repo.UpdateByID(c.UserContext(), id, changes)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Client not found or no changes made")
	}
	return utils.OK(c, "Client updated successfully", nil)
}

// Delete Client godoc
// @Summary      Delete client
// @Description  Linked cases survive with clientId set to null
// @Tags         clients
// @Produce      json
// @Param        id   path      int  true  "client id"
// @Success      200  {object}  models.Envelope
// @Failure      404  {object}  models.ErrorResponse
// @Router       /clients/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.repo.DeleteByID(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Client not found")
	}
	return utils.OK(c, "Client deleted successfully", nil)
}
