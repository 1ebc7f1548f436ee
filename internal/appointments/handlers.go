package appointments

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
	"github.com/aldoetobex/legal-practice-backend/pkg/utils"
	"github.com/aldoetobex/legal-practice-backend/pkg/validation"
)

// ByLawyerLimit bounds the per-lawyer listing, which is not paginated.
const ByLawyerLimit = 1000

// ===== DTOs =====

type CreateAppointmentRequest struct {
	ClientName string `json:"clientName" validate:"required,max=255"`
	Duration   string `json:"duration" validate:"required,max=50"`
	DateTime   string `json:"dateTime" validate:"required,isodate" example:"2025-08-15T14:30:00Z"`
	BookedOn   string `json:"bookedOn" validate:"required,isodate" example:"2025-08-10T09:15:00Z"`
	LawyerID   uint   `json:"lawyer_id" validate:"required,gt=0"`
}

type Handler struct {
	repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Create Appointment godoc
// @Summary      Book an appointment
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateAppointmentRequest  true  "Appointment payload"
// @Success      200      {object}  models.Envelope           "data: {id}"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Router       /appointments [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	// both validated by isodate
	at, _ := validation.ParseDate(in.DateTime)
	booked, _ := validation.ParseDate(in.BookedOn)
	a := models.Appointment{
		ClientName: strings.TrimSpace(in.ClientName),
		Duration:   strings.TrimSpace(in.Duration),
		DateTime:   at.UTC(),
		BookedOn:   booked.UTC(),
		LawyerID:   in.LawyerID,
	}
	id, err := h.repo.Create(c.UserContext(), &a)
	if errors.Is(err, ErrLawyerNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Lawyer not found")
	}
	if err != nil {
		return fmt.Errorf("create appointment: %w", err)
	}
	return utils.OK(c, "Appointment created successfully", fiber.Map{"id": id})
}

// List Appointments godoc
// @Summary      List appointments
// @Tags         appointments
// @Produce      json
// @Param        clientName  query  string  false  "client name substring"
// @Param        date        query  string  false  "YYYY-MM-DD (UTC day)"
// @Param        lawyer_id   query  int     false  "lawyer id"
// @Param        page        query  int     false  "page"
// @Param        limit       query  int     false  "limit"
// @Success      200  {object}  models.Envelope  "data: []View"
// @Failure      400  {object}  models.ErrorResponse
// @Router       /appointments [get]
func (h *Handler) List(c *fiber.Ctx) error {
	_, limit, offset := utils.ParsePage(c)
	f := Filters{ClientName: strings.TrimSpace(c.Query("clientName"))}

	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		day, err := validation.ParseDate(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date (use YYYY-MM-DD)")
		}
		f.Day = &day
	}
	if raw := strings.TrimSpace(c.Query("lawyer_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid lawyer_id")
		}
		f.LawyerID = uint(id)
	}

	rows, err := h.repo.List(c.UserContext(), f, limit, offset)
	if err != nil {
		return fmt.Errorf("list appointments: %w", err)
	}
	return utils.OK(c, "Appointments fetched successfully", rows)
}

// List By Lawyer godoc
// @Summary      List a lawyer's appointments
// @Tags         appointments
// @Produce      json
// @Param        lawyer_id  path      int  true  "lawyer id"
// @Success      200        {object}  models.Envelope  "data: []View"
// @Failure      400        {object}  models.ErrorResponse
// @Router       /appointments/lawyer/{lawyer_id} [get]
func (h *Handler) ListByLawyer(c *fiber.Ctx) error {
	lawyerID, err := utils.ParseID(c, "lawyer_id")
	if err != nil {
		return err
	}
	rows, err := h.repo.List(c.UserContext(), Filters{LawyerID: lawyerID}, ByLawyerLimit, 0)
	if err != nil {
		return fmt.Errorf("list appointments by lawyer: %w", err)
	}
	return utils.OK(c, fmt.Sprintf("Appointments for lawyer_id %d fetched successfully", lawyerID), rows)
}
