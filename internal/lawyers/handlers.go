package lawyers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/codec"
	"github.com/aldoetobex/legal-practice-backend/pkg/models"
	"github.com/aldoetobex/legal-practice-backend/pkg/utils"
	"github.com/aldoetobex/legal-practice-backend/pkg/validation"
)

// ===== DTOs =====

type CreateLawyerRequest struct {
	FirstName              string           `json:"firstName" validate:"required,max=100"`
	LastName               string           `json:"lastName" validate:"required,max=100"`
	Mobile                 string           `json:"mobile" validate:"required,phone"`
	Email                  string           `json:"email" validate:"required,email,max=255"`
	Country                string           `json:"country" validate:"required,max=100"`
	YearsOfExperience      *int             `json:"yearsOfExperience" validate:"required,gte=0"`
	Languages              codec.StringList `json:"languages" swaggertype:"array,string" validate:"required,min=1"`
	LawyerType             string           `json:"lawyerType" validate:"required,max=100"`
	About                  *string          `json:"about" validate:"omitempty,max=5000"`
	PracticeAreas          codec.StringList `json:"practiceAreas" swaggertype:"array,string" validate:"required,min=1"`
	ConsultantAvailability codec.StringList `json:"consultantAvailability" swaggertype:"array,string" validate:"required"`
	Timing                 codec.StringList `json:"timing" swaggertype:"array,string" validate:"required"`
}

// UpdateLawyerRequest carries only the fields to change. JSON null counts as absent.
type UpdateLawyerRequest struct {
	FirstName              *string           `json:"firstName" validate:"omitempty,min=1,max=100"`
	LastName               *string           `json:"lastName" validate:"omitempty,min=1,max=100"`
	Mobile                 *string           `json:"mobile" validate:"omitempty,phone"`
	Email                  *string           `json:"email" validate:"omitempty,email,max=255"`
	Country                *string           `json:"country" validate:"omitempty,min=1,max=100"`
	YearsOfExperience      *int              `json:"yearsOfExperience" validate:"omitempty,gte=0"`
	Languages              *codec.StringList `json:"languages" swaggertype:"array,string"`
	LawyerType             *string           `json:"lawyerType" validate:"omitempty,min=1,max=100"`
	About                  *string           `json:"about" validate:"omitempty,max=5000"`
	PracticeAreas          *codec.StringList `json:"practiceAreas" swaggertype:"array,string"`
	ConsultantAvailability *codec.StringList `json:"consultantAvailability" swaggertype:"array,string"`
	Timing                 *codec.StringList `json:"timing" swaggertype:"array,string"`
}

// Changes maps the provided fields to column names.
func (in UpdateLawyerRequest) Changes() map[string]any {
	out := map[string]any{}
	setStr := func(col string, v *string) {
		if v != nil {
			out[col] = strings.TrimSpace(*v)
		}
	}
	setList := func(col string, v *codec.StringList) {
		if v != nil {
			out[col] = *v
		}
	}
	setStr("first_name", in.FirstName)
	setStr("last_name", in.LastName)
	setStr("mobile", in.Mobile)
	setStr("email", in.Email)
	setStr("country", in.Country)
	setStr("lawyer_type", in.LawyerType)
	setStr("about", in.About)
	if in.YearsOfExperience != nil {
		out["years_of_experience"] = *in.YearsOfExperience
	}
	setList("languages", in.Languages)
	setList("practice_areas", in.PracticeAreas)
	setList("consultant_availability", in.ConsultantAvailability)
	setList("timing", in.Timing)
	return out
}

// LawyerView is a listed lawyer with the derived display name.
type LawyerView struct {
	models.Lawyer
	FullName string `json:"fullName"`
}

type Handler struct {
	repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Create Lawyer godoc
// @Summary      Create lawyer
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateLawyerRequest  true  "Lawyer payload"
// @Success      200      {object}  models.Envelope      "data: {id}"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Failure      500      {object}  models.ErrorResponse
// @Router       /lawyer [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateLawyerRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	l := models.Lawyer{
		FirstName:              strings.TrimSpace(in.FirstName),
		LastName:               strings.TrimSpace(in.LastName),
		Mobile:                 strings.TrimSpace(in.Mobile),
		Email:                  strings.TrimSpace(in.Email),
		Country:                strings.TrimSpace(in.Country),
		YearsOfExperience:      *in.YearsOfExperience,
		Languages:              in.Languages,
		LawyerType:             strings.TrimSpace(in.LawyerType),
		About:                  in.About,
		PracticeAreas:          in.PracticeAreas,
		ConsultantAvailability: in.ConsultantAvailability,
		Timing:                 in.Timing,
	}
	id, err := h.repo.Create(c.UserContext(), &l)
	if err != nil {
		return fmt.Errorf("create lawyer: %w", err)
	}
	return utils.OK(c, "Lawyer created successfully", fiber.Map{"id": id})
}

// List Lawyers godoc
// @Summary      List lawyers
// @Description  Filter by name (first/last, substring), lawyerType, country, minExperience
// @Tags         lawyers
// @Produce      json
// @Param        name           query  string  false  "name substring"
// @Param        lawyerType     query  string  false  "lawyer type"
// @Param        country        query  string  false  "country"
// @Param        minExperience  query  int     false  "minimum years of experience"
// @Param        page           query  int     false  "page"
// @Param        limit          query  int     false  "limit"
// @Success      200  {object}  models.Envelope  "data: []LawyerView"
// @Failure      500  {object}  models.ErrorResponse
// @Router       /lawyer [get]
func (h *Handler) List(c *fiber.Ctx) error {
	_, limit, offset := utils.ParsePage(c)
	f := Filters{
		Name:       strings.TrimSpace(c.Query("name")),
		LawyerType: strings.TrimSpace(c.Query("lawyerType")),
		Country:    strings.TrimSpace(c.Query("country")),
	}
	if v := c.Query("minExperience"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "minExperience must be an integer")
		}
		f.MinExperience = &n
	}

	rows, err := h.repo.List(c.UserContext(), f, limit, offset)
	if err != nil {
		return fmt.Errorf("list lawyers: %w", err)
	}
	out := make([]LawyerView, 0, len(rows))
	for _, l := range rows {
		out = append(out, LawyerView{Lawyer: l, FullName: l.FirstName + " " + l.LastName})
	}
	return utils.OK(c, "Lawyers fetched successfully", out)
}

// Update Lawyer godoc
// @Summary      Update lawyer
// @Tags         lawyers
// @Accept       json
// @Produce      json
// @Param        id       path      int                  true  "lawyer id"
// @Param        payload  body      UpdateLawyerRequest  true  "Fields to change"
// @Success      200      {object}  models.Envelope
// @Failure      400      {object}  models.ErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Router       /lawyer/{id} [put]
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	var in UpdateLawyerRequest
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

	ok, err := h.repo.UpdateByID(c.UserContext(), id, changes)
	if err != nil {
		return fmt.Errorf("update lawyer: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Lawyer not found or no changes made")
	}
	return utils.OK(c, "Lawyer updated successfully", nil)
}

// Delete Lawyer godoc
// @Summary      Delete lawyer
// @Description  Cascades to the lawyer's clients, appointments and case-team memberships
// @Tags         lawyers
// @Produce      json
// @Param        id   path      int  true  "lawyer id"
// @Success      200  {object}  models.Envelope
// @Failure      404  {object}  models.ErrorResponse
// @Router       /lawyer/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.repo.DeleteByID(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("delete lawyer: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Lawyer not found")
	}
	return utils.OK(c, "Lawyer deleted successfully", nil)
}
