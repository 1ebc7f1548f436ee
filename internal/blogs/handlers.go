package blogs

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
	"github.com/aldoetobex/legal-practice-backend/pkg/sanitize"
	"github.com/aldoetobex/legal-practice-backend/pkg/utils"
	"github.com/aldoetobex/legal-practice-backend/pkg/validation"
)

// ===== DTOs =====

type CreateBlogRequest struct {
	Image     string `json:"image" validate:"required,url,max=255"`
	Name      string `json:"name" validate:"required,max=255"`
	LawType   string `json:"law_type" validate:"required,max=255"`
	Title     string `json:"title" validate:"required,max=255"`
	Brief     string `json:"brief" validate:"required"`
	CreatedOn string `json:"createdOn" validate:"required,isodate"`
	IsPosted  *bool  `json:"isPosted" validate:"required"`
}

// UpdateBlogRequest carries only the fields to change. JSON null counts as absent.
type UpdateBlogRequest struct {
	Image     *string `json:"image" validate:"omitempty,url,max=255"`
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	LawType   *string `json:"law_type" validate:"omitempty,min=1,max=255"`
	Title     *string `json:"title" validate:"omitempty,min=1,max=255"`
	Brief     *string `json:"brief" validate:"omitempty,min=1"`
	CreatedOn *string `json:"createdOn" validate:"omitempty,isodate"`
	IsPosted  *bool   `json:"isPosted"`
}

// Changes maps the provided fields to column names. Brief is sanitized.
func (in UpdateBlogRequest) Changes() map[string]any {
	out := map[string]any{}
	for col, v := range map[string]*string{
		"image":    in.Image,
		"name":     in.Name,
		"law_type": in.LawType,
		"title":    in.Title,
	} {
		if v != nil {
			out[col] = strings.TrimSpace(*v)
		}
	}
	if in.Brief != nil {
		out["brief"] = sanitize.HTML(*in.Brief)
	}
	if in.CreatedOn != nil {
		t, _ := validation.ParseDate(*in.CreatedOn)
		out["created_on"] = t.UTC()
	}
	if in.IsPosted != nil {
		out["is_posted"] = *in.IsPosted
	}
	return out
}

type Handler struct {
	repo *Repository
}

func NewHandler(db *gorm.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// Create Blog godoc
// @Summary      Create blog post
// @Description  brief is HTML; scripts and event handlers are stripped
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        payload  body      CreateBlogRequest  true  "Blog payload"
// @Success      200      {object}  models.Envelope    "data: {id}"
// @Failure      400      {object}  models.ValidationErrorResponse
// @Router       /blogs [post]
func (h *Handler) Create(c *fiber.Ctx) error {
	var in CreateBlogRequest
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid JSON body")
	}
	if errs, _ := validation.Validate(in); errs != nil {
		return validation.Respond(c, errs)
	}

	createdOn, _ := validation.ParseDate(in.CreatedOn)
	b := models.Blog{
		Image:     strings.TrimSpace(in.Image),
		Name:      strings.TrimSpace(in.Name),
		LawType:   strings.TrimSpace(in.LawType),
		Title:     strings.TrimSpace(in.Title),
		Brief:     sanitize.HTML(in.Brief),
		CreatedOn: createdOn.UTC(),
		IsPosted:  *in.IsPosted,
	}
	id, err := h.repo.Create(c.UserContext(), &b)
	if err != nil {
		return fmt.Errorf("create blog: %w", err)
	}
	return utils.OK(c, "Blog created successfully", fiber.Map{"id": id})
}

// List Blogs godoc
// @Summary      List blog posts
// @Tags         blogs
// @Produce      json
// @Param        title  query  string  false  "title substring"
// @Param        page   query  int     false  "page"
// @Param        limit  query  int     false  "limit"
// @Success      200  {object}  models.Envelope  "data: []View"
// @Router       /blogs [get]
func (h *Handler) List(c *fiber.Ctx) error {
	_, limit, offset := utils.ParsePage(c)
	rows, err := h.repo.List(c.UserContext(), strings.TrimSpace(c.Query("title")), limit, offset)
	if err != nil {
		return fmt.Errorf("list blogs: %w", err)
	}
	return utils.OK(c, "Blogs fetched successfully", rows)
}

// Update Blog godoc
// @Summary      Update blog post
// @Tags         blogs
// @Accept       json
// @Produce      json
// @Param        id       path      int                true  "blog id"
// @Param        payload  body      UpdateBlogRequest  true  "Fields to change"
// @Success      200      {object}  models.Envelope
// @Failure      400      {object}  models.ErrorResponse
// @Failure      404      {object}  models.ErrorResponse
// @Router       /blogs/{id} [patch]
func (h *Handler) Update(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	var in UpdateBlogRequest
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
		return fmt.Errorf("update blog: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Blog not found or no changes made")
	}
	return utils.OK(c, "Blog updated successfully", nil)
}

// Delete Blog godoc
// @Summary      Delete blog post
// @Tags         blogs
// @Produce      json
// @Param        id   path      int  true  "blog id"
// @Success      200  {object}  models.Envelope
// @Failure      404  {object}  models.ErrorResponse
// @Router       /blogs/{id} [delete]
func (h *Handler) Delete(c *fiber.Ctx) error {
	id, err := utils.ParseID(c, "id")
	if err != nil {
		return err
	}
	ok, err := h.repo.DeleteByID(c.UserContext(), id)
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Blog not found")
	}
	return utils.OK(c, "Blog deleted successfully", nil)
}
