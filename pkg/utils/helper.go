package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParsePage reads ?page= and ?limit= and derives the row offset.
// Non-numeric or out-of-range values fall back to page 1 / DefaultLimit.
func ParsePage(c *fiber.Ctx) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	limit, _ = strconv.Atoi(c.Query("limit", strconv.Itoa(DefaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	return page, limit, (page - 1) * limit
}

// ParseID reads a positive integer route parameter.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// OK writes the HTTP 200 success envelope. data may be nil.
func OK(c *fiber.Ctx, message string, data any) error {
	return c.JSON(models.Envelope{Status: true, Message: message, Data: data})
}
