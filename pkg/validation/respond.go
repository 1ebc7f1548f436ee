package validation

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

// Respond writes the 400 validation body. The summary message names the
// first failing field in alphabetical order so it is stable across runs.
func Respond(c *fiber.Ctx, errs map[string][]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(models.ValidationErrorResponse{
		Status:  false,
		Message: "Validation error: " + Summary(errs),
		Errors:  errs,
	})
}

// Summary renders "field: message" for the first field in alphabetical order.
func Summary(errs map[string][]string) string {
	if len(errs) == 0 {
		return ""
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	first := fields[0]
	return first + ": " + strings.Join(errs[first], ", ")
}
