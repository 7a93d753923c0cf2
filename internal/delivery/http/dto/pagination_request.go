package dto

import (
	"strconv"

	"geostud-api/internal/pkg/pagination"

	"github.com/gofiber/fiber/v3"
)

// PaginationFromQuery reads page and page_size query parameters. Anything
// unparsable falls back to the defaults via Normalize.
func PaginationFromQuery(c fiber.Ctx) pagination.Params {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return pagination.Params{Page: page, PageSize: pageSize}.Normalize()
}
