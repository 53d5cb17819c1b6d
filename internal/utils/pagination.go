package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/project-management-api/internal/constants"
	apierrors "github.com/mizuki-dev/project-management-api/internal/errors"
)

// GetPaginationParams parses and bounds-checks the page and per_page query
// parameters. Out-of-range or non-integer values are business-rule
// violations, not silently clamped.
func GetPaginationParams(c *gin.Context, maxPerPage int) (int, int, error) {
	pageRaw := c.DefaultQuery("page", strconv.Itoa(constants.DefaultPage))
	perPageRaw := c.DefaultQuery("per_page", strconv.Itoa(constants.DefaultPerPage))

	page, pageErr := strconv.Atoi(pageRaw)
	perPage, perPageErr := strconv.Atoi(perPageRaw)
	if pageErr != nil || perPageErr != nil {
		return 0, 0, apierrors.BusinessValidation("Pagination parameters must be integers.")
	}

	if page < 1 {
		return 0, 0, apierrors.BusinessValidation("Page must be greater than or equal to 1.")
	}
	if perPage < 1 {
		return 0, 0, apierrors.BusinessValidation("per_page must be greater than or equal to 1.")
	}
	if perPage > maxPerPage {
		return 0, 0, apierrors.BusinessValidation(
			fmt.Sprintf("per_page must be less than or equal to %d.", maxPerPage))
	}

	return page, perPage, nil
}
