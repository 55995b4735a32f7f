package httpresp

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams reads ?page= and ?limit=. Invalid or out of range values fall
// back to page 1 and defLimit.
func PageParams(c *gin.Context, defLimit, maxLimit int) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defLimit
	}

	return page, limit, (page - 1) * limit
}

// Page writes a paginated listing with items under key.
func Page[T any](c *gin.Context, page, limit int, total int64, key string, items []T) {
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		key:     items,
	})
}
