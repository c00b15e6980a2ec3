package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/middleware"
)

// idParam reads a positive numeric path parameter, writing a 400 when it is
// not one.
func idParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		c.JSON(400, httperr.HTTPError{
			Code:    "invalid_id",
			Message: "The id in the path must be a positive number.",
			Field:   name,
		})
		return 0, false
	}
	return uint(v), true
}

// viewer returns the authenticated caller. Routes that call it sit behind
// AuthMiddleware, so a missing identity is a wiring bug reported as 401.
func viewer(c *gin.Context) (identity.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
		return identity.Identity{}, false
	}
	return id, true
}

// pageParams reads ?page= (default 1) and ?limit= (default 50, at most 200).
func pageParams(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	return page, limit, (page - 1) * limit
}
