package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewMeHandler(db *gorm.DB, log zerolog.Logger) *MeHandler {
	return &MeHandler{db: db, log: log}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	var user any
	switch id.Role {
	case identity.RoleCustomer:
		user = &models.Customer{}
	case identity.RoleDoctor:
		user = &models.Doctor{}
	case identity.RoleAdmin:
		user = &models.Admin{}
	}

	if err := h.db.WithContext(c.Request.Context()).First(user, id.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "user_not_found", "Account no longer exists.")
			return
		}
		httperr.Respond(c, h.log, httperr.Store("get me", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role": id.Role,
		"user": user,
	})
}
