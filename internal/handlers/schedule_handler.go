package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/httpresp"
	ucSchedule "github.com/pranamithra/scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	preview *ucSchedule.PreviewSlots
	save    *ucSchedule.SaveSchedule
	get     *ucSchedule.GetSchedule
	list    *ucSchedule.ListSchedules
	saveFee *ucSchedule.SaveCosts
	getFee  *ucSchedule.GetCosts
	log     zerolog.Logger
}

func NewScheduleHandler(
	preview *ucSchedule.PreviewSlots,
	save *ucSchedule.SaveSchedule,
	get *ucSchedule.GetSchedule,
	list *ucSchedule.ListSchedules,
	saveFee *ucSchedule.SaveCosts,
	getFee *ucSchedule.GetCosts,
	log zerolog.Logger,
) *ScheduleHandler {
	return &ScheduleHandler{
		preview: preview,
		save:    save,
		get:     get,
		list:    list,
		saveFee: saveFee,
		getFee:  getFee,
		log:     log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type PreviewSlotsQuery struct {
	LoginTime       string `form:"login_time" binding:"required"`
	LogoutTime      string `form:"logout_time" binding:"required"`
	DurationMinutes int    `form:"duration" binding:"required"`
}

type SaveScheduleRequest struct {
	Date            string   `json:"date" binding:"required"`
	LoginTime       string   `json:"login_time" binding:"required"`
	LogoutTime      string   `json:"logout_time" binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"required"`
	SelectedSlots   []string `json:"selected_slots"`
}

type SaveCostsRequest struct {
	Cost10 *float64 `json:"cost_10" binding:"required"`
	Cost20 *float64 `json:"cost_20" binding:"required"`
	Cost30 *float64 `json:"cost_30" binding:"required"`
}

// ======================================================
// SLOTS
// ======================================================

func (h *ScheduleHandler) Preview(c *gin.Context) {
	var q PreviewSlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.Binding(c, err)
		return
	}

	slots, err := h.preview.Execute(ucSchedule.PreviewInput{
		LoginTime:       q.LoginTime,
		LogoutTime:      q.LogoutTime,
		DurationMinutes: q.DurationMinutes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// SCHEDULES
// ======================================================

func (h *ScheduleHandler) Save(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	var req SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	sched, err := h.save.Execute(c.Request.Context(), id.UserID, ucSchedule.SaveInput{
		Date:            req.Date,
		LoginTime:       req.LoginTime,
		LogoutTime:      req.LogoutTime,
		DurationMinutes: req.DurationMinutes,
		SelectedSlots:   req.SelectedSlots,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, sched)
}

func (h *ScheduleHandler) List(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	schedules, err := h.list.Execute(c.Request.Context(), id.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, schedules)
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	sched, err := h.get.Execute(c.Request.Context(), id.UserID, c.Param("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, sched)
}

// ======================================================
// COSTS
// ======================================================

func (h *ScheduleHandler) SaveCosts(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	var req SaveCostsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	cost, err := h.saveFee.Execute(c.Request.Context(), id.UserID, ucSchedule.CostsInput{
		Cost10: *req.Cost10,
		Cost20: *req.Cost20,
		Cost30: *req.Cost30,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, cost)
}

func (h *ScheduleHandler) GetCosts(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	cost, err := h.getFee.Execute(c.Request.Context(), id.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, cost)
}
