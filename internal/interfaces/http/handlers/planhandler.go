// Package handlers contains the Gin HTTP handlers. Handlers bind and
// validate requests, delegate to usecases, and translate results and errors
// into API responses; they never touch the store directly.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"verdant/internal/application/plan/usecases"
	"verdant/internal/shared/id"
	"verdant/internal/shared/logger"
	"verdant/internal/shared/query"
	"verdant/internal/shared/utils"
)

type PlanHandler struct {
	createPlanUC     *usecases.CreatePlanUseCase
	getPlanUC        *usecases.GetPlanUseCase
	listPlansUC      *usecases.ListPlansUseCase
	updatePlanUC     *usecases.UpdatePlanUseCase
	regenerateGeomUC *usecases.RegeneratePlanGeometryUseCase
	deletePlanUC     *usecases.DeletePlanUseCase
	logger           logger.Interface
}

func NewPlanHandler(
	createPlanUC *usecases.CreatePlanUseCase,
	getPlanUC *usecases.GetPlanUseCase,
	listPlansUC *usecases.ListPlansUseCase,
	updatePlanUC *usecases.UpdatePlanUseCase,
	regenerateGeomUC *usecases.RegeneratePlanGeometryUseCase,
	deletePlanUC *usecases.DeletePlanUseCase,
) *PlanHandler {
	return &PlanHandler{
		createPlanUC:     createPlanUC,
		getPlanUC:        getPlanUC,
		listPlansUC:      listPlansUC,
		updatePlanUC:     updatePlanUC,
		regenerateGeomUC: regenerateGeomUC,
		deletePlanUC:     deletePlanUC,
		logger:           logger.NewLogger(),
	}
}

type LocationRequest struct {
	Latitude   float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude  float64 `json:"longitude" binding:"gte=-180,lte=180"`
	Hemisphere string  `json:"hemisphere" binding:"required,oneof=N S"`
}

type CreatePlanRequest struct {
	Name        string           `json:"name" binding:"required,max=100"`
	Location    *LocationRequest `json:"location"`
	WidthCM     int              `json:"width_cm" binding:"required,gt=0"`
	HeightCM    int              `json:"height_cm" binding:"required,gt=0"`
	CellSizeCM  int              `json:"cell_size_cm" binding:"required,cellsize"`
	Orientation int              `json:"orientation" binding:"gte=0,lte=359"`
}

type UpdatePlanRequest struct {
	Name          *string          `json:"name" binding:"omitempty,max=100"`
	Orientation   *int             `json:"orientation" binding:"omitempty,gte=0,lte=359"`
	Location      *LocationRequest `json:"location"`
	ClearLocation bool             `json:"clear_location"`
}

type UpdateGeometryRequest struct {
	WidthCM    int  `json:"width_cm" binding:"required,gt=0"`
	HeightCM   int  `json:"height_cm" binding:"required,gt=0"`
	CellSizeCM int  `json:"cell_size_cm" binding:"required,cellsize"`
	Confirm    bool `json:"confirm"`
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	ownerID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req CreatePlanRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for create plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.CreatePlanCommand{
		OwnerID:     ownerID,
		Name:        req.Name,
		WidthCM:     req.WidthCM,
		HeightCM:    req.HeightCM,
		CellSizeCM:  req.CellSizeCM,
		Orientation: req.Orientation,
	}
	if req.Location != nil {
		cmd.Latitude = &req.Location.Latitude
		cmd.Longitude = &req.Location.Longitude
		cmd.Hemisphere = req.Location.Hemisphere
	}

	result, err := h.createPlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "Plan created successfully")
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getPlanUC.Execute(c.Request.Context(), usecases.GetPlanQuery{OwnerID: ownerID, SID: sid})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	ownerID, err := utils.GetUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	page, err := pageRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listPlansUC.Execute(c.Request.Context(), usecases.ListPlansQuery{
		OwnerID: ownerID,
		Name:    c.Query("name"),
		Page:    page,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Plans, result.NextCursor)
}

func (h *PlanHandler) UpdatePlan(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdatePlanRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update plan", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	cmd := usecases.UpdatePlanCommand{
		OwnerID:       ownerID,
		SID:           sid,
		Name:          req.Name,
		Orientation:   req.Orientation,
		ClearLocation: req.ClearLocation,
	}
	if req.Location != nil {
		cmd.Location = &usecases.LocationUpdate{
			Latitude:   req.Location.Latitude,
			Longitude:  req.Location.Longitude,
			Hemisphere: req.Location.Hemisphere,
		}
	}

	result, err := h.updatePlanUC.Execute(c.Request.Context(), cmd)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan updated successfully", result)
}

func (h *PlanHandler) UpdateGeometry(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateGeometryRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for update geometry", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.regenerateGeomUC.Execute(c.Request.Context(), usecases.RegeneratePlanGeometryCommand{
		OwnerID:    ownerID,
		SID:        sid,
		WidthCM:    req.WidthCM,
		HeightCM:   req.HeightCM,
		CellSizeCM: req.CellSizeCM,
		Confirmed:  req.Confirm,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Applied {
		utils.RequiresConfirmationResponse(c, result.Impact)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plan geometry updated successfully", gin.H{
		"plan":   result.Plan,
		"impact": result.Impact,
	})
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deletePlanUC.Execute(c.Request.Context(), usecases.DeletePlanCommand{OwnerID: ownerID, SID: sid}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// planRequestScope extracts the authenticated owner and the plan SID from
// the request.
func planRequestScope(c *gin.Context) (uint, string, error) {
	ownerID, err := utils.GetUserID(c)
	if err != nil {
		return 0, "", err
	}
	sid, err := utils.ParseSIDParam(c, "id", id.PrefixPlan, "plan")
	if err != nil {
		return 0, "", err
	}
	return ownerID, sid, nil
}

// pageRequest reads the shared limit/cursor pagination query parameters.
func pageRequest(c *gin.Context) (query.PageRequest, error) {
	limit, _, err := utils.ParseIntQuery(c, "limit")
	if err != nil {
		return query.PageRequest{}, err
	}
	return query.PageRequest{Cursor: c.Query("cursor"), Limit: limit}, nil
}
