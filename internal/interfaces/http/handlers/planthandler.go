package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"verdant/internal/application/plant/usecases"
	"verdant/internal/domain/plant"
	"verdant/internal/shared/logger"
	"verdant/internal/shared/utils"
)

type PlantHandler struct {
	placePlantUC  *usecases.PlacePlantUseCase
	removePlantUC *usecases.RemovePlantUseCase
	listPlantsUC  *usecases.ListPlantsUseCase
	logger        logger.Interface
}

func NewPlantHandler(
	placePlantUC *usecases.PlacePlantUseCase,
	removePlantUC *usecases.RemovePlantUseCase,
	listPlantsUC *usecases.ListPlantsUseCase,
) *PlantHandler {
	return &PlantHandler{
		placePlantUC:  placePlantUC,
		removePlantUC: removePlantUC,
		listPlantsUC:  listPlantsUC,
		logger:        logger.NewLogger(),
	}
}

type ScoresRequest struct {
	Sunlight      *int     `json:"sunlight" binding:"omitempty,gte=1,lte=5"`
	Humidity      *int     `json:"humidity" binding:"omitempty,gte=1,lte=5"`
	Precipitation *int     `json:"precipitation" binding:"omitempty,gte=1,lte=5"`
	Temperature   *int     `json:"temperature" binding:"omitempty,gte=1,lte=5"`
	Overall       *float64 `json:"overall"`
}

type PlacePlantRequest struct {
	PlantName string        `json:"plant_name" binding:"required,max=120"`
	Scores    ScoresRequest `json:"scores"`
}

func (h *PlantHandler) PlacePlant(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	x, y, err := coordParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req PlacePlantRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for place plant", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.placePlantUC.Execute(c.Request.Context(), usecases.PlacePlantCommand{
		OwnerID:   ownerID,
		SID:       sid,
		X:         x,
		Y:         y,
		PlantName: req.PlantName,
		Scores: plant.Scores{
			Sunlight:      req.Scores.Sunlight,
			Humidity:      req.Scores.Humidity,
			Precipitation: req.Scores.Precipitation,
			Temperature:   req.Scores.Temperature,
			Overall:       req.Scores.Overall,
		},
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Plant placed successfully", result)
}

func (h *PlantHandler) RemovePlant(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	x, y, err := coordParams(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.removePlantUC.Execute(c.Request.Context(), usecases.RemovePlantCommand{
		OwnerID: ownerID,
		SID:     sid,
		X:       x,
		Y:       y,
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *PlantHandler) ListPlants(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	page, err := pageRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listPlantsUC.Execute(c.Request.Context(), usecases.ListPlantsQuery{
		OwnerID:    ownerID,
		SID:        sid,
		NamePrefix: c.Query("name_prefix"),
		Page:       page,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Placements, result.NextCursor)
}
