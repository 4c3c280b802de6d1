package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"verdant/internal/application/grid/usecases"
	"verdant/internal/domain/grid"
	"verdant/internal/shared/errors"
	"verdant/internal/shared/logger"
	"verdant/internal/shared/utils"
)

type GridHandler struct {
	listCellsUC   *usecases.ListCellsUseCase
	setCellTypeUC *usecases.SetCellTypeUseCase
	reclassifyUC  *usecases.ReclassifyAreaUseCase
	logger        logger.Interface
}

func NewGridHandler(
	listCellsUC *usecases.ListCellsUseCase,
	setCellTypeUC *usecases.SetCellTypeUseCase,
	reclassifyUC *usecases.ReclassifyAreaUseCase,
) *GridHandler {
	return &GridHandler{
		listCellsUC:   listCellsUC,
		setCellTypeUC: setCellTypeUC,
		reclassifyUC:  reclassifyUC,
		logger:        logger.NewLogger(),
	}
}

type SetCellTypeRequest struct {
	Type    string `json:"type" binding:"required,celltype"`
	Confirm bool   `json:"confirm"`
}

type ReclassifyAreaRequest struct {
	X1      int    `json:"x1" binding:"gte=0"`
	Y1      int    `json:"y1" binding:"gte=0"`
	X2      int    `json:"x2" binding:"gte=0"`
	Y2      int    `json:"y2" binding:"gte=0"`
	Type    string `json:"type" binding:"required,celltype"`
	Confirm bool   `json:"confirm"`
}

func (h *GridHandler) ListCells(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	filter, err := cellListFilter(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	page, err := pageRequest(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.listCellsUC.Execute(c.Request.Context(), usecases.ListCellsQuery{
		OwnerID: ownerID,
		SID:     sid,
		Filter:  filter,
		Page:    page,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.ListSuccessResponse(c, result.Cells, result.NextCursor)
}

func (h *GridHandler) SetCellType(c *gin.Context) {
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

	var req SetCellTypeRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for set cell type", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.setCellTypeUC.Execute(c.Request.Context(), usecases.SetCellTypeCommand{
		OwnerID:   ownerID,
		SID:       sid,
		X:         x,
		Y:         y,
		Type:      grid.CellType(req.Type),
		Confirmed: req.Confirm,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Applied {
		utils.RequiresConfirmationResponse(c, result.Impact)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Cell type updated successfully", result.Impact)
}

func (h *GridHandler) ReclassifyArea(c *gin.Context) {
	ownerID, sid, err := planRequestScope(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req ReclassifyAreaRequest
	if err := bindJSON(c, &req); err != nil {
		h.logger.Warnw("invalid request body for reclassify area", "error", err)
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.reclassifyUC.Execute(c.Request.Context(), usecases.ReclassifyAreaCommand{
		OwnerID:   ownerID,
		SID:       sid,
		Rect:      grid.Rect{X1: req.X1, Y1: req.Y1, X2: req.X2, Y2: req.Y2},
		Type:      grid.CellType(req.Type),
		Confirmed: req.Confirm,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if !result.Applied {
		utils.RequiresConfirmationResponse(c, result.Impact)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Area reclassified successfully", result.Impact)
}

// coordParams parses the x/y path parameters.
func coordParams(c *gin.Context) (int, int, error) {
	x, err := utils.ParseIntParam(c, "x")
	if err != nil {
		return 0, 0, err
	}
	y, err := utils.ParseIntParam(c, "y")
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// cellListFilter assembles the optional cell listing filters from query
// parameters. Point (x, y) and bounding box (x1..y2) are each all-or-nothing.
func cellListFilter(c *gin.Context) (grid.ListFilter, error) {
	var filter grid.ListFilter

	if raw := c.Query("type"); raw != "" {
		cellType := grid.CellType(raw)
		filter.Type = &cellType
	}

	x, hasX, err := utils.ParseIntQuery(c, "x")
	if err != nil {
		return filter, err
	}
	y, hasY, err := utils.ParseIntQuery(c, "y")
	if err != nil {
		return filter, err
	}
	if hasX != hasY {
		return filter, errors.NewInvalidQueryError("x and y must be provided together")
	}
	if hasX {
		filter.At = &grid.Point{X: x, Y: y}
	}

	corners := [4]string{"x1", "y1", "x2", "y2"}
	var values [4]int
	present := 0
	for i, name := range corners {
		value, ok, err := utils.ParseIntQuery(c, name)
		if err != nil {
			return filter, err
		}
		if ok {
			present++
		}
		values[i] = value
	}
	if present > 0 && present < 4 {
		return filter, errors.NewInvalidQueryError("x1, y1, x2, and y2 must be provided together")
	}
	if present == 4 {
		filter.Box = &grid.Rect{X1: values[0], Y1: values[1], X2: values[2], Y2: values[3]}
	}

	return filter, nil
}
