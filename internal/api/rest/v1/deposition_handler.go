package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/processes"
)

// DepositionHandler defines the interface for handling deposition operations
type DepositionHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByNumber(ctx *gin.Context)
	Update(ctx *gin.Context)
}

type depositionHandler struct {
	depositionService processes.DepositionService
}

// NewDepositionHandler creates a new DepositionHandler
func NewDepositionHandler(depositionService processes.DepositionService) DepositionHandler {
	return &depositionHandler{
		depositionService: depositionService,
	}
}

// Create handles the POST request to record a new deposition run
// @Summary Create a deposition
// @Description Record a deposition run. An empty number is assigned from the year's serial counter; an explicit one must be free. Requires "add" permission on the deposition kind.
// @Tags Deposition
// @Accept json
// @Produce json
// @Param requestBody body CreateDepositionRequest true "Deposition data"
// @Success 201 {object} DepositionResponse
// @Failure 403 {object} ErrorResponse
// @Router /depositions [post]
func (handler *depositionHandler) Create(ctx *gin.Context) {
	var request CreateDepositionRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid deposition data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	deposition := &processes.Deposition{
		Number:    request.Number,
		Comments:  request.Comments,
		SampleIDs: request.SampleIDs,
		Finished:  request.Finished,
	}
	if request.Timestamp != nil {
		deposition.Timestamp = *request.Timestamp
	}
	for _, layerDTO := range request.Layers {
		deposition.Layers = append(deposition.Layers, layerDTO.toDomain())
	}

	created, err := handler.depositionService.Create(ctx, currentUserID(ctx), deposition)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newDepositionResponse(created))
}

// List handles the GET request to list depositions with optional query parameters
// @Summary List depositions based on query parameters
// @Description Fetch depositions filtered by operator, sample and year, with pagination.
// @Tags Deposition
// @Produce json
// @Param operatorId query string false "Operator ID"
// @Param sampleId query string false "Sample ID"
// @Param year query int false "Calendar year of the deposition number"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} DepositionResponse
// @Failure 400 {object} ErrorResponse
// @Router /depositions [get]
func (handler *depositionHandler) List(ctx *gin.Context) {
	query := processes.NewDepositionQuery()

	if operatorID := ctx.Query("operatorId"); len(operatorID) > 0 {
		query.OperatorID = operatorID
	}
	if sampleID := ctx.Query("sampleId"); len(sampleID) > 0 {
		query.SampleID = sampleID
	}
	if year := ctx.Query("year"); len(year) > 0 {
		query.Year = convertToInt(year)
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = convertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = convertToInt(offset)
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	depositionList, err := handler.depositionService.List(ctx, currentUserID(ctx), query)
	if err != nil {
		writeError(ctx, err)
		return
	}

	listResponse := []DepositionResponse{}
	for _, deposition := range depositionList {
		listResponse = append(listResponse, newDepositionResponse(deposition))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// GetByNumber handles the GET request to retrieve a deposition by number
// @Summary Retrieve a deposition by its number
// @Tags Deposition
// @Produce json
// @Param number path string true "Deposition number"
// @Success 200 {object} DepositionResponse
// @Failure 404 {object} ErrorResponse
// @Router /depositions/{number} [get]
func (handler *depositionHandler) GetByNumber(ctx *gin.Context) {
	number := ctx.Param("number")
	if number == "" {
		writeMissingParameter(ctx, "number")
		return
	}

	deposition, err := handler.depositionService.GetByNumber(ctx, currentUserID(ctx), number)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newDepositionResponse(deposition))
}

// Update handles the PUT request to edit a deposition
// @Summary Update a deposition
// @Description Apply comment and sample changes plus an ordered batch of layer edits. Finished depositions are frozen. Requires "edit" permission or being the operator.
// @Tags Deposition
// @Accept json
// @Produce json
// @Param number path string true "Deposition number"
// @Param requestBody body UpdateDepositionRequest true "Changed fields and layer edits"
// @Success 200 {object} DepositionResponse
// @Failure 403 {object} ErrorResponse
// @Router /depositions/{number} [put]
func (handler *depositionHandler) Update(ctx *gin.Context) {
	number := ctx.Param("number")
	if number == "" {
		writeMissingParameter(ctx, "number")
		return
	}

	var request UpdateDepositionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid deposition data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	edits := []processes.LayerEdit{}
	for _, editRequest := range request.LayerEdits {
		edits = append(edits, editRequest.toDomain())
	}

	updated, err := handler.depositionService.Update(ctx, currentUserID(ctx), number, request.Comments, request.SampleIDs, edits, request.Finished)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newDepositionResponse(updated))
}
