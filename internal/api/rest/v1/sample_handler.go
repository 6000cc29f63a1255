package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
)

// SampleHandler defines the interface for handling sample operations
type SampleHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByName(ctx *gin.Context)
	Update(ctx *gin.Context)
	Rename(ctx *gin.Context)
	Split(ctx *gin.Context)
	DeleteByName(ctx *gin.Context)
	ListProcesses(ctx *gin.Context)
	CreateProcess(ctx *gin.Context)
	ListMySamples(ctx *gin.Context)
	UpdateMySamples(ctx *gin.Context)
}

type sampleHandler struct {
	sampleService    samples.SampleService
	mySamplesService samples.MySamplesService
	processService   processes.ProcessService
}

// NewSampleHandler creates a new SampleHandler
func NewSampleHandler(sampleService samples.SampleService, mySamplesService samples.MySamplesService, processService processes.ProcessService) SampleHandler {
	return &sampleHandler{
		sampleService:    sampleService,
		mySamplesService: mySamplesService,
		processService:   processService,
	}
}

// Create handles the POST request to register a new sample
// @Summary Create a sample
// @Description Register a new sample. The caller becomes its responsible person unless the topic forbids it.
// @Tags Sample
// @Accept json
// @Produce json
// @Param requestBody body CreateSampleRequest true "Sample data"
// @Success 201 {object} SampleResponse
// @Failure 400 {object} ErrorResponse
// @Router /samples [post]
func (handler *sampleHandler) Create(ctx *gin.Context) {
	var request CreateSampleRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid sample data: %v", err.Error()))
		return
	}

	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	sample := &samples.Sample{
		Name:            request.Name,
		Tags:            request.Tags,
		Purpose:         request.Purpose,
		CurrentLocation: request.CurrentLocation,
		TopicID:         request.TopicID,
	}
	created, err := handler.sampleService.Create(ctx, currentUserID(ctx), sample)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newSampleResponse(created))
}

// List handles the GET request to list samples with optional query parameters
// @Summary List samples based on query parameters
// @Description Fetch samples filtered by name fragment, topic and responsible person, with pagination and sorting options. Confidential-topic samples are omitted for non-members.
// @Tags Sample
// @Produce json
// @Param name query string false "Name fragment"
// @Param topicId query string false "Topic ID"
// @Param responsiblePersonId query string false "Responsible person ID"
// @Param limit query int false "Limit the number of results"
// @Param offset query int false "Offset the results"
// @Param sortBy query string false "Sort by a specific field"
// @Param sortOrder query string false "Sort order (asc/desc)"
// @Success 200 {array} SampleResponse
// @Failure 400 {object} ErrorResponse
// @Router /samples [get]
func (handler *sampleHandler) List(ctx *gin.Context) {
	query := samples.NewSampleQuery()

	if name := ctx.Query("name"); len(name) > 0 {
		query.NameContains = name
	}
	if topicID := ctx.Query("topicId"); len(topicID) > 0 {
		query.TopicID = topicID
	}
	if responsibleID := ctx.Query("responsiblePersonId"); len(responsibleID) > 0 {
		query.ResponsiblePersonID = responsibleID
	}
	if limit := ctx.Query("limit"); len(limit) > 0 {
		query.Limit = convertToInt(limit)
	}
	if offset := ctx.Query("offset"); len(offset) > 0 {
		query.Offset = convertToInt(offset)
	}
	if sortBy := ctx.Query("sortBy"); len(sortBy) > 0 {
		query.SortBy = sortBy
	}
	if sortOrder := ctx.Query("sortOrder"); len(sortOrder) > 0 {
		query.SortOrder = sortOrder
	}

	if err := query.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	sampleList, err := handler.sampleService.List(ctx, currentUserID(ctx), query)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSampleListResponse(sampleList))
}

// GetByName handles the GET request to retrieve a sample by name
// @Summary Retrieve a sample by name
// @Description Fetch a sample by its current name or a former name left behind by a rename.
// @Tags Sample
// @Produce json
// @Param name path string true "Sample name"
// @Success 200 {object} SampleResponse
// @Failure 404 {object} ErrorResponse
// @Router /samples/{name} [get]
func (handler *sampleHandler) GetByName(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	sample, err := handler.sampleService.GetByName(ctx, currentUserID(ctx), name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSampleResponse(sample))
}

// Update handles the PUT request to edit a sample's fields
// @Summary Update a sample
// @Description Update the editable fields of a sample. Requires being its responsible person, the topic manager, or an admin.
// @Tags Sample
// @Accept json
// @Produce json
// @Param name path string true "Sample name"
// @Param requestBody body UpdateSampleRequest true "Changed fields"
// @Success 200 {object} SampleResponse
// @Failure 403 {object} ErrorResponse
// @Router /samples/{name} [put]
func (handler *sampleHandler) Update(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	var request UpdateSampleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid sample data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	userID := currentUserID(ctx)
	sample, err := handler.sampleService.GetByName(ctx, userID, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if request.Tags != nil {
		sample.Tags = *request.Tags
	}
	if request.Purpose != nil {
		sample.Purpose = *request.Purpose
	}
	if request.CurrentLocation != nil {
		sample.CurrentLocation = *request.CurrentLocation
	}
	if request.CurrentlyResponsiblePersonID != nil {
		sample.CurrentlyResponsiblePersonID = *request.CurrentlyResponsiblePersonID
	}
	if request.TopicID != nil {
		sample.TopicID = request.TopicID
	}

	if err := handler.sampleService.Update(ctx, userID, sample); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSampleResponse(sample))
}

// Rename handles the POST request to rename a sample
// @Summary Rename a sample
// @Description Change the sample's name. The old name stays resolvable as an alias.
// @Tags Sample
// @Accept json
// @Produce json
// @Param name path string true "Sample name"
// @Param requestBody body RenameSampleRequest true "New name"
// @Success 200 {object} SampleResponse
// @Failure 400 {object} ErrorResponse
// @Router /samples/{name}/rename [post]
func (handler *sampleHandler) Rename(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	var request RenameSampleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid rename data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	userID := currentUserID(ctx)
	sample, err := handler.sampleService.GetByName(ctx, userID, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if err := handler.sampleService.Rename(ctx, userID, sample.ID, request.NewName); err != nil {
		writeError(ctx, err)
		return
	}

	sample.Name = request.NewName
	ctx.JSON(http.StatusOK, newSampleResponse(sample))
}

// Split handles the POST request to split a sample into pieces
// @Summary Split a sample
// @Description Cut a sample into pieces named "<parent>-1" .. "<parent>-n". Records a sample-split process.
// @Tags Sample
// @Accept json
// @Produce json
// @Param name path string true "Sample name"
// @Param requestBody body SplitSampleRequest true "Piece count"
// @Success 201 {array} SampleResponse
// @Failure 400 {object} ErrorResponse
// @Router /samples/{name}/split [post]
func (handler *sampleHandler) Split(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	var request SplitSampleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid split data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	userID := currentUserID(ctx)
	sample, err := handler.sampleService.GetByName(ctx, userID, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	children, err := handler.sampleService.Split(ctx, userID, sample.ID, request.Pieces)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newSampleListResponse(children))
}

// DeleteByName handles the DELETE request to remove a sample
// @Summary Delete a sample by name
// @Tags Sample
// @Produce json
// @Param name path string true "Sample name"
// @Success 204 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /samples/{name} [delete]
func (handler *sampleHandler) DeleteByName(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	userID := currentUserID(ctx)
	sample, err := handler.sampleService.GetByName(ctx, userID, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	if err := handler.sampleService.DeleteByID(ctx, userID, sample.ID); err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusNoContent, InfoResponse{
		Message: fmt.Sprintf("deleted sample %s", name),
	})
}

// ListProcesses handles the GET request to read a sample's process history
// @Summary List the processes of a sample
// @Description Fetch everything that happened to a sample, newest first.
// @Tags Sample
// @Produce json
// @Param name path string true "Sample name"
// @Success 200 {array} ProcessResponse
// @Failure 404 {object} ErrorResponse
// @Router /samples/{name}/processes [get]
func (handler *sampleHandler) ListProcesses(ctx *gin.Context) {
	name := ctx.Param("name")
	if name == "" {
		writeMissingParameter(ctx, "name")
		return
	}

	userID := currentUserID(ctx)
	sample, err := handler.sampleService.GetByName(ctx, userID, name)
	if err != nil {
		writeError(ctx, err)
		return
	}

	processList, err := handler.processService.ListForSample(ctx, userID, sample.ID)
	if err != nil {
		writeError(ctx, err)
		return
	}

	listResponse := []ProcessResponse{}
	for _, process := range processList {
		listResponse = append(listResponse, newProcessResponse(process))
	}
	ctx.JSON(http.StatusOK, listResponse)
}

// CreateProcess handles the POST request to attach a generic process
// @Summary Create a process
// @Description Attach a generic process (e.g. a measurement) to one or more samples. Requires "add" permission on the process kind.
// @Tags Process
// @Accept json
// @Produce json
// @Param requestBody body CreateProcessRequest true "Process data"
// @Success 201 {object} ProcessResponse
// @Failure 403 {object} ErrorResponse
// @Router /processes [post]
func (handler *sampleHandler) CreateProcess(ctx *gin.Context) {
	var request CreateProcessRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid process data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	process := &processes.Process{
		Kind:      request.Kind,
		Comments:  request.Comments,
		SampleIDs: request.SampleIDs,
	}
	if request.Timestamp != nil {
		process.Timestamp = *request.Timestamp
	}

	created, err := handler.processService.Create(ctx, currentUserID(ctx), process)
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, newProcessResponse(created))
}

// ListMySamples handles the GET request to read the caller's working set
// @Summary List the caller's "My Samples" set
// @Tags Sample
// @Produce json
// @Success 200 {array} SampleResponse
// @Router /my-samples [get]
func (handler *sampleHandler) ListMySamples(ctx *gin.Context) {
	sampleList, err := handler.mySamplesService.List(ctx, currentUserID(ctx))
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, newSampleListResponse(sampleList))
}

// UpdateMySamples handles the PUT request to change the caller's working set
// @Summary Add and remove samples from the caller's "My Samples" set
// @Tags Sample
// @Accept json
// @Produce json
// @Param requestBody body MySamplesUpdateRequest true "Additions and removals"
// @Success 200 {object} InfoResponse
// @Failure 404 {object} ErrorResponse
// @Router /my-samples [put]
func (handler *sampleHandler) UpdateMySamples(ctx *gin.Context) {
	var request MySamplesUpdateRequest

	if err := ctx.ShouldBindJSON(&request); err != nil {
		writeFormError(ctx, fmt.Errorf("invalid my-samples data: %v", err.Error()))
		return
	}
	if err := request.Validate(); err != nil {
		writeFormError(ctx, err)
		return
	}

	userID := currentUserID(ctx)
	if len(request.Add) > 0 {
		if err := handler.mySamplesService.Add(ctx, userID, request.Add); err != nil {
			writeError(ctx, err)
			return
		}
	}
	if len(request.Remove) > 0 {
		if err := handler.mySamplesService.Remove(ctx, userID, request.Remove); err != nil {
			writeError(ctx, err)
			return
		}
	}

	ctx.JSON(http.StatusOK, InfoResponse{
		Message: fmt.Sprintf("added %d and removed %d samples", len(request.Add), len(request.Remove)),
	})
}

// convertToInt parses a query parameter, returning 0 for junk input so the
// query validation reports it.
func convertToInt(value string) int {
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
