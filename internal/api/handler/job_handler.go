package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jobboard/job-portal/internal/api/metrics"
	"github.com/jobboard/job-portal/internal/core/domain"
	"github.com/jobboard/job-portal/internal/core/ports"
)

// JobHandler handles HTTP requests for job postings.
type JobHandler struct {
	service ports.JobService
}

func NewJobHandler(service ports.JobService) *JobHandler {
	return &JobHandler{service: service}
}

// List handles GET /api/jobs.
//
// @Summary      List active jobs
// @Tags         jobs
// @Produce      json
// @Param        keyword   query     string  false  "Substring of title, description or company"
// @Param        location  query     string  false  "Substring of location"
// @Param        jobType   query     string  false  "Exact job type"  Enums(Full Time, Part Time, Freelance, Internship, Temporary)
// @Param        page      query     int     false  "Page number"     default(1)
// @Param        limit     query     int     false  "Page size"       default(10)
// @Param        sort      query     string  false  "Comma separated fields, '-' prefix for descending"  default(-postedDate)
// @Success      200       {object}  jobListResponse
// @Failure      400       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	var q listJobsQuery
	err := echo.QueryParamsBinder(c).
		String("keyword", &q.Keyword).
		String("location", &q.Location).
		String("jobType", &q.JobType).
		Int("page", &q.Page).
		Int("limit", &q.Limit).
		String("sort", &q.Sort).
		BindError()
	if err != nil {
		return err
	}

	result, err := h.service.ListJobs(c.Request().Context(), toListInput(q))
	if err != nil {
		return err
	}

	metrics.JobSearchResults.Observe(float64(result.Total))
	return c.JSON(http.StatusOK, toJobListResponse(result))
}

// Get handles GET /api/jobs/:id.
//
// @Summary      Get a job by id
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  jobResponse
// @Failure      404  {object}  errorResponse
// @Failure      500  {object}  errorResponse
// @Router       /jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	job, err := h.service.GetJob(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobResponse{Success: true, Data: job})
}

// Create handles POST /api/jobs.
//
// @Summary      Create a job posting
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job details"
// @Success      201   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.CreateJob(c.Request().Context(), toCreateJobInput(req, userID))
	if err != nil {
		return err
	}

	metrics.JobsCreatedTotal.WithLabelValues(string(job.JobType)).Inc()
	return c.JSON(http.StatusCreated, jobResponse{Success: true, Data: job})
}

// Update handles PUT /api/jobs/:id.
//
// @Summary      Update a job posting
// @Description  Only the user who posted the job may update it.
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	// Ownership is settled before the body is looked at.
	id := c.Param("id")
	current, err := h.service.GetJob(c.Request().Context(), id)
	if err != nil {
		metrics.JobMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return err
	}
	if !current.IsOwnedBy(userID) {
		metrics.JobMutationsTotal.WithLabelValues("update", mutationResult(domain.ErrNotJobOwner)).Inc()
		return domain.ErrNotJobOwner
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	job, err := h.service.UpdateJob(c.Request().Context(), toUpdateJobInput(req, id, userID))
	if err != nil {
		metrics.JobMutationsTotal.WithLabelValues("update", mutationResult(err)).Inc()
		return err
	}

	metrics.JobMutationsTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, jobResponse{Success: true, Data: job})
}

// Delete handles DELETE /api/jobs/:id.
//
// @Summary      Delete a job posting
// @Description  Only the user who posted the job may delete it.
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Job id"
// @Success      200  {object}  response
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /jobs/{id} [delete]
func (h *JobHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteJob(c.Request().Context(), c.Param("id"), userID); err != nil {
		metrics.JobMutationsTotal.WithLabelValues("delete", mutationResult(err)).Inc()
		return err
	}

	metrics.JobMutationsTotal.WithLabelValues("delete", "success").Inc()
	return c.JSON(http.StatusOK, response{Success: true, Data: struct{}{}})
}

// Stats handles GET /api/jobs/stats.
//
// @Summary      Job statistics
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  jobStatsResponse
// @Failure      500  {object}  errorResponse
// @Router       /jobs/stats [get]
func (h *JobHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, jobStatsResponse{Success: true, Data: stats})
}

func mutationResult(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotJobOwner):
		return "not_owner"
	case errors.Is(err, domain.ErrJobNotFound):
		return "not_found"
	default:
		return "error"
	}
}
