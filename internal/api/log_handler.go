package api

import (
	"errors"
	"net/http"
	"strconv"

	"liftlog/internal/domain"
	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
)

// LogHandler holds the log service dependency.
type LogHandler struct {
	logService service.LogService
}

// NewLogHandler creates a new LogHandler.
func NewLogHandler(logService service.LogService) *LogHandler {
	return &LogHandler{logService: logService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateLogRequest defines the expected JSON for logging one set. Weight and
// reps are deliberately untyped: clients send them as numbers or strings and
// the model coerces them. The 500kg/100rep ceilings are soft input bounds
// enforced client-side, not model invariants.
type CreateLogRequest struct {
	Date     string `json:"date"`
	Exercise string `json:"exercise"`
	Weight   any    `json:"weight"`
	Reps     any    `json:"reps"`
	Note     string `json:"note"`
}

// LogEntryResponse is the DTO for returning a log entry.
type LogEntryResponse struct {
	ID       string  `json:"id"`
	Date     string  `json:"date"`
	Exercise string  `json:"exercise"`
	Weight   float64 `json:"weight"`
	Reps     int     `json:"reps"`
	Note     string  `json:"note,omitempty"`
}

// MapEntryToResponse converts a domain.LogEntry to its DTO.
func MapEntryToResponse(e domain.LogEntry) LogEntryResponse {
	return LogEntryResponse{
		ID:       e.ID,
		Date:     e.Date,
		Exercise: string(e.Exercise),
		Weight:   e.Weight,
		Reps:     e.Reps,
		Note:     e.Note,
	}
}

// MapEntriesToResponse converts a slice of entries to DTOs.
func MapEntriesToResponse(entries []domain.LogEntry) []LogEntryResponse {
	responses := make([]LogEntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = MapEntryToResponse(e)
	}
	return responses
}

// --- Handler Methods ---

// ListLogs godoc
// @Summary List all log entries
// @Description Returns every entry of the authenticated user, newest date first.
// @Tags Logs
// @Produce json
// @Security BearerAuth
// @Success 200 {array} LogEntryResponse
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /logs [get]
func (h *LogHandler) ListLogs(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	entries, err := h.logService.ListEntries(c.Request.Context(), owner)
	if err != nil {
		// Transient storage failure: nothing changed, retry on next trigger.
		abortWithError(c, http.StatusServiceUnavailable, "Could not load log entries")
		return
	}
	c.JSON(http.StatusOK, MapEntriesToResponse(entries))
}

// CreateLog godoc
// @Summary Record one set
// @Description Validates and stores a new log entry.
// @Tags Logs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param entry body CreateLogRequest true "Set details"
// @Success 201 {object} LogEntryResponse
// @Failure 400 {object} gin.H "Per-field validation messages"
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /logs [post]
func (h *LogHandler) CreateLog(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	var req CreateLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.logService.AddEntry(c.Request.Context(), owner, domain.Candidate{
		Date:     req.Date,
		Exercise: req.Exercise,
		Weight:   req.Weight,
		Reps:     req.Reps,
		Note:     req.Note,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			// Blocking state for manual entry: inline per-field messages.
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
			return
		}
		abortWithError(c, http.StatusServiceUnavailable, "Could not store log entry")
		return
	}

	c.JSON(http.StatusCreated, MapEntryToResponse(entry))
}

// DeleteLog godoc
// @Summary Delete one log entry
// @Tags Logs
// @Security BearerAuth
// @Param id path string true "Entry identifier"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Unknown identifier"
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /logs/{id} [delete]
func (h *LogHandler) DeleteLog(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	err = h.logService.DeleteEntry(c.Request.Context(), owner, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		abortWithError(c, http.StatusServiceUnavailable, "Could not delete log entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// DayStats godoc
// @Summary Stats for one date
// @Description Entries grouped by exercise with volume, estimated 1RM per set
// @Description and the personal records achieved on that date.
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} service.DayStats
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /stats/day/{date} [get]
func (h *LogHandler) DayStats(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	day, err := h.logService.DayStats(c.Request.Context(), owner, c.Param("date"))
	if err != nil {
		abortWithError(c, http.StatusServiceUnavailable, "Could not compute day stats")
		return
	}
	c.JSON(http.StatusOK, day)
}

// VolumeSeries godoc
// @Summary Rolling daily-volume series
// @Description Total volume per day for the last N days ending today, oldest first.
// @Tags Stats
// @Produce json
// @Security BearerAuth
// @Param days query int false "Window length in days (default 30)"
// @Success 200 {array} stats.DayVolume
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /stats/volume [get]
func (h *LogHandler) VolumeSeries(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	series, err := h.logService.VolumeSeries(c.Request.Context(), owner, days)
	if err != nil {
		abortWithError(c, http.StatusServiceUnavailable, "Could not compute volume series")
		return
	}
	c.JSON(http.StatusOK, series)
}
