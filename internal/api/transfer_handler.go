package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"liftlog/internal/serial"
	"liftlog/internal/service"

	"github.com/gin-gonic/gin"
)

// Uploaded import files and legacy snapshots are small; cap reads anyway.
const maxImportSize = 10 << 20 // 10 MiB

// TransferHandler holds the transfer service dependency.
type TransferHandler struct {
	transferService service.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferService service.TransferService) *TransferHandler {
	return &TransferHandler{transferService: transferService}
}

// Export godoc
// @Summary Export the whole log
// @Description Streams the collection as a date-suffixed .json or .csv file.
// @Description When archiving is configured the response carries a presigned
// @Description URL of the archived copy in the X-Archive-Url header.
// @Tags Transfer
// @Produce json
// @Produce text/csv
// @Security BearerAuth
// @Param format query string false "json or csv (default json)"
// @Success 200 {file} file
// @Failure 400 {object} gin.H "Unknown format"
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /logs/export [get]
func (h *TransferHandler) Export(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	file, err := h.transferService.Export(c.Request.Context(), owner, c.DefaultQuery("format", "json"))
	if err != nil {
		if errors.Is(err, service.ErrUnknownFormat) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusServiceUnavailable, "Could not build export")
		return
	}

	if file.ArchiveURL != "" {
		c.Header("X-Archive-Url", file.ArchiveURL)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

// Import godoc
// @Summary Import a .json or .csv file
// @Description Merges valid records into the collection (last writer wins by
// @Description identifier) and reports how many were imported and dropped.
// @Tags Transfer
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Export file (.json or .csv)"
// @Success 200 {object} service.ImportResult
// @Failure 400 {object} gin.H "Unsupported extension or unparseable payload"
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /logs/import [post]
func (h *TransferHandler) Import(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Missing upload: expected multipart field 'file'")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxImportSize))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read uploaded file")
		return
	}

	result, err := h.transferService.Import(c.Request.Context(), owner, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFile):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, serial.ErrBadPayload):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusServiceUnavailable, "Could not store imported entries")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// Migrate godoc
// @Summary One-shot legacy snapshot migration
// @Description Accepts the legacy local snapshot (versioned wrapper or bare
// @Description array) and batch-inserts the valid entries. The client deletes
// @Description its snapshot only after a successful response.
// @Tags Transfer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "migrated count"
// @Failure 400 {object} gin.H "Unparseable snapshot"
// @Failure 503 {object} gin.H "Storage unavailable"
// @Router /logs/migrate [post]
func (h *TransferHandler) Migrate(c *gin.Context) {
	owner, err := getOwnerFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user")
		return
	}

	snapshot, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read snapshot body")
		return
	}

	migrated, err := h.transferService.MigrateLegacySnapshot(c.Request.Context(), owner, snapshot)
	if err != nil {
		if errors.Is(err, serial.ErrBadPayload) {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		abortWithError(c, http.StatusServiceUnavailable, "Could not migrate snapshot")
		return
	}
	c.JSON(http.StatusOK, gin.H{"migrated": migrated})
}
