package handler

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"umlage/internal/domain"
	"umlage/internal/export"
	"umlage/internal/service"
)

// filesField is the multipart field carrying the uploaded PDFs.
const filesField = "files"

// UploadLimits bounds a single multipart batch. Zero disables a limit.
type UploadLimits struct {
	MaxFiles    int
	MaxFileSize int64
}

// InvoiceHandler handles invoice batch endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	limits         UploadLimits
	log            zerolog.Logger
	now            func() time.Time
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, limits UploadLimits, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		limits:         limits,
		log:            log.With().Str("component", "invoice_handler").Logger(),
		now:            time.Now,
	}
}

// Process handles POST /api/v1/invoices/process
// @Summary Process a batch of invoices
// @Description Extract, validate, match and classify every uploaded PDF. Per-file
// @Description failures are reported inside the result list; the batch itself succeeds.
// @Tags invoices
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Invoice PDFs (repeatable)"
// @Success 200 {object} ProcessResponse "Ordered per-file results"
// @Failure 400 {object} ErrorResponseBody "Missing files or non-PDF upload"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /invoices/process [post]
func (h *InvoiceHandler) Process(c *gin.Context) {
	batch, ok := h.runBatch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, batch)
}

// Export handles POST /api/v1/invoices/process/export
// @Summary Process a batch of invoices and download the results
// @Description Runs the same batch as /invoices/process and returns one spreadsheet row per file.
// @Tags invoices
// @Accept multipart/form-data
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param files formData file true "Invoice PDFs (repeatable)"
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file "Spreadsheet"
// @Failure 400 {object} ErrorResponseBody "Missing files, non-PDF upload or bad format"
// @Failure 413 {object} ErrorResponseBody "File too large"
// @Failure 500 {object} ErrorResponseBody "Internal error"
// @Router /invoices/process/export [post]
func (h *InvoiceHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil || format == export.FormatJSON {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	batch, ok := h.runBatch(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, batch); err != nil {
		HandleError(c, h.log, fmt.Errorf("exporting batch %s: %w", batch.BatchID, err))
		return
	}

	filename := export.BuildFilename(batch.BatchID, format, h.now())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

// runBatch reads the multipart upload, rejects it before any processing when
// limits or the file type are violated, and runs the pipeline. It writes the
// error response itself and reports false on failure.
func (h *InvoiceHandler) runBatch(c *gin.Context) (*domain.BatchResult, bool) {
	var headers []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		headers = form.File[filesField]
	}

	if err := h.checkHeaders(headers); err != nil {
		HandleError(c, h.log, err)
		return nil, false
	}

	files := make([]domain.FileInput, 0, len(headers))
	for _, fh := range headers {
		data, err := readUpload(fh)
		if err != nil {
			h.log.Error().Err(err).Str("file", fh.Filename).Msg("reading upload")
			RespondError(c, http.StatusBadRequest, "INVALID_UPLOAD", "failed to read uploaded file")
			return nil, false
		}
		files = append(files, domain.FileInput{Name: fh.Filename, Data: data})
	}

	batch, err := h.invoiceService.ProcessBatch(c.Request.Context(), files)
	if err != nil {
		HandleError(c, h.log, err)
		return nil, false
	}
	return batch, true
}

// checkHeaders applies the upload limits using the multipart headers only,
// so oversized or non-PDF uploads are refused without reading them.
func (h *InvoiceHandler) checkHeaders(headers []*multipart.FileHeader) error {
	if len(headers) == 0 {
		return domain.ErrNoFiles
	}
	if h.limits.MaxFiles > 0 && len(headers) > h.limits.MaxFiles {
		return fmt.Errorf("%w: %d files, limit is %d", domain.ErrTooManyFiles, len(headers), h.limits.MaxFiles)
	}
	for _, fh := range headers {
		if !service.IsPDFName(fh.Filename) {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, fh.Filename)
		}
	}
	for _, fh := range headers {
		if h.limits.MaxFileSize > 0 && fh.Size > h.limits.MaxFileSize {
			return fmt.Errorf("%w: %s", domain.ErrFileTooLarge, fh.Filename)
		}
	}
	return nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("opening upload: %w", err)
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}
