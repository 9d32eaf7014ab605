package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"umlage/internal/domain"
	"umlage/internal/metrics"
	"umlage/internal/port"
)

// insuranceLocationRe finds the address printed after a "Versicherungsort"
// label when the extraction call returned none.
var insuranceLocationRe = regexp.MustCompile(`(?i)Versicherungsort[:\s]+(.+)`)

// InvoiceServiceConfig holds batch limits and scheduling settings.
type InvoiceServiceConfig struct {
	Concurrency   int
	FileTimeout   time.Duration
	MaxFiles      int
	MaxFileSize   int64
	ArchivePrefix string
	// Clock supplies the processing time; defaults to time.Now.
	Clock func() time.Time
}

// Stages are the per-file decision components, in pipeline order.
type Stages struct {
	Text       port.TextExtractor
	Fields     port.FieldExtractor
	Validator  port.InvoiceValidator
	Matcher    port.BuildingMatcher
	Classifier port.CostClassifier
	Drafts     port.DraftStore
}

// InvoiceService runs uploaded invoices through the validation and
// classification pipeline.
type InvoiceService interface {
	// ProcessBatch rejects the whole batch up front when any file violates
	// the upload rules. After that no per-file failure is returned as an
	// error; it is embedded in the file's result instead.
	ProcessBatch(ctx context.Context, files []domain.FileInput) (*domain.BatchResult, error)
}

type invoiceService struct {
	stages   Stages
	archive  port.ObjectStorage
	notifier port.ReviewNotifier
	metrics  *metrics.Metrics
	cfg      InvoiceServiceConfig
	log      zerolog.Logger
	newID    func() string
}

// NewInvoiceService creates a new InvoiceService. archive may be nil to
// disable archiving of flagged files.
func NewInvoiceService(
	stages Stages,
	archive port.ObjectStorage,
	notifier port.ReviewNotifier,
	m *metrics.Metrics,
	cfg InvoiceServiceConfig,
	log zerolog.Logger,
) InvoiceService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &invoiceService{
		stages:   stages,
		archive:  archive,
		notifier: notifier,
		metrics:  m,
		cfg:      cfg,
		log:      log,
		newID:    func() string { return uuid.New().String() },
	}
}

// ValidateUploads applies the batch-level upload rules: at least one file,
// at most maxFiles (0 disables), only .pdf names, and each file within
// maxFileSize bytes (0 disables).
func ValidateUploads(files []domain.FileInput, maxFiles int, maxFileSize int64) error {
	if len(files) == 0 {
		return domain.ErrNoFiles
	}
	if maxFiles > 0 && len(files) > maxFiles {
		return fmt.Errorf("%w: %d files, limit is %d", domain.ErrTooManyFiles, len(files), maxFiles)
	}
	for _, f := range files {
		if !IsPDFName(f.Name) {
			return fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, f.Name)
		}
	}
	for _, f := range files {
		if maxFileSize > 0 && int64(len(f.Data)) > maxFileSize {
			return fmt.Errorf("%w: %s", domain.ErrFileTooLarge, f.Name)
		}
	}
	return nil
}

// IsPDFName reports whether name carries the .pdf extension, ignoring case.
func IsPDFName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), domain.AllowedExtension)
}

func (s *invoiceService) ProcessBatch(ctx context.Context, files []domain.FileInput) (*domain.BatchResult, error) {
	if err := ValidateUploads(files, s.cfg.MaxFiles, s.cfg.MaxFileSize); err != nil {
		return nil, err
	}

	batch := &domain.BatchResult{
		BatchID:  s.newID(),
		Invoices: make([]domain.FileResult, len(files)),
	}
	log := s.log.With().Str("batch_id", batch.BatchID).Logger()
	log.Info().Int("files", len(files)).Int("concurrency", s.cfg.Concurrency).Msg("processing batch")

	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for i := range files {
		g.Go(func() error {
			fileLog := log.With().Int("index", i).Str("file", files[i].Name).Logger()
			result := s.processFile(ctx, batch.BatchID, files[i], fileLog)
			if result.FlagForManualReview {
				result.ArchiveKey = s.archiveFile(ctx, batch.BatchID, i, files[i], fileLog)
			}
			s.metrics.FileProcessed(result.Status)
			fileLog.Info().Str("status", string(result.Status)).
				Bool("flagged", result.FlagForManualReview).Msg("file processed")
			batch.Invoices[i] = result
			return nil
		})
	}
	_ = g.Wait()

	s.metrics.BatchProcessed(len(files))
	s.notifyReviewers(ctx, batch, log)
	return batch, nil
}

func (s *invoiceService) processFile(ctx context.Context, batchID string, file domain.FileInput, log zerolog.Logger) domain.FileResult {
	if s.cfg.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FileTimeout)
		defer cancel()
	}

	text, err := s.stages.Text.ExtractText(ctx, file.Data)
	if err != nil {
		log.Warn().Err(err).Msg("text extraction failed")
		return domain.FileResult{
			File:                file.Name,
			Status:              domain.FileStatusMalformed,
			Error:               domain.ErrorLabelMalformed,
			Detail:              err.Error(),
			FlagForManualReview: true,
		}
	}

	fields, err := s.stages.Fields.Extract(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("field extraction failed")
		return domain.FileResult{
			File:   file.Name,
			Status: domain.FileStatusExtractionFailed,
			Error:  domain.ErrorLabelLLMParsing,
			Detail: err.Error(),
		}
	}

	validation := s.stages.Validator.Validate(ctx, text)
	if !validation.Validated {
		log.Info().Bool("whole_building", validation.ScopeCheck.IsWholeBuilding).Msg("invoice not validated")
		scope := validation.ScopeCheck
		return domain.FileResult{
			File:                file.Name,
			Status:              domain.FileStatusValidationFailed,
			Validated:           domain.BoolPtr(false),
			Reason:              validation.Reason,
			ScopeCheck:          &scope,
			FlagForManualReview: true,
		}
	}

	address := ResolveAddress(fields, text)
	building, score := s.stages.Matcher.Match(address)
	if building == nil {
		log.Info().Str("address", address).Int("score", score).Msg("address not matched")
		return domain.FileResult{
			File:                file.Name,
			Status:              domain.FileStatusAddressUnmatched,
			Validated:           domain.BoolPtr(true),
			Error:               domain.ErrorLabelAddressUnmatched,
			FlagForManualReview: true,
			ResolvedAddress:     address,
		}
	}

	flag := false
	category, err := s.stages.Classifier.Classify(ctx, text)
	if err != nil {
		log.Warn().Err(err).Msg("cost classification failed")
		flag = true
	}
	if !domain.IsKnownCategory(category) {
		flag = true
	}
	allocationKey := domain.AllocationKeyFor(category)
	year := s.cfg.Clock().Year()

	scope := validation.ScopeCheck
	result := domain.FileResult{
		File:                file.Name,
		Status:              domain.FileStatusProcessed,
		Validated:           domain.BoolPtr(true),
		Building:            building,
		Year:                year,
		CostCategory:        category,
		AllocationKey:       allocationKey,
		ScopeCheck:          &scope,
		InvoiceFields:       fields,
		ValidationReason:    validation.Reason,
		FlagForManualReview: flag,
	}

	action, err := s.stages.Drafts.Append(ctx, port.DraftEntry{
		BatchID:       batchID,
		File:          file.Name,
		BuildingID:    building.ID,
		Year:          year,
		Category:      category,
		AllocationKey: allocationKey,
		GrossAmount:   fields.GrossAmount,
	})
	if err != nil {
		log.Error().Err(err).Int("building_id", building.ID).Msg("draft append failed")
		result.Error = domain.ErrorLabelDraftFailed
		result.Detail = err.Error()
		result.FlagForManualReview = true
		return result
	}
	result.DraftAction = action

	log.Debug().Int("building_id", building.ID).Int("score", score).
		Str("category", string(category)).Msg("invoice allocated")
	return result
}

// ResolveAddress prefers the extracted address and falls back to the text
// following a "Versicherungsort" label on the same line.
func ResolveAddress(fields *domain.InvoiceFields, text string) string {
	if addr := fields.AddressValue(); addr != "" {
		return addr
	}
	if m := insuranceLocationRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func (s *invoiceService) archiveFile(ctx context.Context, batchID string, idx int, file domain.FileInput, log zerolog.Logger) string {
	if s.archive == nil {
		return ""
	}
	key := ArchiveKey(s.cfg.ArchivePrefix, batchID, idx, file.Name)
	out, err := s.archive.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(file.Data),
		ContentType: "application/pdf",
		Size:        int64(len(file.Data)),
	})
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("archiving flagged file failed")
		return ""
	}
	return out.Key
}

// ArchiveKey builds the object key of a flagged file:
// <prefix>/<batch>/<index>-<base name>.
func ArchiveKey(prefix, batchID string, idx int, name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	key := fmt.Sprintf("%s/%d-%s", batchID, idx, base)
	if prefix = strings.Trim(prefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	return key
}

func (s *invoiceService) notifyReviewers(ctx context.Context, batch *domain.BatchResult, log zerolog.Logger) {
	flagged := batch.Flagged()
	if len(flagged) == 0 || s.notifier == nil {
		return
	}

	notice := port.ReviewNotice{BatchID: batch.BatchID}
	for _, i := range flagged {
		r := batch.Invoices[i]
		reason := r.Error
		if reason == "" {
			reason = r.Reason
		}
		if reason == "" && r.Status == domain.FileStatusProcessed && !domain.IsKnownCategory(r.CostCategory) {
			reason = "cost category not recognised"
		}
		notice.Items = append(notice.Items, port.ReviewItem{
			File:       r.File,
			Status:     string(r.Status),
			Reason:     reason,
			ArchiveKey: r.ArchiveKey,
		})
	}

	if err := s.notifier.NotifyReview(ctx, notice); err != nil {
		log.Error().Err(err).Int("flagged", len(flagged)).Msg("review notification failed")
	}
}
