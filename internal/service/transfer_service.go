package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"liftlog/internal/domain"
	"liftlog/internal/reconcile"
	"liftlog/internal/repository"
	"liftlog/internal/serial"
	"liftlog/internal/storage"

	log "github.com/sirupsen/logrus"
)

// --- Error Definitions ---
var (
	ErrUnsupportedFile = errors.New("unsupported file type: only .json and .csv are accepted")
	ErrUnknownFormat   = errors.New("unknown export format: use json or csv")
)

// ExportFile is a rendered export ready to be sent to the client.
type ExportFile struct {
	Name        string
	ContentType string
	Data        []byte
	// ArchiveURL is a presigned download link for the archived copy,
	// empty when archiving is disabled.
	ArchiveURL string
}

// ImportResult reports a finished batch import. Imported counts the records
// that passed validation and were merged; Dropped counts the silently
// discarded invalid ones.
type ImportResult struct {
	Imported int               `json:"imported"`
	Dropped  int               `json:"dropped"`
	Entries  []domain.LogEntry `json:"entries"`
}

type TransferService interface {
	Export(ctx context.Context, owner, format string) (*ExportFile, error)
	Import(ctx context.Context, owner, filename string, data []byte) (*ImportResult, error)
	MigrateLegacySnapshot(ctx context.Context, owner string, snapshot []byte) (int, error)
}

// transferService implements export, import and the one-shot legacy
// snapshot migration.
type transferService struct {
	logRepo repository.LogRepository
	idGen   domain.IDGenerator
	archive storage.ExportArchive // nil when archiving is disabled
	now     func() time.Time
}

// NewTransferService creates a new instance of transferService.
// Pass a nil archive to disable export archiving.
func NewTransferService(logRepo repository.LogRepository, idGen domain.IDGenerator, archive storage.ExportArchive) TransferService {
	return &transferService{
		logRepo: logRepo,
		idGen:   idGen,
		archive: archive,
		now:     time.Now,
	}
}

// Export renders the whole collection as JSON or CSV. The filename carries
// the current date; when an archive is configured the file is also uploaded
// and a presigned download URL returned.
func (s *transferService) Export(ctx context.Context, owner, format string) (*ExportFile, error) {
	entries, err := s.logRepo.LoadAll(ctx, owner)
	if err != nil {
		return nil, err
	}

	file := &ExportFile{
		Name: fmt.Sprintf("liftlog-export-%s.%s", domain.FormatDate(s.now()), format),
	}
	switch format {
	case "json":
		file.ContentType = "application/json"
		if file.Data, err = serial.EncodeJSON(entries); err != nil {
			return nil, err
		}
	case "csv":
		file.ContentType = "text/csv"
		file.Data = serial.EncodeCSV(entries)
	default:
		return nil, ErrUnknownFormat
	}

	if s.archive != nil {
		objectKey := fmt.Sprintf("exports/%s/%s", owner, file.Name)
		if err := s.archive.Put(ctx, objectKey, file.ContentType, file.Data); err != nil {
			// The export itself succeeded; a failed archive upload is not fatal.
			log.Warnf("archiving export %s failed: %v", objectKey, err)
			return file, nil
		}
		url, err := s.archive.GeneratePresignedDownloadURL(ctx, objectKey, storage.DefaultPresignedURLExpiry)
		if err != nil {
			log.Warnf("presigning archived export %s failed: %v", objectKey, err)
			return file, nil
		}
		file.ArchiveURL = url
	}
	return file, nil
}

// Import decodes an uploaded .json or .csv file and merges the valid records
// into the owner's collection, last writer winning by identifier. Invalid
// records are dropped silently and counted; an unparseable file aborts the
// import without mutating anything.
func (s *transferService) Import(ctx context.Context, owner, filename string, data []byte) (*ImportResult, error) {
	var (
		incoming []domain.LogEntry
		dropped  int
		err      error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		incoming, dropped, err = serial.DecodeJSON(data)
	case ".csv":
		incoming, dropped, err = serial.CSVRowsToLogs(serial.ParseCSV(string(data)), s.idGen)
	default:
		return nil, ErrUnsupportedFile
	}
	if err != nil {
		return nil, err
	}

	existing, err := s.logRepo.LoadAll(ctx, owner)
	if err != nil {
		return nil, err
	}

	// Persist as replace-by-identifier: an incoming entry sharing an ID with
	// a stored one overwrites it. The batch lands as one unit, so a storage
	// failure leaves the prior collection intact.
	if err := s.logRepo.ReplaceBatch(ctx, owner, incoming); err != nil {
		return nil, err
	}

	return &ImportResult{
		Imported: len(incoming),
		Dropped:  dropped,
		Entries:  reconcile.Merge(existing, incoming),
	}, nil
}

// MigrateLegacySnapshot copies a legacy local snapshot into the remote store
// as one batch insert. Records go through the same validation as any import;
// the caller deletes its snapshot only after this returns successfully.
// Running it twice duplicates rows, the only guard is snapshot existence on
// the caller's side.
func (s *transferService) MigrateLegacySnapshot(ctx context.Context, owner string, snapshot []byte) (int, error) {
	entries, dropped, err := serial.DecodeJSON(snapshot)
	if err != nil {
		return 0, err
	}
	if dropped > 0 {
		log.Infof("legacy migration for %s: dropping %d invalid entries", owner, dropped)
	}

	if err := s.logRepo.InsertBatch(ctx, owner, entries); err != nil {
		return 0, err
	}
	return len(entries), nil
}
