package compare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"report-compare/core/dataset"
	"report-compare/core/reconcile"
	"report-compare/core/storage"
	"report-compare/core/workbook"
	"report-compare/feature/compare/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrInvalidRequest is returned when a request misses required fields.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNoDatabase is returned for table comparisons when no database is connected.
	ErrNoDatabase = errors.New("database connection is not configured")
)

const resultExt = ".xlsx"

// Service runs comparisons over stored objects and database tables.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	db     *gorm.DB
	cfg    reconcile.Config
	cache  *reconcile.ReportCache
}

// NewService creates a new compare service. db may be nil when no database is configured.
func NewService(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg reconcile.Config) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		logger: logger,
		db:     db,
		cfg:    cfg,
		cache:  reconcile.NewReportCache(cfg.CacheTTL()),
	}
}

func (s *Service) options() reconcile.Options {
	return reconcile.Options{
		TrimSpaces:      s.cfg.TrimSpaces,
		CaseInsensitive: s.cfg.CaseInsensitive,
		Logger:          s.logger,
	}
}

func (s *Service) key(key string) string {
	if key == "" {
		return s.cfg.Key
	}
	return key
}

// Compare compares two objects of the inputs folder.
func (s *Service) Compare(ctx context.Context, req models.CompareRequest) (*models.CompareResponse, error) {
	if req.Left == "" || req.Right == "" {
		return nil, fmt.Errorf("%w: left and right are required", ErrInvalidRequest)
	}
	key := s.key(req.Key)
	sheet := req.Sheet
	if sheet == "" {
		sheet = s.cfg.Sheet
	}
	opts := dataset.Options{Sheet: sheet}

	left := reconcile.ObjectSource{
		Client:  s.client,
		Bucket:  s.bucket,
		Object:  storage.ObjectName(s.cfg.InputsPrefix, req.Left),
		Name:    labelOr(req.LeftName, req.Left),
		Options: opts,
	}
	right := reconcile.ObjectSource{
		Client:  s.client,
		Bucket:  s.bucket,
		Object:  storage.ObjectName(s.cfg.InputsPrefix, req.Right),
		Name:    labelOr(req.RightName, req.Right),
		Options: opts,
	}

	// Concurrent callers share one build, so it must outlive the request that started it.
	buildCtx := context.WithoutCancel(ctx)
	cacheKey := reconcile.CacheKey("objects", left.Object, right.Object, left.Label(), right.Label(), key, sheet)
	report, cached, err := s.cache.GetOrBuild(cacheKey, func() (*reconcile.Report, error) {
		return reconcile.CompareSources(buildCtx, left, right, key, s.options())
	})
	if err != nil {
		return nil, err
	}

	return s.respond(ctx, key, report, cached, req.Save)
}

// CompareTables compares two database tables.
func (s *Service) CompareTables(ctx context.Context, req models.TablesRequest) (*models.CompareResponse, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	if req.Left == "" || req.Right == "" {
		return nil, fmt.Errorf("%w: left and right are required", ErrInvalidRequest)
	}
	key := s.key(req.Key)

	left := reconcile.TableSource{DB: s.db, Table: req.Left}
	right := reconcile.TableSource{DB: s.db, Table: req.Right}

	// Table reports are not cached.
	report, err := reconcile.CompareSources(ctx, left, right, key, s.options())
	if err != nil {
		return nil, err
	}

	return s.respond(ctx, key, report, false, req.Save)
}

func (s *Service) respond(ctx context.Context, key string, report *reconcile.Report, cached, save bool) (*models.CompareResponse, error) {
	id := uuid.NewString()
	resp := models.NewCompareResponse(id, key, report, cached)

	s.logger.Info("Comparison completed",
		zap.String("id", id),
		zap.String("left", report.Left),
		zap.String("right", report.Right),
		zap.Bool("cached", cached),
		zap.Int("mismatches", resp.Mismatches),
	)

	if !save {
		return resp, nil
	}

	object, err := s.SaveResult(ctx, id, report)
	if err != nil {
		return nil, err
	}
	resp.ResultObject = object
	return resp, nil
}

// SaveResult renders report as a workbook and uploads it under the results folder.
func (s *Service) SaveResult(ctx context.Context, id string, report *reconcile.Report) (string, error) {
	var buf bytes.Buffer
	if err := workbook.Write(&buf, report); err != nil {
		return "", err
	}

	object := s.resultObject(id)
	if err := storage.Upload(ctx, s.client, s.bucket, object, buf.Bytes(), storage.ContentTypeXLSX); err != nil {
		return "", err
	}
	s.logger.Info("Result workbook stored", zap.String("object", object), zap.Int("size", buf.Len()))
	return object, nil
}

// ListResults lists the stored result workbooks.
func (s *Service) ListResults(ctx context.Context) ([]models.ResultEntry, error) {
	names, err := storage.List(ctx, s.client, s.bucket, s.cfg.ResultsPrefix)
	if err != nil {
		return nil, err
	}

	entries := []models.ResultEntry{}
	for _, name := range names {
		if !strings.HasSuffix(name, resultExt) {
			continue
		}
		entries = append(entries, models.ResultEntry{
			ID:     strings.TrimSuffix(path.Base(name), resultExt),
			Object: name,
		})
	}
	return entries, nil
}

// GetResult downloads a stored result workbook.
func (s *Service) GetResult(ctx context.Context, id string) ([]byte, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	return storage.Download(ctx, s.client, s.bucket, s.resultObject(id))
}

// DeleteResult removes a stored result workbook.
func (s *Service) DeleteResult(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	object := s.resultObject(id)
	if err := s.client.RemoveObject(ctx, s.bucket, object, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove %s: %w", object, err)
	}
	s.logger.Info("Result workbook removed", zap.String("object", object))
	return nil
}

func (s *Service) resultObject(id string) string {
	return storage.ObjectName(s.cfg.ResultsPrefix, id+resultExt)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: malformed result id %q", ErrInvalidRequest, id)
	}
	return nil
}

func labelOr(label, fallback string) string {
	if label != "" {
		return label
	}
	return fallback
}
