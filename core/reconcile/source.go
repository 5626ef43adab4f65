package reconcile

import (
	"bytes"
	"context"
	"fmt"

	"report-compare/core/dataset"
	"report-compare/core/storage"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Source loads one side of a comparison. Implementations exist for local files,
// storage objects and database tables.
type Source interface {
	// Label returns the display name used in every reported message.
	Label() string
	// Kind identifies the source format; both sides of a comparison must share it.
	Kind() (string, error)
	// Load materializes the source keyed on key.
	Load(ctx context.Context, key string) (*dataset.Dataset, error)
}

// FileSource reads a CSV or spreadsheet file from the local filesystem.
type FileSource struct {
	Path    string
	Name    string
	Options dataset.Options
}

func (s FileSource) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Path
}

func (s FileSource) Kind() (string, error) {
	k, err := dataset.KindOf(s.Path)
	return string(k), err
}

func (s FileSource) Load(_ context.Context, key string) (*dataset.Dataset, error) {
	return dataset.OpenFile(s.Path, s.Label(), key, s.Options)
}

// ObjectSource reads a CSV or spreadsheet object from the bucket.
type ObjectSource struct {
	Client  storage.Client
	Bucket  string
	Object  string
	Name    string
	Options dataset.Options
}

func (s ObjectSource) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Object
}

func (s ObjectSource) Kind() (string, error) {
	k, err := dataset.KindOf(s.Object)
	return string(k), err
}

func (s ObjectSource) Load(ctx context.Context, key string) (*dataset.Dataset, error) {
	data, err := storage.Download(ctx, s.Client, s.Bucket, s.Object)
	if err != nil {
		return nil, err
	}
	kind, err := dataset.KindOf(s.Object)
	if err != nil {
		return nil, err
	}
	return dataset.Read(bytes.NewReader(data), kind, s.Label(), key, s.Options)
}

// TableSource reads every row of a database table.
type TableSource struct {
	DB    *gorm.DB
	Table string
	Name  string
}

func (s TableSource) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Table
}

func (s TableSource) Kind() (string, error) {
	if s.DB == nil {
		return "", fmt.Errorf("%w: no database connection for table %s", dataset.ErrUnsupportedSource, s.Table)
	}
	return "table", nil
}

func (s TableSource) Load(ctx context.Context, key string) (*dataset.Dataset, error) {
	return dataset.ReadTable(ctx, s.DB, s.Table, s.Label(), key)
}

// LoadPair checks that both sources are of the same kind, then loads them concurrently.
// It fails before reading anything when the kinds differ.
func LoadPair(ctx context.Context, left, right Source, key string) (*dataset.Dataset, *dataset.Dataset, error) {
	lk, err := left.Kind()
	if err != nil {
		return nil, nil, err
	}
	rk, err := right.Kind()
	if err != nil {
		return nil, nil, err
	}
	if lk != rk {
		return nil, nil, fmt.Errorf("%w: %s is %s, %s is %s",
			dataset.ErrIncompatibleSources, left.Label(), lk, right.Label(), rk)
	}

	var leftDS, rightDS *dataset.Dataset
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		leftDS, err = left.Load(gctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		rightDS, err = right.Load(gctx, key)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return leftDS, rightDS, nil
}

// CompareSources loads both sources and runs the whole pipeline.
func CompareSources(ctx context.Context, left, right Source, key string, opts Options) (*Report, error) {
	leftDS, rightDS, err := LoadPair(ctx, left, right, key)
	if err != nil {
		return nil, err
	}

	r, err := New(leftDS, rightDS, opts)
	if err != nil {
		return nil, err
	}
	return r.Run()
}
