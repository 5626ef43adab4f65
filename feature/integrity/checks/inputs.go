package checks

import (
	"context"
	"fmt"
	"strings"

	"report-compare/core/dataset"
	"report-compare/core/storage"
)

// InputsReport lists the objects under the inputs folder, split by whether they can be compared.
type InputsReport struct {
	Prefix      string   `json:"prefix"`
	Supported   []string `json:"supported"`
	Unsupported []string `json:"unsupported"`
}

// CheckInputs lists the input objects and flags those no dataset reader accepts.
func CheckInputs(ctx context.Context, client storage.Client, bucket, prefix string) (*InputsReport, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	names, err := storage.List(ctx, client, bucket, storage.FolderKey(prefix))
	if err != nil {
		return nil, err
	}

	report := &InputsReport{
		Prefix:      strings.TrimSuffix(prefix, "/"),
		Supported:   []string{},
		Unsupported: []string{},
	}
	for _, name := range names {
		if _, err := dataset.KindOf(name); err != nil {
			report.Unsupported = append(report.Unsupported, name)
			continue
		}
		report.Supported = append(report.Supported, name)
	}
	return report, nil
}
