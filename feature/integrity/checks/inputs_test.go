package checks

import (
	"context"
	"testing"

	"report-compare/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCheckInputs(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "reports").Return(true, nil)

	ch := mocks.Listing("inputs/", "inputs/before.csv", "inputs/after.xlsx", "inputs/notes.txt")
	mockClient.On("ListObjects", mock.Anything, "reports", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
		return opts.Prefix == "inputs/"
	})).Return(ch)

	report, err := CheckInputs(context.Background(), mockClient, "reports", "inputs")
	require.NoError(t, err)

	assert.Equal(t, "inputs", report.Prefix)
	assert.Equal(t, []string{"inputs/after.xlsx", "inputs/before.csv"}, report.Supported)
	assert.Equal(t, []string{"inputs/notes.txt"}, report.Unsupported)
}

func TestCheckInputs_BucketMissing(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("BucketExists", mock.Anything, "reports").Return(false, nil)

	_, err := CheckInputs(context.Background(), mockClient, "reports", "inputs")
	assert.Error(t, err)
}
