package integrity

import (
	"context"
	"testing"

	"report-compare/core/reconcile"
	"report-compare/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testConfig = reconcile.Config{Key: "id", InputsPrefix: "inputs", ResultsPrefix: "results"}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestService_Structure(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

	assert.Equal(t, []string{"inputs", "results"}, svc.RequiredFolders())

	t.Run("CheckStructure", func(t *testing.T) {
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing())

		missing, err := svc.CheckStructure(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, []string{"inputs", "results"}, missing)
	})

	t.Run("FixStructure", func(t *testing.T) {
		mockClient.On("PutObject", mock.Anything, "test-bucket", "results/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)
		err := svc.FixStructure(context.Background(), []string{"results"})
		assert.NoError(t, err)
	})
}

func TestService_Inputs(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

	mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
	mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(mocks.Listing())

	report, err := svc.CheckInputs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "inputs", report.Prefix)
	assert.Empty(t, report.Supported)
}

func TestService_Tables(t *testing.T) {
	t.Run("No Database", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), nil, testConfig)
		_, err := svc.CheckTables(context.Background(), []string{"a"}, "")
		assert.Error(t, err)
	})

	t.Run("Default Key", func(t *testing.T) {
		db, sqlMock := setupMockDB(t)
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), db, testConfig)

		sqlMock.ExpectQuery("SHOW COLUMNS").WillReturnRows(
			sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
				AddRow("id", "int", "NO", "PRI", nil, ""))

		report, err := svc.CheckTables(context.Background(), []string{"a"}, "")
		require.NoError(t, err)
		assert.Equal(t, "id", report.Key)
		assert.True(t, report.Matched)
	})
}

func TestService_EnsureBucket(t *testing.T) {
	t.Run("Creates Missing Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "test-bucket", mock.Anything).Return(nil)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

		created, err := svc.EnsureBucket(context.Background())
		require.NoError(t, err)
		assert.True(t, created)
		mockClient.AssertExpectations(t)
	})

	t.Run("Existing Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "test-bucket").Return(true, nil)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

		created, err := svc.EnsureBucket(context.Background())
		require.NoError(t, err)
		assert.False(t, created)
		mockClient.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})
}
