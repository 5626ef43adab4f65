package compare

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"report-compare/core/database"
	"report-compare/core/reconcile"
	"report-compare/core/storage"
	"report-compare/core/storage/mocks"
	"report-compare/feature/compare/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	beforeCSV = "id,name,dept\n1,Ann,Sales\n2,Bob,Ops\n3,Cid,IT\n"
	afterCSV  = "id,name,dept,badge\n1,Ann,Sales,a\n2,Bob,Finance,b\n4,Dee,HR,d\n"
)

var testConfig = reconcile.Config{Key: "id", InputsPrefix: "inputs", ResultsPrefix: "results"}

// stubInputs serves both input files once.
func stubInputs(m *mocks.Client) {
	m.On("GetObject", mock.Anything, "test-bucket", "inputs/before.csv", mock.Anything).
		Return(mocks.Body(beforeCSV), nil).Once()
	m.On("GetObject", mock.Anything, "test-bucket", "inputs/after.csv", mock.Anything).
		Return(mocks.Body(afterCSV), nil).Once()
}

func setupTablesDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE before_emp (id INTEGER, name TEXT, dept TEXT)").Error)
	require.NoError(t, db.Exec("CREATE TABLE after_emp (id INTEGER, name TEXT, dept TEXT)").Error)
	require.NoError(t, db.Exec("INSERT INTO before_emp VALUES (1, 'Ann', 'Sales'), (2, 'Bob', 'Ops')").Error)
	require.NoError(t, db.Exec("INSERT INTO after_emp VALUES (1, 'Ann', 'Sales'), (2, 'Bob', 'Finance')").Error)
	return db
}

func TestService_Compare(t *testing.T) {
	ctx := context.Background()

	t.Run("Invalid Request", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), nil, testConfig)
		_, err := svc.Compare(ctx, models.CompareRequest{Left: "before.csv"})
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		stubInputs(mockClient)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

		resp, err := svc.Compare(ctx, models.CompareRequest{Left: "before.csv", Right: "after.csv"})
		require.NoError(t, err)

		_, err = uuid.Parse(resp.ID)
		assert.NoError(t, err)
		assert.Equal(t, "before.csv", resp.Left)
		assert.Equal(t, "id", resp.Key)
		assert.False(t, resp.Cached)
		assert.Equal(t, 1, resp.ExtraColumns)
		assert.Equal(t, 2, resp.Missing)
		assert.Equal(t, 1, resp.Mismatches)
		assert.Equal(t, []reconcile.SummaryRow{
			{Description: "Extra columns", Count: 1},
			{Description: "Missing records from files", Count: 2},
			{Description: "Compare mismatch", Field: "dept", Count: 1},
		}, resp.Summary)
		assert.Empty(t, resp.ResultObject)
		mockClient.AssertExpectations(t)
	})

	t.Run("Labels", func(t *testing.T) {
		mockClient := new(mocks.Client)
		stubInputs(mockClient)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

		resp, err := svc.Compare(ctx, models.CompareRequest{
			Left: "before.csv", Right: "after.csv", LeftName: "2023", RightName: "2024",
		})
		require.NoError(t, err)
		assert.Equal(t, "2023", resp.Left)
		assert.Equal(t, "2024", resp.Right)
	})

	t.Run("Cached", func(t *testing.T) {
		cfg := testConfig
		cfg.CacheTTLSeconds = 60

		mockClient := new(mocks.Client)
		stubInputs(mockClient)
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, cfg)

		req := models.CompareRequest{Left: "before.csv", Right: "after.csv"}
		first, err := svc.Compare(ctx, req)
		require.NoError(t, err)
		second, err := svc.Compare(ctx, req)
		require.NoError(t, err)

		assert.False(t, first.Cached)
		assert.True(t, second.Cached)
		assert.NotEqual(t, first.ID, second.ID)
		mockClient.AssertNumberOfCalls(t, "GetObject", 2)
	})

	t.Run("Build Outlives Caller", func(t *testing.T) {
		live := mock.MatchedBy(func(c context.Context) bool { return c.Err() == nil })
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", live, "test-bucket", "inputs/before.csv", mock.Anything).
			Return(mocks.Body(beforeCSV), nil).Once()
		mockClient.On("GetObject", live, "test-bucket", "inputs/after.csv", mock.Anything).
			Return(mocks.Body(afterCSV), nil).Once()
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		resp, err := svc.Compare(cancelled, models.CompareRequest{Left: "before.csv", Right: "after.csv"})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Mismatches)
		mockClient.AssertExpectations(t)
	})

	t.Run("Save", func(t *testing.T) {
		mockClient := new(mocks.Client)
		stubInputs(mockClient)

		var uploaded []byte
		mockClient.On("PutObject", mock.Anything, "test-bucket", mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "results/") && strings.HasSuffix(name, ".xlsx")
		}), mock.Anything, mock.Anything, mock.MatchedBy(func(opts minio.PutObjectOptions) bool {
			return opts.ContentType == storage.ContentTypeXLSX
		})).Run(func(args mock.Arguments) {
			uploaded, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).Return(minio.UploadInfo{}, nil)

		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)
		resp, err := svc.Compare(ctx, models.CompareRequest{Left: "before.csv", Right: "after.csv", Save: true})
		require.NoError(t, err)
		assert.Equal(t, "results/"+resp.ID+".xlsx", resp.ResultObject)

		f, err := excelize.OpenReader(bytes.NewReader(uploaded))
		require.NoError(t, err)
		defer f.Close()
		assert.Contains(t, f.GetSheetList(), "Mismatches")
	})

	t.Run("Input Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)

		_, err := svc.Compare(ctx, models.CompareRequest{Left: "before.csv", Right: "after.csv"})
		assert.ErrorIs(t, err, storage.ErrObjectNotFound)
	})
}

func TestService_CompareTables(t *testing.T) {
	ctx := context.Background()

	t.Run("No Database", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), nil, testConfig)
		_, err := svc.CompareTables(ctx, models.TablesRequest{Left: "a", Right: "b"})
		assert.ErrorIs(t, err, ErrNoDatabase)
	})

	t.Run("Success", func(t *testing.T) {
		svc := NewService(new(mocks.Client), "test-bucket", zap.NewNop(), setupTablesDB(t), testConfig)

		resp, err := svc.CompareTables(ctx, models.TablesRequest{Left: "before_emp", Right: "after_emp"})
		require.NoError(t, err)
		assert.Equal(t, "before_emp", resp.Left)
		assert.Equal(t, 1, resp.Mismatches)
		assert.Zero(t, resp.Missing)
	})
}

func TestService_Results(t *testing.T) {
	ctx := context.Background()
	id := uuid.NewString()

	t.Run("List", func(t *testing.T) {
		mockClient := new(mocks.Client)
		ch := mocks.Listing("results/", "results/"+id+".xlsx", "results/notes.txt")
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(ch)

		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)
		entries, err := svc.ListResults(ctx)
		require.NoError(t, err)
		assert.Equal(t, []models.ResultEntry{{ID: id, Object: "results/" + id + ".xlsx"}}, entries)
	})

	t.Run("Get", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "test-bucket", "results/"+id+".xlsx", mock.Anything).
			Return(mocks.Body("workbook"), nil)

		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)
		data, err := svc.GetResult(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "workbook", string(data))

		_, err = svc.GetResult(ctx, "../secrets")
		assert.ErrorIs(t, err, ErrInvalidRequest)
	})

	t.Run("Delete", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("RemoveObject", mock.Anything, "test-bucket", "results/"+id+".xlsx", mock.Anything).Return(nil)

		svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)
		require.NoError(t, svc.DeleteResult(ctx, id))
		mockClient.AssertExpectations(t)

		assert.ErrorIs(t, svc.DeleteResult(ctx, "nope"), ErrInvalidRequest)
	})
}
