package compare

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"report-compare/core/dataset"
	"report-compare/core/storage"
	"report-compare/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(mockClient *mocks.Client) *fiber.App {
	app := fiber.New()
	svc := NewService(mockClient, "test-bucket", zap.NewNop(), nil, testConfig)
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func TestHandleCompare(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.Client)
		stubInputs(mockClient)
		app := setupTestApp(mockClient)

		req := httptest.NewRequest("POST", "/compare", strings.NewReader(`{"left":"before.csv","right":"after.csv","key":"id"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, float64(1), body["mismatches"])
		assert.Len(t, body["summary"], 3)
	})

	t.Run("Bad Body", func(t *testing.T) {
		app := setupTestApp(new(mocks.Client))

		req := httptest.NewRequest("POST", "/compare", strings.NewReader(`{`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		app := setupTestApp(new(mocks.Client))

		req := httptest.NewRequest("POST", "/compare", strings.NewReader(`{"left":"before.csv"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Incompatible Files", func(t *testing.T) {
		app := setupTestApp(new(mocks.Client))

		req := httptest.NewRequest("POST", "/compare", strings.NewReader(`{"left":"before.csv","right":"after.xlsx"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Input Not Found", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
		app := setupTestApp(mockClient)

		req := httptest.NewRequest("POST", "/compare", strings.NewReader(`{"left":"before.csv","right":"after.csv"}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestHandleCompareTables_NoDatabase(t *testing.T) {
	app := setupTestApp(new(mocks.Client))

	req := httptest.NewRequest("POST", "/compare/tables", strings.NewReader(`{"left":"a","right":"b"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleResults(t *testing.T) {
	id := uuid.NewString()

	t.Run("List", func(t *testing.T) {
		mockClient := new(mocks.Client)
		ch := mocks.Listing("results/" + id + ".xlsx")
		mockClient.On("ListObjects", mock.Anything, "test-bucket", mock.Anything).Return(ch)
		app := setupTestApp(mockClient)

		resp, err := app.Test(httptest.NewRequest("GET", "/compare/results", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body []map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Len(t, body, 1)
		assert.Equal(t, id, body[0]["id"])
	})

	t.Run("Download", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "test-bucket", "results/"+id+".xlsx", mock.Anything).
			Return(mocks.Body("workbook"), nil)
		app := setupTestApp(mockClient)

		resp, err := app.Test(httptest.NewRequest("GET", "/compare/results/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, storage.ContentTypeXLSX, resp.Header.Get("Content-Type"))
		assert.Contains(t, resp.Header.Get("Content-Disposition"), id+".xlsx")

		data, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "workbook", string(data))
	})

	t.Run("Download Not Found", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("GetObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
			Return(nil, minio.ErrorResponse{Code: "NoSuchKey"})
		app := setupTestApp(mockClient)

		resp, err := app.Test(httptest.NewRequest("GET", "/compare/results/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Download Bad ID", func(t *testing.T) {
		app := setupTestApp(new(mocks.Client))

		resp, err := app.Test(httptest.NewRequest("GET", "/compare/results/not-an-id", nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode)
	})

	t.Run("Delete", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("RemoveObject", mock.Anything, "test-bucket", "results/"+id+".xlsx", mock.Anything).Return(nil)
		app := setupTestApp(mockClient)

		resp, err := app.Test(httptest.NewRequest("DELETE", "/compare/results/"+id, nil))
		require.NoError(t, err)
		assert.Equal(t, 204, resp.StatusCode)
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Invalid Request", ErrInvalidRequest, 400},
		{"Key Column", dataset.ErrKeyColumnNotFound, 400},
		{"Incompatible", dataset.ErrIncompatibleSources, 400},
		{"Duplicate Column", fmt.Errorf("before.csv: %w", dataset.ErrDuplicateColumn), 400},
		{"Not Found", storage.ErrObjectNotFound, 404},
		{"Other", assert.AnError, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}
