package storage_test

import (
	"context"
	"testing"
	"time"

	"report-compare/core/storage"
	"report-compare/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "reports",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("DefaultTimeout", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:       "localhost:9000",
			AccessKey:      "testkey",
			SecretKey:      "testsecret",
			TimeoutSeconds: 0,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.Implements(t, (*storage.Client)(nil), client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		host    string
		secure  bool
		timeout time.Duration
	}{
		{"Plain", storage.Config{Endpoint: "localhost:9000"}, "localhost:9000", false, 30 * time.Second},
		{"HTTP Scheme", storage.Config{Endpoint: "http://minio:9000/", TimeoutSeconds: 5}, "minio:9000", false, 5 * time.Second},
		{"HTTPS Scheme", storage.Config{Endpoint: "https://s3.amazonaws.com"}, "s3.amazonaws.com", true, 30 * time.Second},
		{"SSL Flag", storage.Config{Endpoint: "minio:9000", UseSSL: true}, "minio:9000", true, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.host, tt.cfg.Host())
			assert.Equal(t, tt.secure, tt.cfg.Secure())
			assert.Equal(t, tt.timeout, tt.cfg.Timeout())
		})
	}
}

func TestEnsureBucket(t *testing.T) {
	t.Run("Check Fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, assert.AnError)

		created, err := storage.EnsureBucket(context.Background(), client, "reports", "")
		assert.ErrorIs(t, err, assert.AnError)
		assert.False(t, created)
	})

	t.Run("Create Fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "reports").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "reports", mock.Anything).Return(assert.AnError)

		created, err := storage.EnsureBucket(context.Background(), client, "reports", "eu-west-1")
		assert.ErrorContains(t, err, "failed to create bucket reports")
		assert.False(t, created)
	})
}
