package blob

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartmandi/inference/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewS3Source_Validation(t *testing.T) {
	_, err := NewS3Source(context.Background(), S3Config{Region: "us-east-1"})
	assert.ErrorContains(t, err, "bucket")

	_, err = NewS3Source(context.Background(), S3Config{Bucket: "models"})
	assert.ErrorContains(t, err, "region")
}

func TestNormaliseEndpoint(t *testing.T) {
	tests := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"https://minio.local:9000", false, "https://minio.local:9000"},
		{"minio.local:9000", false, "http://minio.local:9000"},
		{"minio.local:9000", true, "https://minio.local:9000"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, normaliseEndpoint(tt.endpoint, tt.useSSL))
		})
	}
}

func TestS3Source_ObjectKey(t *testing.T) {
	assert.Equal(t, "xgb_model.json", (&S3Source{}).objectKey("xgb_model.json"))
	assert.Equal(t, "prod/v3/xgb_model.json", (&S3Source{prefix: "prod/v3"}).objectKey("xgb_model.json"))
}

func TestS3Source_Open(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/models/prod/xgb_model.json":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"name":"pricing"}`))
		default:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`))
		}
	}))
	defer server.Close()

	source, err := NewS3Source(context.Background(), S3Config{
		Endpoint:       server.URL,
		Region:         "us-east-1",
		Bucket:         "models",
		Prefix:         "prod",
		AccessKey:      "test-access",
		SecretKey:      "test-secret",
		ForcePathStyle: true,
	})
	require.NoError(t, err)

	t.Run("existing object", func(t *testing.T) {
		rc, err := source.Open(context.Background(), "xgb_model.json")
		require.NoError(t, err)
		defer rc.Close()

		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"pricing"}`, string(body))
	})

	t.Run("missing object", func(t *testing.T) {
		_, err := source.Open(context.Background(), "model_features.json")
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
	})
}
