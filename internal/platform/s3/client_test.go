package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// testClient creates a Client backed by a test HTTP server.
// The handler receives real S3 XML-protocol requests.
func testClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)

	client := s3.New(s3.Options{
		Region:       "us-east-1",
		BaseEndpoint: aws.String(server.URL),
		UsePathStyle: true,
		Credentials:  credentials.NewStaticCredentialsProvider("test-key", "test-secret", ""),
		HTTPClient: &http.Client{
			Transport: &http.Transport{},
		},
	})

	return &Client{s3: client}, server
}

func xmlResponse(w http.ResponseWriter, statusCode int, body string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(statusCode)
	_, _ = w.Write([]byte(body))
}

func TestNewClient(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/nonexistent")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/nonexistent")

	client, err := NewClient(context.Background(), Options{
		Endpoint:  "https://objects.example.com",
		Region:    "us-east-1",
		AccessKey: "access",
		SecretKey: "secret",
		PathStyle: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client == nil || client.s3 == nil {
		t.Fatal("expected non-nil client")
	}
}

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain error", errors.New("boom"), false},
		{"typed no such bucket", &s3types.NoSuchBucket{}, true},
		{"typed not found", fmt.Errorf("wrapped: %w", &s3types.NotFound{}), true},
		{"generic api 404", &smithy.GenericAPIError{Code: "404"}, true},
		{"generic api other", &smithy.GenericAPIError{Code: "AccessDenied"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNotFoundError(tt.err); got != tt.want {
				t.Errorf("isNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUploadTopology_Success(t *testing.T) {
	t.Parallel()

	var (
		mu          sync.Mutex
		capturedKey string
		capturedCT  string
		capturedDoc []byte
	)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusOK)
		case http.MethodPut:
			mu.Lock()
			capturedKey = strings.TrimPrefix(r.URL.Path, "/exports/")
			capturedCT = r.Header.Get("Content-Type")
			capturedDoc, _ = io.ReadAll(r.Body)
			mu.Unlock()
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})

	client, server := testClient(t, handler)
	defer server.Close()

	doc := []byte(`{"cluster":"chefspec"}`)
	if err := client.UploadTopology(context.Background(), "exports", "chefspec/topology.json", doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if capturedKey != "chefspec/topology.json" {
		t.Errorf("expected key chefspec/topology.json, got %s", capturedKey)
	}
	if capturedCT != "application/json" {
		t.Errorf("expected content type application/json, got %s", capturedCT)
	}
	if string(capturedDoc) != string(doc) {
		t.Errorf("expected body %s, got %s", doc, capturedDoc)
	}
}

func TestUploadTopology_MissingBucket(t *testing.T) {
	t.Parallel()

	puts := 0
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			puts++
		}
		w.WriteHeader(http.StatusNotFound)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	err := client.UploadTopology(context.Background(), "missing", "chefspec/topology.json", []byte("{}"))
	if !errors.Is(err, ErrBucketNotFound) {
		t.Fatalf("expected ErrBucketNotFound, got %v", err)
	}
	if puts != 0 {
		t.Errorf("expected no upload, got %d", puts)
	}
}

func TestPutObject_Error(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		xmlResponse(w, http.StatusForbidden, `<?xml version="1.0" encoding="UTF-8"?>
<Error>
  <Code>AccessDenied</Code>
  <Message>Access Denied</Message>
</Error>`)
	})

	client, server := testClient(t, handler)
	defer server.Close()

	err := client.PutObject(context.Background(), "exports", "k", "", []byte("data"))
	if err == nil {
		t.Fatal("expected error but got nil")
	}
	if !strings.Contains(err.Error(), "failed to put object k in bucket exports") {
		t.Errorf("unexpected error message: %v", err)
	}
}
