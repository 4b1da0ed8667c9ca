package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalhttp "github.com/taskwire-io/asana/internal/http"
	"github.com/taskwire-io/asana/pkg/asana"
)

// Test static errors.
var (
	ErrTestSomeError = errors.New("some error")
)

// NewTestClient creates a new test client with the given base URL.
func NewTestClient(baseURL string) *Client {
	httpClient := internalhttp.NewClient(baseURL, nil)

	client := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}

	client.initializeResourceClients()

	return client
}

// envelope wraps a value the way the API does before encoding it.
func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{"data": data}
}

// listEnvelope wraps a page of values, optionally with a continuation.
func listEnvelope(data interface{}, nextOffset string) map[string]interface{} {
	body := map[string]interface{}{"data": data}
	if nextOffset != "" {
		body["next_page"] = map[string]string{"offset": nextOffset}
	}

	return body
}

// notFoundBody is the service's error envelope for a missing resource.
func notFoundBody(message string) map[string]interface{} {
	return map[string]interface{}{
		"errors": []map[string]string{
			{
				"message": message,
				"help":    "For more information on API status codes and how to handle them, read the docs on errors",
			},
		},
	}
}

// TestGetOperation represents a generic get operation test case.
type TestGetOperation[TResponse any] struct {
	Name         string
	GID          string
	ExpectedPath string
	StatusCode   int
	Response     *TResponse
	WantErr      bool
	ErrMessage   string
}

// RunGetTests runs a series of get operation tests against a resource
// accessor.
func RunGetTests[TResponse any](
	t *testing.T,
	tests []TestGetOperation[TResponse],
	getFunc func(*Client) func(context.Context, string) (*TResponse, error),
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, "GET", request.Method)
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.WantErr {
					_ = json.NewEncoder(writer).Encode(notFoundBody("Not a recognized ID: " + testCase.GID))
				} else if testCase.Response != nil {
					_ = json.NewEncoder(writer).Encode(envelope(testCase.Response))
				}
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			getFn := getFunc(client)
			result, err := getFn(context.Background(), testCase.GID)

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}

				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
			}
		})
	}
}

// TestEmptyBodyOperation represents a test case for endpoints that return an
// empty data object on success.
type TestEmptyBodyOperation struct {
	Name         string
	ExpectedPath string
	StatusCode   int
	WantErr      bool
	ErrMessage   string
}

// RunEmptyBodyTests runs tests for error-or-nil endpoints (delete, addItem,
// and friends).
func RunEmptyBodyTests(
	t *testing.T,
	method string,
	tests []TestEmptyBodyOperation,
	callFunc func(*Client, context.Context) error,
) {
	t.Helper()

	for _, testCase := range tests {
		t.Run(testCase.Name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
				assert.Equal(t, testCase.ExpectedPath, request.URL.Path)
				assert.Equal(t, method, request.Method)
				writer.Header().Set("Content-Type", "application/json")
				writer.WriteHeader(testCase.StatusCode)

				if testCase.WantErr {
					_ = json.NewEncoder(writer).Encode(notFoundBody("Not a recognized ID"))
				} else {
					_ = json.NewEncoder(writer).Encode(envelope(map[string]interface{}{}))
				}
			}))
			defer server.Close()

			client := NewTestClient(server.URL)

			err := callFunc(client, context.Background())

			if testCase.WantErr {
				require.Error(t, err)

				if testCase.ErrMessage != "" {
					assert.Contains(t, err.Error(), testCase.ErrMessage)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

// RunListTest runs a generic single-page list test.
func RunListTest[TResource any](
	t *testing.T,
	testName string,
	expectedPath string,
	responseData []TResource,
	listFunc func(*Client) func(context.Context) (*asana.ListResponse[TResource], error),
	validateResources func([]TResource),
) {
	t.Helper()

	t.Run(testName, func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, expectedPath, request.URL.Path)
			assert.Equal(t, "GET", request.Method)

			writer.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(writer).Encode(listEnvelope(responseData, ""))
		}))
		defer server.Close()

		client := NewTestClient(server.URL)

		listFn := listFunc(client)
		result, err := listFn(context.Background())
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Len(t, result.Data, len(responseData))
		assert.Nil(t, result.NextPage)

		if validateResources != nil {
			validateResources(result.Data)
		}
	})
}
