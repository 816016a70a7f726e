package vision

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loganlanou/snapsell/internal/listing"
)

func testPhoto() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 100, 80))
}

func stubVisionEndpoint(t *testing.T, calls *atomic.Int64, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func chatCompletionWith(content string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{
			"id": "chatcmpl-test",
			"object": "chat.completion",
			"model": "gpt-4o-mini",
			"choices": [
				{"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": %q}}
			]
		}`, content)
	}
}

func TestAnalyzeOfflineSkipsNetwork(t *testing.T) {
	var calls atomic.Int64
	srv := stubVisionEndpoint(t, &calls, chatCompletionWith("Category: Furniture"))

	a := New(Options{APIKey: "test-key", BaseURL: srv.URL})

	result := a.Analyze(context.Background(), testPhoto(), true)

	assert.Equal(t, int64(0), calls.Load(), "offline analysis must not call the endpoint")
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, ReasonOffline, result.Reason)
	assert.Equal(t, listing.Fallback(), result.Fields)
}

func TestAnalyzeUnconfigured(t *testing.T) {
	a := New(Options{})
	require.False(t, a.Configured())

	result := a.Analyze(context.Background(), testPhoto(), false)
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, ReasonUnconfigured, result.Reason)
	assert.Equal(t, listing.Fallback(), result.Fields)
}

func TestAnalyzeParsesModelResponse(t *testing.T) {
	var calls atomic.Int64
	response := "Category: Furniture\nTitle: Old Chair\nFeatures:\n- Sturdy\n- Wooden\nPrice: ₹1,500\nLocation: Mumbai"
	srv := stubVisionEndpoint(t, &calls, chatCompletionWith(response))

	a := New(Options{APIKey: "test-key", BaseURL: srv.URL})

	result := a.Analyze(context.Background(), testPhoto(), false)

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, SourceModel, result.Source)
	assert.Equal(t, ReasonNone, result.Reason)
	assert.Equal(t, "Furniture", result.Fields.Category)
	assert.Equal(t, "Old Chair", result.Fields.Title)
	assert.Equal(t, []string{"Sturdy", "Wooden"}, result.Fields.Features)
	assert.Equal(t, "1500", result.Fields.Price)
	assert.Equal(t, "Mumbai", result.Fields.Location)
}

func TestAnalyzeLenientOnSparseResponse(t *testing.T) {
	var calls atomic.Int64
	srv := stubVisionEndpoint(t, &calls, chatCompletionWith("Title: Mystery Box"))

	a := New(Options{APIKey: "test-key", BaseURL: srv.URL})

	result := a.Analyze(context.Background(), testPhoto(), false)

	// A partial response still parses; missing fields take their defaults.
	assert.Equal(t, SourceModel, result.Source)
	assert.Equal(t, "Mystery Box", result.Fields.Title)
	assert.Equal(t, "", result.Fields.Category)
	assert.Equal(t, []string{listing.DefaultFeature}, result.Fields.Features)
	assert.Equal(t, listing.DefaultPrice, result.Fields.Price)
}

func TestAnalyzeAPIErrorFallsBack(t *testing.T) {
	var calls atomic.Int64
	srv := stubVisionEndpoint(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		http.Error(w, `{"error":{"message":"bad request","type":"invalid_request_error"}}`, http.StatusBadRequest)
	})

	a := New(Options{APIKey: "test-key", BaseURL: srv.URL})

	result := a.Analyze(context.Background(), testPhoto(), false)

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, ReasonAPIError, result.Reason)
	assert.Equal(t, listing.Fallback(), result.Fields)
}

func TestAnalyzeEmptyResponseFallsBack(t *testing.T) {
	var calls atomic.Int64
	srv := stubVisionEndpoint(t, &calls, chatCompletionWith(""))

	a := New(Options{APIKey: "test-key", BaseURL: srv.URL})

	result := a.Analyze(context.Background(), testPhoto(), false)

	assert.Equal(t, SourceFallback, result.Source)
	assert.Equal(t, ReasonEmpty, result.Reason)
	assert.Equal(t, listing.Fallback(), result.Fields)
}
