package geocode

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chouhan705/DateMapz/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(srv.URL, 5*time.Second, testLogger())
}

func TestResolveName_Success(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bandra, Mumbai", r.URL.Query().Get("q"))
		w.Write([]byte(`[{"lat":"19.0596","lon":"72.8295"}]`))
	})

	point, err := svc.ResolveName(context.Background(), "Bandra, Mumbai")
	require.NoError(t, err)
	assert.InDelta(t, 19.0596, point.Lat, 1e-6)
	assert.InDelta(t, 72.8295, point.Lng, 1e-6)
}

func TestResolveName_ZeroMatches(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	_, err := svc.ResolveName(context.Background(), "nowhere in particular")
	assert.ErrorIs(t, err, types.ErrLocationNotFound)
}

func TestResolveName_ProviderError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := svc.ResolveName(context.Background(), "Bandra")
	assert.ErrorIs(t, err, types.ErrLocationNotFound)
}

func TestResolveName_CachesResult(t *testing.T) {
	calls := 0
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`[{"lat":"19.0","lon":"72.8"}]`))
	})

	_, err := svc.ResolveName(context.Background(), "Bandra")
	require.NoError(t, err)
	_, err = svc.ResolveName(context.Background(), "Bandra")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDescribeArea_AreaAndCity(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		w.Write([]byte(`{"address":{"suburb":"Bandra West","city":"Mumbai"}}`))
	})

	desc := svc.DescribeArea(context.Background(), 19.06, 72.83)
	assert.Equal(t, "the Bandra West area of Mumbai", desc)
}

func TestDescribeArea_FallsBackThroughUnits(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"road":"Hill Road","town":"Alibag"}}`))
	})

	desc := svc.DescribeArea(context.Background(), 18.64, 72.87)
	assert.Equal(t, "the Hill Road area of Alibag", desc)
}

func TestDescribeArea_AreaOnly(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{"neighbourhood":"Old Quarter"}}`))
	})

	desc := svc.DescribeArea(context.Background(), 1, 2)
	assert.Equal(t, "Old Quarter", desc)
}

func TestDescribeArea_ProviderFailureDegrades(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	desc := svc.DescribeArea(context.Background(), 1, 2)
	assert.Equal(t, FallbackAreaDescription, desc)
}

func TestDescribeArea_NothingResolvable(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"address":{}}`))
	})

	desc := svc.DescribeArea(context.Background(), 1, 2)
	assert.Equal(t, FallbackAreaDescription, desc)
}
