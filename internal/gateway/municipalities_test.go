package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderRetriesExactlyOnceOnPersistentFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(NewClient(srv.URL))
	l.RetryDelay = 5 * time.Millisecond

	_, err := l.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoaderRecoversOnRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Lisboa","Porto"]`))
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(NewClient(srv.URL))
	l.RetryDelay = 5 * time.Millisecond

	names, err := l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Lisboa", "Porto"}, names)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoaderCachesSuccessfulLoad(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Lisboa"]`))
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(NewClient(srv.URL))
	for i := 0; i < 3; i++ {
		names, err := l.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"Lisboa"}, names)
	}
	assert.Equal(t, int32(1), calls.Load())
}

func TestLoaderCacheExpires(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["Lisboa"]`))
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(NewClient(srv.URL))
	l.SetCacheTTL(10 * time.Millisecond)

	_, err := l.Load(context.Background())
	require.NoError(t, err)
	time.Sleep(25 * time.Millisecond)
	_, err = l.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLoaderHonorsContextDuringRetryDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	l := NewLoader(NewClient(srv.URL))
	l.RetryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := l.Load(ctx)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}
