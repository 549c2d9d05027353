package animation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {

	testCases := []struct {
		name            string
		body            string
		code            int
		expectedErrorIs error
		expectedErrorAs error
		expectedResult  []byte
	}{
		{name: "ok", body: `{"v":"5.7.4","layers":[]}`, code: http.StatusOK, expectedResult: []byte(`{"v":"5.7.4","layers":[]}`)},
		{name: "not json", body: "<html>", code: http.StatusOK, expectedErrorIs: ErrNotJSON},
		{name: "not found", body: "", code: http.StatusNotFound, expectedErrorAs: &UnexpectedStatusError{}},
		{name: "server error", body: "smth", code: http.StatusInternalServerError, expectedErrorAs: &UnexpectedStatusError{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.code)
				fmt.Fprint(w, tc.body)
			}))
			defer svr.Close()

			c := NewClient(map[string]string{"coffee": svr.URL}, time.Second, time.Minute)
			res, err := c.Fetch(context.Background(), "coffee")
			if tc.expectedErrorIs != nil {
				assert.ErrorIs(t, err, tc.expectedErrorIs)
			} else if tc.expectedErrorAs != nil {
				var statusErr *UnexpectedStatusError
				assert.ErrorAs(t, err, &statusErr)
				assert.Equal(t, tc.code, statusErr.Code)
			} else {
				assert.NoError(t, err)
			}

			assert.Equal(t, tc.expectedResult, res)
		})
	}
}

func TestFetchUnknown(t *testing.T) {
	c := NewClient(map[string]string{}, time.Second, time.Minute)

	_, err := c.Fetch(context.Background(), "coffee")
	assert.ErrorIs(t, err, ErrUnknownAnimation)
}

func TestFetchTimeout(t *testing.T) {
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))
	defer svr.Close()

	c := NewClient(map[string]string{"tea": svr.URL}, 50*time.Millisecond, time.Minute)
	body, ok := c.Lookup(context.Background(), "tea")
	assert.False(t, ok)
	assert.Nil(t, body)
}

func TestLookupCaches(t *testing.T) {
	var calls atomic.Int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{"layers":[]}`)
	}))
	defer svr.Close()

	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	c := NewClient(map[string]string{"water": svr.URL}, time.Second, 10*time.Minute)
	c.timeNow = func() time.Time { return now }

	for n := 0; n < 3; n++ {
		body, ok := c.Lookup(context.Background(), "water")
		require.True(t, ok)
		assert.JSONEq(t, `{"layers":[]}`, string(body))
	}
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(11 * time.Minute)
	_, ok := c.Lookup(context.Background(), "water")
	assert.True(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLookupCachesFailures(t *testing.T) {
	var calls atomic.Int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, `{}`)
	}))
	defer svr.Close()

	now := time.Date(2024, 6, 12, 15, 0, 0, 0, time.UTC)
	c := NewClient(map[string]string{"food": svr.URL}, time.Second, 10*time.Minute)
	c.timeNow = func() time.Time { return now }

	_, ok := c.Lookup(context.Background(), "food")
	assert.False(t, ok)
	_, ok = c.Lookup(context.Background(), "food")
	assert.False(t, ok)
	assert.Equal(t, int32(1), calls.Load())

	now = now.Add(DefaultFailTTL + time.Second)
	_, ok = c.Lookup(context.Background(), "food")
	assert.True(t, ok)
}

func TestLookupCancelledNotCached(t *testing.T) {
	var calls atomic.Int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{}`)
	}))
	defer svr.Close()

	c := NewClient(map[string]string{"tea": svr.URL}, time.Second, 10*time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok := c.Lookup(ctx, "tea")
	assert.False(t, ok)

	body, ok := c.Lookup(context.Background(), "tea")
	assert.True(t, ok)
	assert.JSONEq(t, `{}`, string(body))
	assert.Equal(t, int32(1), calls.Load())
}

func TestWarm(t *testing.T) {
	var calls atomic.Int32
	svr := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		fmt.Fprint(w, `{}`)
	}))
	defer svr.Close()

	c := NewClient(map[string]string{"coffee": svr.URL, "tea": svr.URL}, time.Second, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- c.Warm(ctx, time.Hour) }()

	assert.Eventually(t, func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		return len(c.cache) == 2
	}, time.Second, 10*time.Millisecond)
	cancel()
	assert.NoError(t, <-done)

	_, ok := c.Lookup(context.Background(), "tea")
	assert.True(t, ok)
	assert.Equal(t, int32(2), calls.Load())
}
