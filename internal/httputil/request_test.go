// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_SetsUserAgent(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	resp, err := Get(context.Background(), ts.Client(), ts.URL, "Jane Doe jane@example.com")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, "Jane Doe jane@example.com", gotUA)
}

func TestGet_NonOKIsStatusError(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), ts.Client(), ts.URL, "ua")
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, ts.URL, se.URL)
	// Single attempt, no retry.
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGet_TransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := Get(context.Background(), http.DefaultClient, url, "ua")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request")
}

func TestGet_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := Get(ctx, ts.Client(), ts.URL, "ua")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGetBytes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>filing</html>"))
	}))
	defer ts.Close()

	data, err := GetBytes(context.Background(), ts.Client(), ts.URL, "ua")
	require.NoError(t, err)
	assert.Equal(t, "<html>filing</html>", string(data))
}

func TestNewClient(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewClient(0).Timeout)
	assert.Equal(t, 5*time.Second, NewClient(5*time.Second).Timeout)
}

func TestNewDownloadClient(t *testing.T) {
	c := NewDownloadClient(0)
	assert.Zero(t, c.Timeout, "body reads are bounded by the context only")
	transport, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, DefaultTimeout, transport.ResponseHeaderTimeout)

	c = NewDownloadClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.Transport.(*http.Transport).ResponseHeaderTimeout)
}

func TestNewDownloadClient_SlowBodyCompletes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>"))
		w.(http.Flusher).Flush()
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte("annual report</html>"))
	}))
	defer ts.Close()

	data, err := GetBytes(context.Background(), NewDownloadClient(100*time.Millisecond), ts.URL, "ua")
	require.NoError(t, err)
	assert.Equal(t, "<html>annual report</html>", string(data))
}

func TestNewDownloadClient_SlowHeadersTimeOut(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer ts.Close()

	_, err := Get(context.Background(), NewDownloadClient(50*time.Millisecond), ts.URL, "ua")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP request")
}
