package util

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitGeoIP(t *testing.T) {
	t.Setenv("GEOIP_DB_PATH", "")
	assert.NoError(t, InitGeoIP(""), "empty path is a no-op")
	assert.Error(t, InitGeoIP("/nonexistent/path/to/geoip.mmdb"))
	assert.Error(t, ValidateGeoIP("/nonexistent/path/to/geoip.mmdb"))
}

func TestGetIPLocation_SkipsUnroutable(t *testing.T) {
	geoipDB = nil
	geoipCache = nil

	for _, ip := range []string{"", "not-an-ip", "127.0.0.1", "::1", "10.0.0.1", "192.168.1.1", "172.16.0.3", "::", "8.8.8.8"} {
		assert.Equal(t, IPLocation{}, GetIPLocation(ip), ip)
	}
}

func TestIPLocation_String(t *testing.T) {
	assert.Equal(t, "Jakarta/Indonesia", IPLocation{City: "Jakarta", Country: "Indonesia"}.String())
	assert.Equal(t, "Indonesia", IPLocation{Country: "Indonesia"}.String())
	assert.Equal(t, "Jakarta", IPLocation{City: "Jakarta"}.String())
	assert.Empty(t, IPLocation{}.String())
}

func TestGetGeoIPCacheMetrics_NoCache(t *testing.T) {
	geoipCache = nil
	_, _, size := GetGeoIPCacheMetrics()
	assert.Zero(t, size)
}

func TestCloseGeoIP_NoDB(t *testing.T) {
	geoipDB = nil
	assert.NotPanics(t, CloseGeoIP)
	assert.Nil(t, geoipDB)
}

func TestDownloadGeoIP(t *testing.T) {
	payload := []byte("mock geoip database content")
	var gz bytes.Buffer
	w := gzip.NewWriter(&gz)
	_, err := w.Write(payload)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/db.mmdb":
			_, _ = w.Write(payload)
		case "/db.mmdb.gz":
			_, _ = w.Write(gz.Bytes())
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	t.Run("plain", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "geoip.mmdb")
		got, err := DownloadGeoIP(context.Background(), server.URL+"/db.mmdb", dest)
		require.NoError(t, err)
		assert.Equal(t, dest, got)
		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("gzip", func(t *testing.T) {
		dest := filepath.Join(t.TempDir(), "nested", "geoip.mmdb")
		_, err := DownloadGeoIP(context.Background(), server.URL+"/db.mmdb.gz", dest)
		require.NoError(t, err)
		data, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("http error leaves nothing behind", func(t *testing.T) {
		dir := t.TempDir()
		_, err := DownloadGeoIP(context.Background(), server.URL+"/missing", filepath.Join(dir, "geoip.mmdb"))
		assert.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("corrupt gzip removes temp file", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not gzip"))
		}))
		defer bad.Close()
		dir := t.TempDir()
		_, err := DownloadGeoIP(context.Background(), bad.URL+"/db.mmdb.gz", filepath.Join(dir, "geoip.mmdb"))
		assert.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestDownloadGeoIP_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := DownloadGeoIP(ctx, server.URL, filepath.Join(t.TempDir(), "geoip.mmdb"))
	assert.Error(t, err)
}
