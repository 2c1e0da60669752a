package storage

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFromURL(t *testing.T) {
	cases := map[string]string{
		"http://localhost:9000/suratmasuk/1738400000000-scan.pdf": "1738400000000-scan.pdf",
		"http://minio:9000/faktur/x.png":                          "x.png",
		"bare-key.png":                                            "bare-key.png",
		"": "",
	}
	for url, want := range cases {
		assert.Equalf(t, want, KeyFromURL(url), "url %q", url)
	}
}

func TestObjectURL(t *testing.T) {
	c := &Client{baseURL: "http://localhost:9000"}
	assert.Equal(t, "http://localhost:9000/notulen/123-rapat.pdf", c.objectURL("notulen", "123-rapat.pdf"))
}

func TestStoreRoundTripsThroughKeyFromURL(t *testing.T) {
	// The key embedded in a stored URL must come back out unchanged, since
	// Replace and Remove derive the delete target from the URL alone.
	c := &Client{baseURL: "https://files.example.org:9000"}
	url := c.objectURL(BucketAsisten, "1700000000000-foto profil.jpg")
	assert.Equal(t, "1700000000000-foto profil.jpg", KeyFromURL(url))
}

// clientAgainst builds a Client pointed at a stub HTTP server.
func clientAgainst(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	host, portStr, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	c, err := New(Options{Endpoint: host, Port: port, AccessKey: "test", SecretKey: "test"})
	require.NoError(t, err)
	return c
}

func TestReplaceAbortsWhenOldDeleteFails(t *testing.T) {
	// A record must never end up pointing at a URL whose old object could not
	// be removed, so a failed delete has to stop the replacement upload.
	var sawPut bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodDelete:
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>AccessDenied</Code><Message>delete rejected</Message></Error>`))
		case http.MethodPut:
			sawPut = true
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	c := clientAgainst(t, srv)
	oldURL := c.objectURL(BucketFaktur, "1700000000000-old.png")
	_, err := c.Replace(context.Background(), BucketFaktur, oldURL, []byte("replacement"), "new.png")
	require.Error(t, err)
	assert.False(t, sawPut, "replacement must not be stored when the old object cannot be deleted")
}
