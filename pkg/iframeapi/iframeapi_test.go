package iframeapi

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptURL(t *testing.T) {
	assert.Equal(t, "http://www.youtube.com/iframe_api", ScriptURL("http"))
	assert.Equal(t, "http://www.youtube.com/iframe_api", ScriptURL("http:"))
	assert.Equal(t, "https://www.youtube.com/iframe_api", ScriptURL("https"))
	assert.Equal(t, "https://www.youtube.com/iframe_api", ScriptURL("file"))
	assert.Equal(t, "https://www.youtube.com/iframe_api", ScriptURL(""))
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/iframe_api":
			w.Write([]byte("var YT = {};"))
		case "/empty":
		case "/exact":
			w.Write(bytes.Repeat([]byte("a"), maxScriptBytes))
		case "/huge":
			w.Write(bytes.Repeat([]byte("a"), maxScriptBytes+1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	script, err := Fetch(context.Background(), srv.Client(), srv.URL+"/iframe_api")
	require.NoError(t, err)
	assert.Equal(t, "var YT = {};", string(script))

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/empty")
	assert.ErrorIs(t, err, ErrEmptyScript)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/missing")
	assert.Error(t, err)

	script, err = Fetch(context.Background(), srv.Client(), srv.URL+"/exact")
	require.NoError(t, err)
	assert.Len(t, script, maxScriptBytes)

	_, err = Fetch(context.Background(), srv.Client(), srv.URL+"/huge")
	assert.ErrorIs(t, err, ErrScriptTooLarge)
}
