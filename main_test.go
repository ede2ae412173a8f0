package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pic-to-github/config"
	"pic-to-github/gh"
	"pic-to-github/helpers"
	"pic-to-github/model"
)

func TestRunNoArguments(t *testing.T) {
	var stdout bytes.Buffer
	err := run(context.Background(), nil, &stdout)

	assert.ErrorIs(t, err, ErrNoImagePaths)
	assert.Equal(t, "No image paths provided", err.Error())
	assert.Empty(t, stdout.String())
}

func TestRunMissingConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	homedir.DisableCache = true
	defer func() { homedir.DisableCache = false }()

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"a.png"}, &stdout)

	var cerr *config.Error
	require.True(t, errors.As(err, &cerr))
	assert.Empty(t, stdout.String())
}

// newServer answers with a download URL derived from the request path,
// except for request number failAt (1-based) which gets a body with no URL.
func newServer(t *testing.T, failAt int32) (*httptest.Server, *int32) {
	t.Helper()
	var count int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&count, 1)
		if n == failAt {
			w.WriteHeader(http.StatusConflict)
			io.WriteString(w, `{"message":"conflict"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"content":{"download_url":"https://raw.example/%d%s"}}`, n, filepath.Ext(r.URL.Path))
	}))
	t.Cleanup(server.Close)
	return server, &count
}

func newUploader(t *testing.T, server *httptest.Server) *gh.Uploader {
	t.Helper()
	client, err := gh.NewClient("tok")
	require.NoError(t, err)

	uploader := gh.NewUploader(client, model.Repo{Owner: "bar", Repo: "baz", Path: "foo"}, model.Committer{Name: "n", Email: "e"}, "https://mirror/")
	uploader.BaseURL = server.URL + "/repos/bar/baz/contents/foo"
	return uploader
}

func writeImages(t *testing.T, names ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0o644))
		paths = append(paths, p)
	}
	return paths
}

func TestUploadAllPreservesOrder(t *testing.T) {
	server, count := newServer(t, 0)
	uploader := newUploader(t, server)
	paths := writeImages(t, "a.png", "b.jpg", "c.gif")

	var stdout bytes.Buffer
	require.NoError(t, uploadAll(context.Background(), uploader, paths, &stdout, nil))

	assert.Equal(t, int32(3), atomic.LoadInt32(count))
	assert.Equal(t, []string{
		"https://mirror/https://raw.example/1.png",
		"https://mirror/https://raw.example/2.jpg",
		"https://mirror/https://raw.example/3.gif",
	}, strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n"))
}

func TestUploadAllStopsAtFirstFailure(t *testing.T) {
	server, count := newServer(t, 2)
	uploader := newUploader(t, server)
	paths := writeImages(t, "a.png", "b.png", "c.png", "d.png")

	var stdout bytes.Buffer
	err := uploadAll(context.Background(), uploader, paths, &stdout, nil)

	var uerr *gh.UploadError
	require.True(t, errors.As(err, &uerr))
	assert.Equal(t, `{"message":"conflict"}`, uerr.Body)
	assert.Equal(t, int32(2), atomic.LoadInt32(count))
	assert.Equal(t, "https://mirror/https://raw.example/1.png\n", stdout.String())
}

func TestUploadAllMissingFileAborts(t *testing.T) {
	server, count := newServer(t, 0)
	uploader := newUploader(t, server)
	paths := writeImages(t, "a.png")
	paths = append(paths, filepath.Join(t.TempDir(), "missing.png"), paths[0])

	var stdout bytes.Buffer
	err := uploadAll(context.Background(), uploader, paths, &stdout, nil)

	var ferr *gh.FileReadError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, int32(1), atomic.LoadInt32(count))
	assert.Equal(t, 1, strings.Count(stdout.String(), "\n"))
}

func TestUploadAllWithProgress(t *testing.T) {
	server, _ := newServer(t, 0)
	uploader := newUploader(t, server)
	paths := writeImages(t, "a.png", "b.png")

	bar := helpers.NewProgress(io.Discard, len(paths), true)
	var stdout bytes.Buffer
	require.NoError(t, uploadAll(context.Background(), uploader, paths, &stdout, bar))
	assert.Equal(t, int64(2), bar.Current())
}

func TestShowProgress(t *testing.T) {
	tests := []struct {
		name     string
		stdout   bool
		stderr   bool
		expected bool
	}{
		{name: "both on one terminal", stdout: true, stderr: true, expected: false},
		{name: "stdout redirected", stdout: false, stderr: true, expected: true},
		{name: "stderr redirected", stdout: true, stderr: false, expected: false},
		{name: "no terminal", stdout: false, stderr: false, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, showProgress(tt.stdout, tt.stderr))
		})
	}
}
