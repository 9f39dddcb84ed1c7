package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dperales2022/atmirasalesproposals/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFetcher(allowLocal bool, maxBytes int64) *FetchService {
	return NewFetchService(config.FetchConfig{
		Timeout:          5 * time.Second,
		MaxDocumentBytes: maxBytes,
		AllowLocalFiles:  allowLocal,
	}, nopLogger())
}

func TestFetchRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/proposal.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4 bytes"))
		case "/big.pdf":
			_, _ = w.Write(make([]byte, 2048))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := newTestFetcher(false, 1024)
	ctx := context.Background()

	doc, err := f.Fetch(ctx, srv.URL+"/proposal.pdf")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 bytes", string(doc.Content))
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.Equal(t, srv.URL+"/proposal.pdf", doc.Location)

	_, err = f.Fetch(ctx, srv.URL+"/missing.pdf")
	require.Error(t, err)
	assert.Equal(t, KindUnreachableSource, KindOf(err))
	assert.Equal(t, StageFetching, StageOf(err))

	_, err = f.Fetch(ctx, srv.URL+"/big.pdf")
	assert.Equal(t, KindUnreachableSource, KindOf(err))
}

func TestFetchUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/proposal.pdf"
	srv.Close()

	_, err := newTestFetcher(false, 0).Fetch(context.Background(), url)
	assert.Equal(t, KindUnreachableSource, KindOf(err))
}

func TestFetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestFetcher(false, 0).Fetch(ctx, srv.URL)
	assert.Equal(t, KindUnreachableSource, KindOf(err))
}

func TestFetchLocal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "proposal.pdf")
	require.NoError(t, os.WriteFile(path, []byte("local bytes"), 0o644))

	_, err := newTestFetcher(false, 0).Fetch(context.Background(), path)
	require.Error(t, err)
	assert.Equal(t, KindUnreachableSource, KindOf(err))
	assert.ErrorIs(t, err, ErrLocalFilesDisabled)

	f := newTestFetcher(true, 0)
	doc, err := f.Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "local bytes", string(doc.Content))

	doc, err = f.Fetch(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "local bytes", string(doc.Content))

	_, err = f.Fetch(context.Background(), filepath.Join(dir, "missing.pdf"))
	assert.Equal(t, KindUnreachableSource, KindOf(err))
}
