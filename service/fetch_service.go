package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dperales2022/atmirasalesproposals/config"
	"github.com/dperales2022/atmirasalesproposals/types"
	"github.com/dperales2022/atmirasalesproposals/utils"
	"go.uber.org/zap"
)

var ErrLocalFilesDisabled = errors.New("local file access is disabled")

// Fetcher retrieves the raw bytes of a document location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) (*types.RawDocument, error)
}

// FetchService performs a single retrieval per call and keeps nothing.
type FetchService struct {
	client          *http.Client
	maxBytes        int64
	allowLocalFiles bool
	log             *zap.SugaredLogger
}

func NewFetchService(cfg config.FetchConfig, log *zap.SugaredLogger) *FetchService {
	return &FetchService{
		client:          &http.Client{Timeout: cfg.Timeout},
		maxBytes:        cfg.MaxDocumentBytes,
		allowLocalFiles: cfg.AllowLocalFiles,
		log:             log,
	}
}

// Fetch returns the document bytes. Every failure is UnreachableSource.
func (s *FetchService) Fetch(ctx context.Context, location string) (*types.RawDocument, error) {
	start := time.Now()
	location = strings.TrimSpace(location)

	var (
		doc *types.RawDocument
		err error
	)
	if path, local := utils.LocalPath(location); local {
		doc, err = s.fetchLocal(path)
	} else {
		doc, err = s.fetchRemote(ctx, location)
	}
	if err != nil {
		s.log.Warnw("extract.fetch.failed",
			"location", location, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, newError(KindUnreachableSource, StageFetching, "document could not be retrieved", err)
	}
	doc.Location = location

	s.log.Debugw("extract.fetch.ok",
		"location", location, "bytes", len(doc.Content), "content_type", doc.ContentType,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return doc, nil
}

func (s *FetchService) fetchLocal(path string) (*types.RawDocument, error) {
	if !s.allowLocalFiles {
		return nil, ErrLocalFilesDisabled
	}
	b, err := utils.ReadFileLimited(path, s.maxBytes)
	if err != nil {
		return nil, err
	}
	return &types.RawDocument{Content: b}, nil
}

func (s *FetchService) fetchRemote(ctx context.Context, location string) (*types.RawDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("http status %d", resp.StatusCode)
	}
	if s.maxBytes > 0 && resp.ContentLength > s.maxBytes {
		return nil, fmt.Errorf("%w (content-length %d)", utils.ErrTooLarge, resp.ContentLength)
	}
	b, err := utils.ReadAllLimited(resp.Body, s.maxBytes)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return &types.RawDocument{Content: b, ContentType: resp.Header.Get("Content-Type")}, nil
}
