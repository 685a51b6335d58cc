package printing

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultFetchTimeout     = 10 * time.Second
	defaultFetchConcurrency = 4
	maxImageBytes           = 8 << 20 // 8 MiB

	// uploadPrefix marks image references that point at the upload store
	// instead of a remote URL.
	uploadPrefix = "uploads/"
)

// placeholderSVG is the inline fallback shown when a part image cannot
// be fetched. A missing image must never abort a print run.
const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64"><rect width="64" height="64" fill="#ecf0f1"/><path d="M14 44l10-12 8 9 6-7 12 10z" fill="#b2bec3"/><circle cx="23" cy="21" r="5" fill="#b2bec3"/></svg>`

// PlaceholderDataURI is the data URI form of the fallback image.
var PlaceholderDataURI = "data:image/svg+xml;base64," +
	base64.StdEncoding.EncodeToString([]byte(placeholderSVG))

// UploadReader opens stored upload objects by key
type UploadReader interface {
	Open(ctx context.Context, key string) (io.ReadCloser, string, error)
}

// ImageResolver turns image references into embeddable data URIs
type ImageResolver interface {
	// Resolve fetches every distinct reference and returns a map from
	// reference to data URI. Failed fetches map to the placeholder; the
	// result always covers every non-empty input.
	Resolve(ctx context.Context, refs []string) map[string]string
}

// HTTPImageResolver fetches remote images over HTTP and local images from
// the upload store, embedding both as data URIs so the PDF renderer never
// performs network I/O itself.
type HTTPImageResolver struct {
	client      *http.Client
	uploads     UploadReader
	logger      *zap.Logger
	maxBytes    int64
	concurrency int
}

// NewHTTPImageResolver creates an image resolver. The upload reader may
// be nil when no upload store is configured.
func NewHTTPImageResolver(uploads UploadReader, logger *zap.Logger) *HTTPImageResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPImageResolver{
		client:      &http.Client{Timeout: defaultFetchTimeout},
		uploads:     uploads,
		logger:      logger,
		maxBytes:    maxImageBytes,
		concurrency: defaultFetchConcurrency,
	}
}

// Resolve fetches all distinct references concurrently. Each reference is
// fetched once per call regardless of how many cells use it.
func (r *HTTPImageResolver) Resolve(ctx context.Context, refs []string) map[string]string {
	distinct := make([]string, 0, len(refs))
	seen := make(map[string]bool, len(refs))
	for _, ref := range refs {
		ref = strings.TrimSpace(ref)
		if ref == "" || seen[ref] {
			continue
		}
		seen[ref] = true
		distinct = append(distinct, ref)
	}
	if len(distinct) == 0 {
		return map[string]string{}
	}

	resolved := make(map[string]string, len(distinct))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, r.concurrency)

	for _, ref := range distinct {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			src := r.resolveOne(ctx, ref)
			mu.Lock()
			resolved[ref] = src
			mu.Unlock()
		}(ref)
	}
	wg.Wait()

	return resolved
}

func (r *HTTPImageResolver) resolveOne(ctx context.Context, ref string) string {
	switch {
	case strings.HasPrefix(ref, "data:"):
		return ref
	case strings.HasPrefix(ref, uploadPrefix):
		return r.resolveUpload(ctx, strings.TrimPrefix(ref, uploadPrefix))
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return r.resolveRemote(ctx, ref)
	default:
		r.logger.Warn("unsupported image reference", zap.String("ref", ref))
		return PlaceholderDataURI
	}
}

func (r *HTTPImageResolver) resolveUpload(ctx context.Context, key string) string {
	if r.uploads == nil {
		return PlaceholderDataURI
	}

	reader, contentType, err := r.uploads.Open(ctx, key)
	if err != nil {
		r.logger.Warn("upload image not readable", zap.String("key", key), zap.Error(err))
		return PlaceholderDataURI
	}
	defer reader.Close()

	data, err := r.readLimited(reader)
	if err != nil {
		r.logger.Warn("upload image rejected", zap.String("key", key), zap.Error(err))
		return PlaceholderDataURI
	}

	return toDataURI(contentType, data)
}

func (r *HTTPImageResolver) resolveRemote(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return PlaceholderDataURI
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Warn("image fetch failed", zap.String("url", url), zap.Error(err))
		return PlaceholderDataURI
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.logger.Warn("image fetch returned non-OK status",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode))
		return PlaceholderDataURI
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		r.logger.Warn("image fetch returned non-image content",
			zap.String("url", url),
			zap.String("contentType", contentType))
		return PlaceholderDataURI
	}

	data, err := r.readLimited(resp.Body)
	if err != nil {
		r.logger.Warn("image fetch rejected", zap.String("url", url), zap.Error(err))
		return PlaceholderDataURI
	}

	return toDataURI(contentType, data)
}

// readLimited reads at most maxBytes and errors when the source exceeds it
func (r *HTTPImageResolver) readLimited(reader io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(reader, r.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.maxBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", r.maxBytes)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	return data, nil
}

func toDataURI(contentType string, data []byte) string {
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Ensure HTTPImageResolver implements ImageResolver
var _ ImageResolver = (*HTTPImageResolver)(nil)
