package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// Source performs one read of the pre-built dataset document.
type Source interface {
	Read(ctx context.Context) ([]byte, error)
	String() string
}

// FileSource reads the document from a local path.
type FileSource struct {
	Path string
}

func (s FileSource) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

func (s FileSource) String() string { return s.Path }

// HTTPSource fetches the document from a URL. Any non-2xx status is a failure.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// NewHTTPSource returns a source for url. A zero timeout means none.
func NewHTTPSource(url string, timeout time.Duration) HTTPSource {
	return HTTPSource{URL: url, Client: &http.Client{Timeout: timeout}}
}

func (s HTTPSource) Read(ctx context.Context) ([]byte, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch: unexpected status %s", res.Status)
	}

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}

func (s HTTPSource) String() string { return s.URL }

// DocumentGetter reads a stored document by id.
type DocumentGetter interface {
	GetDocument(ctx context.Context, id string) ([]byte, error)
}

// StoreSource reads the document from a document store such as Elasticsearch.
type StoreSource struct {
	Store DocumentGetter
	Name  string
	ID    string
}

func (s StoreSource) Read(ctx context.Context) ([]byte, error) {
	data, err := s.Store.GetDocument(ctx, s.ID)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

func (s StoreSource) String() string { return s.Name + "/" + s.ID }

// NewSource picks a file or HTTP source from location.
func NewSource(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return NewHTTPSource(location, timeout)
	}
	return FileSource{Path: location}
}
