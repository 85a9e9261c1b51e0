package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DeafMist/news-dashboard/internal/config"
)

type stubSource struct {
	body []byte
	err  error
}

func (s stubSource) Read(context.Context) ([]byte, error) { return s.body, s.err }
func (s stubSource) String() string                        { return "stub" }

type stubStore struct {
	docs map[string][]byte
}

func (s *stubStore) PutDocument(_ context.Context, id string, body []byte) error {
	if s.docs == nil {
		s.docs = make(map[string][]byte)
	}
	s.docs[id] = body
	return nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublishStoresDocumentUnchanged(t *testing.T) {
	body := []byte(`{"topics": {"tech": {"topic_name": "Tech", "articles": [{"title": "a"}, {"title": "b"}]}}}`)
	store := &stubStore{}

	err := publish(context.Background(), discard(), stubSource{body: body}, config.VariantInteractive, store, "latest")
	require.NoError(t, err)
	require.Equal(t, body, store.docs["latest"])
}

func TestPublishRejectsInvalidDocument(t *testing.T) {
	store := &stubStore{}

	err := publish(context.Background(), discard(), stubSource{body: []byte("not json")}, config.VariantSimple, store, "latest")
	require.Error(t, err)
	require.Empty(t, store.docs)
}

func TestPublishReadFailure(t *testing.T) {
	store := &stubStore{}
	readErr := errors.New("unreachable")

	err := publish(context.Background(), discard(), stubSource{err: readErr}, config.VariantSimple, store, "latest")
	require.ErrorIs(t, err, readErr)
	require.Empty(t, store.docs)
}

func TestValidateCountsArticles(t *testing.T) {
	n, err := validate([]byte(`{"articles": [{"title": "x"}]}`), config.VariantSimple)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = validate([]byte(`{}`), "weekly")
	require.Error(t, err)
}
