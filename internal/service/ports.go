package service

import (
	"context"
	"mime/multipart"

	"github.com/faiadgitm-oss/trpical-try/internal/models"
	"github.com/faiadgitm-oss/trpical-try/internal/realtime"
)

type Publisher interface {
	Publish(ctx context.Context, ev realtime.Event)
}

// Searcher answers substring queries from an external index.
type Searcher interface {
	Search(ctx context.Context, q string) ([]uint, error)
}

type Indexer interface {
	IndexItem(ctx context.Context, item models.Item) error
}

type PhotoStore interface {
	Save(fh *multipart.FileHeader) (string, error)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, realtime.Event) {}
