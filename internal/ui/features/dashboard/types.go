package dashboard

import (
	"context"

	"github.com/leapstack-labs/tabview/internal/dataset"
)

// DatasetReader loads an uploaded CSV file into a dataset.
type DatasetReader interface {
	ReadCSV(ctx context.Context, path, name string) (*dataset.Dataset, error)
}

// Options configure the dashboard handlers.
type Options struct {
	PreviewRows    int
	MaxUploadBytes int64
	IsDev          bool
}
