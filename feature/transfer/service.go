package transfer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"listsync/feature/lists"
)

// ImageStore is the blob access the transfer paths need: writing imported
// payloads and reading payloads back for export embedding.
type ImageStore interface {
	ImageWriter
	ImageReader
}

// Service exposes document import, preview and export.
type Service struct {
	importer *Importer
	exporter *Exporter
	logger   *zap.Logger

	mu   sync.Mutex
	busy bool
}

// NewService creates a transfer service. images may be nil when no blob
// storage is configured; imports then keep records only and exports omit
// payloads.
func NewService(store lists.Store, images ImageStore, logger *zap.Logger) *Service {
	var writer ImageWriter
	var reader ImageReader
	if images != nil {
		writer, reader = images, images
	}
	return &Service{
		importer: NewImporter(store, writer, logger),
		exporter: NewExporter(store, reader, logger),
		logger:   logger,
	}
}

// PreviewPayload decodes a document and reports what importing it would do.
func (s *Service) PreviewPayload(ctx context.Context, payload []byte, opts Options) (*Preview, error) {
	doc, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	return s.importer.Preview(ctx, doc, opts)
}

// ImportPayload decodes and applies a document. A second import while one
// is in flight is rejected with ErrImportInProgress.
func (s *Service) ImportPayload(ctx context.Context, payload []byte, opts Options, onProgress ProgressFunc) (*Result, error) {
	if !s.acquire() {
		return nil, ErrImportInProgress
	}
	defer s.release()

	doc, err := Decode(payload)
	if err != nil {
		return nil, err
	}
	return s.importer.Apply(ctx, doc, opts, onProgress)
}

// ExportPayload builds a document from local state and encodes it.
func (s *Service) ExportPayload(ctx context.Context, opts Options) ([]byte, error) {
	doc, err := s.exporter.Export(ctx, opts)
	if err != nil {
		return nil, err
	}
	return EncodeDocument(doc)
}

func (s *Service) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Service) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
