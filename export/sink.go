package export

import (
	"context"
	"fmt"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

const logPrefix = "export"

// Sink - interface to write the generated records, called once per run
type Sink interface {
	Write(ctx context.Context, records []schema.OutputRecord) error
}

// ResponseSaver is the part of the store a sink needs
type ResponseSaver interface {
	SaveResponses(ctx context.Context, records []schema.OutputRecord) error
}

type storeSink struct {
	saver ResponseSaver
}

// NewStoreSink - write records as documents through the store
func NewStoreSink(saver ResponseSaver) Sink {
	return &storeSink{saver: saver}
}

func (s *storeSink) Write(ctx context.Context, records []schema.OutputRecord) error {
	return s.saver.SaveResponses(ctx, records)
}

// MultiSink writes to every sink in order and stops at the first failure
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, records []schema.OutputRecord) error {
	for i, s := range m {
		if err := s.Write(ctx, records); err != nil {
			return fmt.Errorf("sink %d: %w", i, err)
		}
	}
	return nil
}
