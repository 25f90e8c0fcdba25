package store

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

const insertBatchSize = 1000

var ErrMissingRunID = errors.New("missing run id")

type SyntheticResponse interface {
	SaveResponses(ctx context.Context, records []schema.OutputRecord) error
	CountResponses(ctx context.Context, runID string) (int64, error)
}

// SaveResponses inserts one document per record, in batches
func (m *mongoDB) SaveResponses(ctx context.Context, records []schema.OutputRecord) error {
	c := m.client.Database(m.database).Collection(schema.SyntheticResponseCollection)

	for start := 0; start < len(records); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(records) {
			end = len(records)
		}

		docs := make([]interface{}, 0, end-start)
		for _, r := range records[start:end] {
			if r.RunID == "" {
				return ErrMissingRunID
			}
			docs = append(docs, r)
		}

		ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
		_, err := c.InsertMany(ctx, docs)
		cancel()
		if err != nil {
			log.WithFields(log.Fields{
				"prefix": mongoLogPrefix,
				"from":   start,
				"error":  err,
			}).Error("insert synthetic responses")
			return err
		}
	}

	log.WithFields(log.Fields{
		"prefix":  mongoLogPrefix,
		"records": len(records),
	}).Info("synthetic responses saved")

	return nil
}

func (m *mongoDB) CountResponses(ctx context.Context, runID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.SyntheticResponseCollection)
	return c.CountDocuments(ctx, bson.M{"run_id": runID})
}
