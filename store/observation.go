package store

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

type WeeklyObservation interface {
	Observations(ctx context.Context) ([]schema.WeeklyObservation, error)
	SaveObservations(ctx context.Context, observations []schema.WeeklyObservation) error
}

// Observations returns the stored weekly counts by ascending week
func (m *mongoDB) Observations(ctx context.Context) ([]schema.WeeklyObservation, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.WeeklyObservationCollection)
	cursor, err := c.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"week": 1}))
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": mongoLogPrefix,
			"error":  err,
		}).Error("find weekly observations")
		return nil, err
	}

	var observations []schema.WeeklyObservation
	if err := cursor.All(ctx, &observations); err != nil {
		return nil, err
	}

	for i := range observations {
		observations[i].WeekStart = observations[i].WeekStart.UTC()
		if i > 0 && observations[i].WeekStart.Equal(observations[i-1].WeekStart) {
			return nil, fmt.Errorf("duplicated week %s", observations[i].WeekStart.Format(schema.DateLayout))
		}
		if err := observations[i].Validate(); err != nil {
			return nil, err
		}
	}

	return observations, nil
}

// SaveObservations replaces the counts of every given week
func (m *mongoDB) SaveObservations(ctx context.Context, observations []schema.WeeklyObservation) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	c := m.client.Database(m.database).Collection(schema.WeeklyObservationCollection)
	for _, o := range observations {
		if _, err := c.ReplaceOne(ctx,
			bson.M{"week": o.WeekStart},
			o,
			options.Replace().SetUpsert(true),
		); err != nil {
			log.WithFields(log.Fields{
				"prefix": mongoLogPrefix,
				"week":   o.WeekStart.Format(schema.DateLayout),
				"error":  err,
			}).Error("save weekly observation")
			return err
		}
	}

	return nil
}
