package export

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/bitmark-inc/synthetic-panel/schema"
)

type csvSink struct {
	path string
}

// NewCSVSink - write the dataset to a csv file with a single header row
func NewCSVSink(path string) Sink {
	return &csvSink{path: path}
}

func (c *csvSink) Write(ctx context.Context, records []schema.OutputRecord) error {
	f, err := os.Create(c.path)
	if err != nil {
		log.WithFields(log.Fields{
			"prefix": logPrefix,
			"path":   c.path,
			"error":  err,
		}).Error("create output file")
		return err
	}

	if err := WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"prefix":  logPrefix,
		"path":    c.path,
		"records": len(records),
	}).Info("dataset saved")

	return nil
}

// WriteCSV writes the header followed by one row per record
func WriteCSV(w io.Writer, records []schema.OutputRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(schema.CSVHeader); err != nil {
		return err
	}
	for _, r := range records {
		if err := writer.Write(r.CSVRow()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
