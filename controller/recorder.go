package controller

import (
	"context"
	"errors"

	"github.com/IanScottMcGuire/bincarousel"
	"github.com/IanScottMcGuire/bincarousel/inventory"
)

// Recorder stores inventory results reported by the device
type Recorder interface {
	Record(ctx context.Context, r inventory.Record) error
}

// History looks up the last logged result for a bin
type History interface {
	Last(bin bincarousel.Bin) (result string, ok bool, err error)
}

var _ History = &inventory.CSVLog{}

type noopRecorder struct{}

var _ Recorder = noopRecorder{}

// Record implements Recorder.
func (noopRecorder) Record(context.Context, inventory.Record) error {
	return nil
}

// multiRecorder sends every record to all recorders and joins their errors
type multiRecorder []Recorder

var _ Recorder = multiRecorder{}

// Record implements Recorder.
func (m multiRecorder) Record(ctx context.Context, r inventory.Record) error {
	var errs []error
	for _, rec := range m {
		if err := rec.Record(ctx, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// recorderFromConfig builds the recorders enabled in cfg. history is nil unless a CSV
// log is configured.
func recorderFromConfig(cfg Config) (rec Recorder, history History) {
	var m multiRecorder
	if cfg.CSVLogPath != "" {
		csvLog := inventory.NewCSVLog(cfg.CSVLogPath)
		m = append(m, csvLog)
		history = csvLog
	}
	if cfg.InventoryAddr != "" {
		m = append(m, inventory.NewClient(cfg.InventoryAddr))
	}

	if len(m) == 0 {
		return noopRecorder{}, history
	}
	return m, history
}
