package inventory

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"

	"github.com/IanScottMcGuire/bincarousel"
)

const timestampFormat = "2006-01-02 15:04:05"

var csvHeader = []string{"timestamp", "result", "distance_cm", "bin"}

// CSVLog appends records to a CSV file, writing the header when the file is new
type CSVLog struct {
	path string
	mtx  sync.Mutex
}

// NewCSVLog logs to path. The file is created on the first record.
func NewCSVLog(path string) *CSVLog {
	return &CSVLog{path: path}
}

// Record implements controller.Recorder
func (l *CSVLog) Record(_ context.Context, r Record) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("error opening inventory log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("error reading inventory log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("error writing header: %w", err)
		}
	}

	err = w.Write([]string{
		r.Time.Format(timestampFormat),
		r.Result,
		r.Distance(),
		strconv.Itoa(int(r.Bin)),
	})
	if err != nil {
		return fmt.Errorf("error writing record: %w", err)
	}

	w.Flush()
	return w.Error()
}

// Last returns the most recent result logged for bin. ok is false when the bin has never
// been measured.
func (l *CSVLog) Last(bin bincarousel.Bin) (result string, ok bool, err error) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error opening inventory log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", false, fmt.Errorf("error reading inventory log: %w", err)
		}
		if len(row) != len(csvHeader) {
			continue
		}

		n, err := strconv.Atoi(row[3])
		if err != nil || bincarousel.Bin(n) != bin {
			continue
		}
		result, ok = row[1], true
	}

	return result, ok, nil
}
