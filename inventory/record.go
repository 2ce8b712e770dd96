package inventory

import (
	"strconv"
	"time"

	"github.com/IanScottMcGuire/bincarousel"
)

// Record is one inventory measurement as seen by the host
type Record struct {
	ID     string          `json:"id,omitempty"`
	Bin    bincarousel.Bin `json:"bin"`
	Full   bool            `json:"full"`
	Result string          `json:"result"`
	// DistanceCM is nil when the sensor gave no reading
	DistanceCM *float64  `json:"distance_cm,omitempty"`
	DeviceMs   int64     `json:"device_ms"`
	Time       time.Time `json:"time"`
}

// NewRecord combines a parsed device record with the distance line that preceded it
func NewRecord(r bincarousel.InventoryRecord, distance string, now time.Time) Record {
	rec := Record{
		Bin:      r.Bin,
		Full:     r.Full,
		Result:   r.Result(),
		DeviceMs: r.TimestampMs,
		Time:     now,
	}
	if cm, err := strconv.ParseFloat(distance, 64); err == nil {
		rec.DistanceCM = &cm
	}
	return rec
}

// Distance formats DistanceCM the way the device prints it
func (r Record) Distance() string {
	if r.DistanceCM == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*r.DistanceCM, 'f', 2, 64)
}
