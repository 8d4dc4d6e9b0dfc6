package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// OutputManager writes daily stats to a CSV file under an output
// directory. A nil manager (empty dir) disables output.
type OutputManager struct {
	file          *os.File
	headerWritten bool
}

// NewOutputManager creates the output directory and stats file. Returns
// nil when dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, "days.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating days.csv: %w", err)
	}
	return &OutputManager{file: f}, nil
}

// WriteDay appends one day's stats row.
func (om *OutputManager) WriteDay(day DayStats) error {
	if om == nil {
		return nil
	}
	rows := []DayStats{day}
	if !om.headerWritten {
		om.headerWritten = true
		return gocsv.MarshalFile(&rows, om.file)
	}
	return gocsv.MarshalWithoutHeaders(&rows, om.file)
}

// Close flushes and closes the stats file.
func (om *OutputManager) Close() error {
	if om == nil || om.file == nil {
		return nil
	}
	return om.file.Close()
}
