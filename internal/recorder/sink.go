package recorder

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"acc_recorder/internal/sensor"
)

// csvSink is the append-only record stream for one sensor. It is exclusively
// owned by the pipeline writing it, so no locking is needed; bufio absorbs
// the per-row syscall overhead at 1600 rows/s.
type csvSink struct {
	path string
	file *os.File
	buf  *bufio.Writer
	csv  *csv.Writer
	rows int
}

func sinkName(dir string, start time.Time, index int) string {
	return filepath.Join(dir, fmt.Sprintf("%s_sensor%d.csv", start.Format("20060102_150405"), index))
}

func newCSVSink(dir string, start time.Time, index int) (*csvSink, error) {
	path := sinkName(dir, start, index)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open sink %s: %w", path, err)
	}
	bw := bufio.NewWriter(f)
	return &csvSink{path: path, file: f, buf: bw, csv: csv.NewWriter(bw)}, nil
}

// Append writes one x,y,z row. There is no header row.
func (s *csvSink) Append(sm sensor.Sample) error {
	row := []string{
		strconv.Itoa(int(sm.X)),
		strconv.Itoa(int(sm.Y)),
		strconv.Itoa(int(sm.Z)),
	}
	if err := s.csv.Write(row); err != nil {
		return fmt.Errorf("append to %s: %w", s.path, err)
	}
	s.rows++
	return nil
}

// Close flushes buffered rows and closes the file. The pipeline calls it
// exactly once, on success and on abort alike, so partial data survives.
func (s *csvSink) Close() error {
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	if err := s.buf.Flush(); err != nil {
		_ = s.file.Close()
		return fmt.Errorf("flush %s: %w", s.path, err)
	}
	return s.file.Close()
}
