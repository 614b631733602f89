package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ResultLog is the append-only log of confirmed seeds. Every record is
// mirrored to a second writer, usually stdout.
type ResultLog struct {
	path   string
	f      *os.File
	w      *bufio.Writer
	mirror io.Writer
	num    []byte
}

// OpenResults opens the named result log for appending, creating it if
// needed.
func (s *Storage) OpenResults(name string, mirror io.Writer) (*ResultLog, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open result log: %w", ErrResource, err)
	}
	if mirror == nil {
		mirror = io.Discard
	}
	return &ResultLog{path: path, f: f, w: bufio.NewWriter(f), mirror: mirror}, nil
}

// Path returns the log file path.
func (r *ResultLog) Path() string {
	return r.path
}

// Header writes a run header. Header lines start with '#' so the log stays
// parseable by ReadResults.
func (r *ResultLog) Header(version string, regionX, regionZ int) error {
	line := fmt.Sprintf("Using version: %s at position %d %d (region: %d %d)\n",
		version, int64(regionX)*512, int64(regionZ)*512, regionX, regionZ)
	if _, err := io.WriteString(r.w, "# "+line); err != nil {
		return fmt.Errorf("%w: write result header: %w", ErrResource, err)
	}
	if _, err := io.WriteString(r.mirror, line); err != nil {
		return fmt.Errorf("%w: mirror result header: %w", ErrResource, err)
	}
	return r.Flush()
}

// Record appends one confirmed seed.
func (r *ResultLog) Record(seed int64) error {
	r.num = strconv.AppendInt(r.num[:0], seed, 10)
	r.num = append(r.num, '\n')
	if _, err := r.w.Write(r.num); err != nil {
		return fmt.Errorf("%w: write result: %w", ErrResource, err)
	}
	if _, err := r.mirror.Write(r.num); err != nil {
		return fmt.Errorf("%w: mirror result: %w", ErrResource, err)
	}
	return nil
}

// Flush makes every recorded seed durable.
func (r *ResultLog) Flush() error {
	if err := r.w.Flush(); err != nil {
		return fmt.Errorf("%w: flush result log: %w", ErrResource, err)
	}
	if err := r.f.Sync(); err != nil {
		return fmt.Errorf("%w: sync result log: %w", ErrResource, err)
	}
	return nil
}

// Close flushes and closes the log.
func (r *ResultLog) Close() error {
	flushErr := r.Flush()
	if err := r.f.Close(); err != nil {
		return fmt.Errorf("%w: close result log: %w", ErrResource, err)
	}
	return flushErr
}

// ReadResults parses a result log, skipping header and blank lines.
func ReadResults(rd io.Reader) ([]int64, error) {
	var seeds []int64
	sc := bufio.NewScanner(rd)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		seed, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		seeds = append(seeds, seed)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read results: %w", err)
	}
	return seeds, nil
}
