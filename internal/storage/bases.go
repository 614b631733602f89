package storage

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/quadhut/pkg/world/structure"
)

// Solver produces the seed bases for a structure config. It is only run
// when the cache is missing.
type Solver interface {
	Search(ctx context.Context, cfg structure.Config) ([]int64, error)
}

// BaseCache is the on-disk list of seed bases: one signed decimal per line.
type BaseCache struct {
	path      string
	url       string
	structure structure.Config
	solver    Solver
	fetch     FetchFunc
	st        *Storage
}

// BaseCache returns the cache stored under name. On a miss the cache is
// fetched from url when it is set and generated by solver otherwise.
func (s *Storage) BaseCache(name string, sc structure.Config, solver Solver, url string) (*BaseCache, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	return &BaseCache{
		path:      path,
		url:       url,
		structure: sc,
		solver:    solver,
		fetch:     Fetch,
		st:        s,
	}, nil
}

// Path returns the cache file path.
func (c *BaseCache) Path() string {
	return c.path
}

// Ensure creates the cache if it does not exist yet. It is a no-op when
// the file is already present.
func (c *BaseCache) Ensure(ctx context.Context) error {
	if _, err := os.Stat(c.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: stat seed base file: %w", ErrResource, err)
	}

	if c.url != "" {
		c.st.log.Info("seed base file does not exist, fetching", "path", c.path, "url", c.url)
		if err := c.fetchInto(ctx); err != nil {
			return err
		}
		return nil
	}

	c.st.log.Info("seed base file does not exist, creating new one (this may take a few minutes)",
		"path", c.path,
		"structure", c.structure.Name,
	)
	bases, err := c.solver.Search(ctx, c.structure)
	if err != nil {
		return fmt.Errorf("generate seed bases: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteBases(&buf, bases); err != nil {
		return fmt.Errorf("encode seed bases: %w", err)
	}
	if err := atomicWrite(c.path, buf.Bytes()); err != nil {
		return err
	}
	c.st.log.Info("seed base file created", "path", c.path, "bases", len(bases))
	return nil
}

func (c *BaseCache) fetchInto(ctx context.Context) error {
	tmp := c.path + ".download"
	defer os.Remove(tmp)

	if err := c.fetch(ctx, tmp, c.url); err != nil {
		return fmt.Errorf("%w: fetch seed bases from %s: %w", ErrResource, c.url, err)
	}

	f, err := os.Open(tmp)
	if err != nil {
		return fmt.Errorf("%w: open fetched seed bases: %w", ErrResource, err)
	}
	bases, err := ReadBases(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("%w: fetched seed bases: %w", ErrResource, err)
	}

	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("%w: install fetched seed bases: %w", ErrResource, err)
	}
	c.st.log.Info("seed base file fetched", "path", c.path, "bases", len(bases))
	return nil
}

// Load reads every seed base in the cache. The count of bases is the
// length of the returned slice.
func (c *BaseCache) Load() ([]int64, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open seed base file: %w", ErrResource, err)
	}
	defer f.Close()

	bases, err := ReadBases(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrResource, c.path, err)
	}
	return bases, nil
}

// WriteBases writes one decimal seed base per line.
func WriteBases(w io.Writer, bases []int64) error {
	bw := bufio.NewWriter(w)
	var num []byte
	for _, b := range bases {
		num = strconv.AppendInt(num[:0], b, 10)
		num = append(num, '\n')
		if _, err := bw.Write(num); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadBases parses a seed base list. Blank lines are skipped; any other
// line must be a decimal integer with bits 48..63 clear.
func ReadBases(r io.Reader) ([]int64, error) {
	var bases []int64
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		b, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if b>>48 != 0 {
			return nil, fmt.Errorf("line %d: seed base %d has high bits set", line, b)
		}
		bases = append(bases, b)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read seed bases: %w", err)
	}
	return bases, nil
}
