package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/OCharnyshevich/quadhut/internal/config"
	"github.com/OCharnyshevich/quadhut/internal/search"
	"github.com/OCharnyshevich/quadhut/pkg/world/layer"
)

// applyPositional reads "regionX regionZ [version]" into cfg.
func applyPositional(cfg *config.Config, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return fmt.Errorf("%w: expected regionX regionZ [version], got %d arguments", config.ErrConfig, len(args))
	}
	rx, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: region x %q: %w", config.ErrConfig, args[0], err)
	}
	rz, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: region z %q: %w", config.ErrConfig, args[1], err)
	}
	cfg.RegionX, cfg.RegionZ = rx, rz
	if len(args) == 3 {
		cfg.Version = args[2]
	}
	return nil
}

// prompter asks for the search target on an input stream. Prompts are only
// written when the input is a terminal. Notices go to their own writer since
// out may be the same stream results are mirrored to.
type prompter struct {
	in     *bufio.Scanner
	out    io.Writer
	notice io.Writer
	prompt bool
}

func (p *prompter) ask(question string) (string, error) {
	if p.prompt {
		fmt.Fprint(p.out, question)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

func (p *prompter) askInt(question string) (int64, error) {
	s, err := p.ask(question)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", config.ErrConfig, err)
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a block coordinate", config.ErrConfig, s)
	}
	return v, nil
}

// interactive fills the version and region of cfg from the prompter. The
// region is derived from block coordinates. An unknown version falls back
// to the default one.
func interactive(cfg *config.Config, p *prompter) error {
	names := make([]string, 0, len(layer.Versions()))
	for _, v := range layer.Versions() {
		names = append(names, v.String())
	}
	ver, err := p.ask(fmt.Sprintf("Version (%s): ", strings.Join(names, ", ")))
	if err != nil {
		return fmt.Errorf("%w: %w", config.ErrConfig, err)
	}
	if _, err := layer.ParseVersion(ver); err != nil {
		fallback := config.DefaultConfig().Version
		fmt.Fprintf(p.notice, "Unknown version %q, using %s\n", ver, fallback)
		ver = fallback
	}
	cfg.Version = ver

	x, err := p.askInt("Block X: ")
	if err != nil {
		return err
	}
	z, err := p.askInt("Block Z: ")
	if err != nil {
		return err
	}
	r := search.RegionOfBlock(x, z)
	cfg.RegionX, cfg.RegionZ = r.X, r.Z
	return nil
}
