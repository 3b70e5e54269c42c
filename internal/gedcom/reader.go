package gedcom

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ParseReader feeds every line of r to the parser.
//
// Parse failures are recorded in Errors and never returned. The returned
// error is non-nil only if reading fails or ctx is cancelled; lines consumed
// before that point remain applied.
func (p *Parser) ParseReader(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		p.ParseLine(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read line %d: %w", p.lineNo+1, err)
	}

	p.logger.Info("parse finished",
		slog.Int("lines", p.lineNo),
		slog.Int("individuals", p.tree.IndividualCount()),
		slog.Int("families", p.tree.FamilyCount()),
		slog.Int("errors", len(p.errors)),
	)
	return nil
}

// ParseFile parses the file at path with a new Parser.
func ParseFile(ctx context.Context, path string, opts ...Option) (*Parser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	p := NewParser(opts...)
	if err := p.ParseReader(ctx, f); err != nil {
		return nil, err
	}
	return p, nil
}
