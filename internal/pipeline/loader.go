package pipeline

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/causalia/internal/conditional"
	"github.com/ppiankov/causalia/internal/model"
)

// ErrDuplicateID is returned when two corpus statements carry the same id
var ErrDuplicateID = errors.New("duplicate statement id")

// Format is the encoding of a statement corpus
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the corpus format from a file extension (JSON unless .yaml/.yml)
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// LoadStatements reads a statement corpus from a file
func LoadStatements(path string) ([]*model.Statement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statements: %w", err)
	}
	defer func() { _ = f.Close() }()

	sts, err := ReadStatements(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sts, nil
}

// ReadStatements decodes a list of statements. Statements without an ID are
// assigned a random UUID so the grounding cache can key them; a repeated ID
// is an error.
func ReadStatements(r io.Reader, format Format) ([]*model.Statement, error) {
	var sts []*model.Statement
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&sts); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode yaml statements: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&sts); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decode json statements: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown statement format %q", format)
	}

	out := sts[:0]
	seen := make(map[string]int, len(sts))
	for i, s := range sts {
		if s == nil {
			continue
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if first, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("statement %d: %w: %q (first at statement %d)", i, ErrDuplicateID, s.ID, first)
		}
		seen[s.ID] = i
		out = append(out, s)
	}
	return out, nil
}

// LoadBackground reads a background response sample (one number per line)
func LoadBackground(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open background: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sample []float64
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		sample = append(sample, v)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan background: %w", err)
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("%s: background sample is empty", path)
	}

	return sample, nil
}

// InputPaths names the files an assembly run reads. Background is optional.
type InputPaths struct {
	Statements string
	Table      string
	Background string
}

// Inputs holds everything an assembly run consumes
type Inputs struct {
	Statements []*model.Statement
	Table      conditional.ResponseTable
	Background []float64 // nil when no file was given
}

// LoadInputs reads the corpus, response table and background sample concurrently
func LoadInputs(ctx context.Context, paths InputPaths) (*Inputs, error) {
	in := &Inputs{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sts, err := LoadStatements(paths.Statements)
		if err != nil {
			return err
		}
		in.Statements = sts
		return ctx.Err()
	})

	if paths.Table != "" {
		g.Go(func() error {
			table, err := conditional.LoadResponseTable(paths.Table)
			if err != nil {
				return err
			}
			in.Table = table
			return ctx.Err()
		})
	}

	if paths.Background != "" {
		g.Go(func() error {
			bg, err := LoadBackground(paths.Background)
			if err != nil {
				return err
			}
			in.Background = bg
			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load inputs: %w", err)
	}
	return in, nil
}
