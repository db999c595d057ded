package io

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	kerrors "github.com/matzehuels/kirigami/pkg/errors"
)

// Import reads the pattern at path, choosing the format from its extension.
func Import(path string) (*Pattern, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ImportJSON(path)
	case ".toml":
		return ImportTOML(path)
	case ".csv":
		return ImportCSV(path)
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidFormat,
			"unsupported pattern format %q (want .json, .toml or .csv)", ext)
	}
}

// ReadJSON decodes a JSON pattern from r.
func ReadJSON(r io.Reader) (*Pattern, error) {
	var p Pattern
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode json pattern")
	}
	if err := checkShape(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ImportJSON reads a JSON pattern file.
func ImportJSON(path string) (*Pattern, error) {
	return importFile(path, ReadJSON)
}

// ReadTOML decodes a TOML pattern from r.
func ReadTOML(r io.Reader) (*Pattern, error) {
	var p Pattern
	if _, err := toml.NewDecoder(r).Decode(&p); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode toml pattern")
	}
	if err := checkShape(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ImportTOML reads a TOML pattern file.
func ImportTOML(path string) (*Pattern, error) {
	return importFile(path, ReadTOML)
}

// ReadCSV reads a picture-oriented CSV grid from r and transposes it to
// column-major depths. Blank lines are skipped; every record must have the
// same number of fields.
func ReadCSV(r io.Reader) (*Pattern, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode csv pattern")
	}
	if len(records) == 0 {
		return nil, kerrors.New(kerrors.ErrCodeInvalidDimensions, "csv pattern is empty")
	}

	width := len(records[0])
	depths := make([][]int, width)
	for c := range depths {
		depths[c] = make([]int, len(records))
	}
	for row, rec := range records {
		for col, field := range rec {
			d, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, kerrors.Wrap(kerrors.ErrCodeInvalidDepth, err, "row %d column %d", row, col)
			}
			depths[col][row] = d
		}
	}
	return &Pattern{Depths: depths}, nil
}

// ImportCSV reads a CSV pattern file. The pattern name is the file's base
// name without extension.
func ImportCSV(path string) (*Pattern, error) {
	p, err := importFile(path, ReadCSV)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return p, nil
}

func importFile(path string, read func(io.Reader) (*Pattern, error)) (*Pattern, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	p, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func checkShape(p *Pattern) error {
	if len(p.Depths) == 0 {
		return kerrors.New(kerrors.ErrCodeInvalidDimensions, "pattern has no depths")
	}
	return nil
}
