package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"foodgram/internal/domain/entity"
)

// Format is the encoding of a data file.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// formatOf maps the extension of path to one of allowed.
func formatOf(path string, allowed ...Format) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	f := Format(ext)
	if ext == "yml" {
		f = FormatYAML
	}
	if !slices.Contains(allowed, f) {
		return "", fmt.Errorf("unsupported file type %q (supported: %v)", filepath.Ext(path), allowed)
	}
	return f, nil
}

type ingredientRecord struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ReadIngredients decodes ingredients. CSV rows are name,measurement_unit
// without a header; a leading header row is skipped when present.
func ReadIngredients(r io.Reader, format Format) ([]entity.Ingredient, error) {
	switch format {
	case FormatCSV:
		return readIngredientsCSV(r)
	case FormatJSON:
		var records []ingredientRecord
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		items := make([]entity.Ingredient, 0, len(records))
		for _, rec := range records {
			items = append(items, entity.Ingredient{Name: rec.Name, MeasurementUnit: rec.MeasurementUnit})
		}
		return items, nil
	default:
		return nil, fmt.Errorf("unsupported ingredient format %q", format)
	}
}

func readIngredientsCSV(r io.Reader) ([]entity.Ingredient, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2
	cr.TrimLeadingSpace = true

	items := make([]entity.Ingredient, 0, 256)
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return items, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode csv: %w", err)
		}
		if line == 1 && rec[0] == "name" && rec[1] == "measurement_unit" {
			continue
		}
		items = append(items, entity.Ingredient{Name: rec[0], MeasurementUnit: rec[1]})
	}
}

type tagRecord struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
	Slug  string `yaml:"slug"`
}

// ReadTags decodes a YAML list of tags, either top-level or under "tags:".
func ReadTags(r io.Reader) ([]entity.Tag, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var records []tagRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		var doc struct {
			Tags []tagRecord `yaml:"tags"`
		}
		if err2 := yaml.Unmarshal(data, &doc); err2 != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		records = doc.Tags
	}

	tags := make([]entity.Tag, 0, len(records))
	for _, rec := range records {
		tags = append(tags, entity.Tag{Name: rec.Name, Color: rec.Color, Slug: rec.Slug})
	}
	return tags, nil
}
