package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foodgram/internal/domain/entity"
)

func TestReadIngredients(t *testing.T) {
	want := []entity.Ingredient{
		{Name: "абрикосовое варенье", MeasurementUnit: "г"},
		{Name: "salt, sea", MeasurementUnit: "g"},
	}

	tests := []struct {
		name   string
		format Format
		input  string
	}{
		{
			name:   "csv without header",
			format: FormatCSV,
			input:  "абрикосовое варенье,г\n\"salt, sea\",g\n",
		},
		{
			name:   "csv with header",
			format: FormatCSV,
			input:  "name,measurement_unit\nабрикосовое варенье, г\n\"salt, sea\",g\n",
		},
		{
			name:   "json",
			format: FormatJSON,
			input: `[{"name":"абрикосовое варенье","measurement_unit":"г"},
			         {"name":"salt, sea","measurement_unit":"g"}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadIngredients(strings.NewReader(tt.input), tt.format)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ReadIngredients() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadIngredients_Errors(t *testing.T) {
	_, err := ReadIngredients(strings.NewReader("sugar,g,extra\n"), FormatCSV)
	assert.ErrorContains(t, err, "decode csv")

	_, err = ReadIngredients(strings.NewReader(`{"name":"sugar"}`), FormatJSON)
	assert.ErrorContains(t, err, "decode json")

	_, err = ReadIngredients(strings.NewReader(""), FormatYAML)
	assert.ErrorContains(t, err, "unsupported")
}

func TestReadTags(t *testing.T) {
	want := []entity.Tag{
		{Name: "Завтрак", Color: "#E26C2D", Slug: "breakfast"},
		{Name: "Обед", Color: "#49B64E", Slug: "lunch"},
	}

	list := `
- name: Завтрак
  color: "#E26C2D"
  slug: breakfast
- name: Обед
  color: "#49B64E"
  slug: lunch
`
	nested := "tags:\n" + strings.ReplaceAll(list, "\n", "\n  ")

	for name, input := range map[string]string{"list": list, "nested": nested} {
		t.Run(name, func(t *testing.T) {
			got, err := ReadTags(strings.NewReader(input))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ReadTags(strings.NewReader("tags: [unterminated"))
	assert.ErrorContains(t, err, "decode yaml")
}

func TestFormatOf(t *testing.T) {
	f, err := formatOf("data/ingredients.CSV", FormatCSV, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, FormatCSV, f)

	f, err = formatOf("tags.yml", FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = formatOf("ingredients.xml", FormatCSV, FormatJSON)
	assert.ErrorContains(t, err, "unsupported file type")
}
