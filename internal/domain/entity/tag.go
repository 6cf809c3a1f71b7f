package entity

// Tag labels recipes (breakfast, lunch, ...). Slug is unique.
type Tag struct {
	ID    int64
	Name  string
	Color string
	Slug  string
}

// Validate checks tag fields before they are stored.
func (t *Tag) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if runeLen(t.Name) > MaxTagNameLength {
		return &ValidationError{Field: "name", Message: "is too long"}
	}
	if err := ValidateHexColor(t.Color); err != nil {
		return err
	}
	return ValidateSlug(t.Slug)
}

// Ingredient is a catalogue entry. (Name, MeasurementUnit) is unique.
type Ingredient struct {
	ID              int64
	Name            string
	MeasurementUnit string
}

// Validate checks ingredient fields before they are stored.
func (i *Ingredient) Validate() error {
	if i.Name == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if runeLen(i.Name) > MaxIngredientNameLen {
		return &ValidationError{Field: "name", Message: "is too long"}
	}
	if i.MeasurementUnit == "" {
		return &ValidationError{Field: "measurement_unit", Message: "is required"}
	}
	if runeLen(i.MeasurementUnit) > MaxUnitLength {
		return &ValidationError{Field: "measurement_unit", Message: "is too long"}
	}
	return nil
}
