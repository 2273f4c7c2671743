package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TopAllergensPerCategory is how many allergens the pollen report lists per category.
const TopAllergensPerCategory = 2

const riskKeySuffix = "_pollen"

// AllergenCount is one species count within a category.
type AllergenCount struct {
	Name  string
	Count float64 // grains/m³
}

// PollenCategory is one top-level species group (Grass, Tree, Weed, ...).
// Exactly one of Count or Allergens is meaningful: providers send either a
// bare count or an allergen->count sub-mapping.
type PollenCategory struct {
	Name      string
	Count     *float64
	Allergens []AllergenCount // provider order
	Breakdown bool            // true when the provider sent a sub-mapping
}

// PollenReading is the first data element of an Ambee pollen response.
type PollenReading struct {
	UpdatedAt string
	Species   []PollenCategory // provider order
	Risk      map[string]string
	Counts    map[string]float64
	present   bool
}

// Empty reports whether the provider returned no usable reading.
func (r PollenReading) Empty() bool {
	return !r.present
}

// RiskKey derives the Risk/Count key for a species category, e.g. "Grass" -> "grass_pollen".
func RiskKey(category string) string {
	return strings.ToLower(category) + riskKeySuffix
}

// RiskLevel looks up the category's risk label, or MarkerNA when absent.
func (r PollenReading) RiskLevel(category string) string {
	if level, ok := r.Risk[RiskKey(category)]; ok {
		return level
	}
	return MarkerNA
}

// TotalCount returns the provider's aggregate count for a category, if any.
func (r PollenReading) TotalCount(category string) (float64, bool) {
	v, ok := r.Counts[RiskKey(category)]
	return v, ok
}

// TopAllergens returns the n highest counts of a category, ties keeping
// provider order. A scalar category yields itself as the sole allergen.
func TopAllergens(c PollenCategory, n int) []AllergenCount {
	if !c.Breakdown {
		if c.Count == nil {
			return nil
		}
		return []AllergenCount{{Name: c.Name, Count: *c.Count}}
	}

	sorted := make([]AllergenCount, len(c.Allergens))
	copy(sorted, c.Allergens)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Count > sorted[j].Count
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

type pollenResponse struct {
	Data []map[string]json.RawMessage `json:"data"`
}

// ParsePollenResponse decodes an Ambee response body. A missing or empty
// "data" array is not an error; it yields an Empty reading.
func ParsePollenResponse(body []byte) (PollenReading, error) {
	var resp pollenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return PollenReading{}, fmt.Errorf("parse pollen response: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0]) == 0 {
		return PollenReading{}, nil
	}
	fields := resp.Data[0]

	reading := PollenReading{
		UpdatedAt: MarkerNA,
		Risk:      map[string]string{},
		Counts:    map[string]float64{},
		present:   true,
	}

	if raw, ok := fields["updatedAt"]; ok {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return PollenReading{}, fmt.Errorf("parse updatedAt: %w", err)
		}
		reading.UpdatedAt = stringValue(v, MarkerNA)
	}

	if raw, ok := fields["Risk"]; ok {
		var risk map[string]any
		if err := json.Unmarshal(raw, &risk); err != nil {
			return PollenReading{}, fmt.Errorf("parse risk: %w", err)
		}
		for k, v := range risk {
			if s := stringValue(v, ""); s != "" {
				reading.Risk[k] = s
			}
		}
	}

	if raw, ok := fields["Count"]; ok {
		var counts map[string]any
		if err := json.Unmarshal(raw, &counts); err != nil {
			return PollenReading{}, fmt.Errorf("parse count: %w", err)
		}
		for k, v := range counts {
			if f := ParseNumber(v); f != nil {
				reading.Counts[k] = *f
			}
		}
	}

	if raw, ok := fields["Species"]; ok {
		species, err := decodeSpecies(raw)
		if err != nil {
			return PollenReading{}, fmt.Errorf("parse species: %w", err)
		}
		reading.Species = species
	}

	return reading, nil
}

// decodeSpecies walks the Species object token by token so categories and
// allergens keep the order the provider sent them in.
func decodeSpecies(raw json.RawMessage) ([]PollenCategory, error) {
	if isNull(raw) {
		return nil, nil
	}
	var categories []PollenCategory
	err := walkObject(raw, func(name string, value json.RawMessage) error {
		c := PollenCategory{Name: name}
		if isObject(value) {
			c.Breakdown = true
			err := walkObject(value, func(allergen string, count json.RawMessage) error {
				if f := ParseNumber(decodeScalar(count)); f != nil {
					c.Allergens = append(c.Allergens, AllergenCount{Name: allergen, Count: *f})
				}
				return nil
			})
			if err != nil {
				return fmt.Errorf("category %q: %w", name, err)
			}
		} else {
			c.Count = ParseNumber(decodeScalar(value))
		}
		categories = append(categories, c)
		return nil
	})
	return categories, err
}

func walkObject(raw json.RawMessage, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("expected JSON object")
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("expected object key")
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}
		if err := fn(key, value); err != nil {
			return err
		}
	}
	_, err = dec.Token()
	return err
}

func decodeScalar(raw json.RawMessage) any {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
