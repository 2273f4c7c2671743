package domain

import (
	"fmt"
	"strings"
)

// NoPollenNotice is the whole report for an empty reading.
const NoPollenNotice = "❌ No pollen data available.\n"

var categoryEmojis = map[string]string{
	"Grass": "🌱",
	"Tree":  "🌳",
	"Weed":  "🌾",
}

const unknownCategoryEmoji = "❓"

func categoryEmoji(category string) string {
	if e, ok := categoryEmojis[category]; ok {
		return e
	}
	return unknownCategoryEmoji
}

// RenderPollen formats the top allergens of every category, in provider order.
func RenderPollen(r PollenReading, lat, lon float64) string {
	if r.Empty() {
		return NoPollenNotice
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n📍 Location: Latitude %s, Longitude %s\n", formatNumber(lat), formatNumber(lon))
	fmt.Fprintf(&b, "📅 Date: %s\n", r.UpdatedAt)
	b.WriteString("\n🌿 Top Allergens:\n")

	for _, c := range r.Species {
		if total, ok := r.TotalCount(c.Name); ok {
			fmt.Fprintf(&b, "\n🔖 %s (total %s grains/m³):\n", c.Name, formatNumber(total))
		} else {
			fmt.Fprintf(&b, "\n🔖 %s:\n", c.Name)
		}

		emoji := categoryEmoji(c.Name)
		risk := r.RiskLevel(c.Name)
		if !c.Breakdown {
			fmt.Fprintf(&b, "   %s %s: %s grains/m³ (Risk: %s)\n", emoji, c.Name, formatOptional(c.Count), risk)
			continue
		}
		for _, a := range TopAllergens(c, TopAllergensPerCategory) {
			fmt.Fprintf(&b, "   %s %s: %s grains/m³ (Risk: %s)\n", emoji, a.Name, formatNumber(a.Count), risk)
		}
	}
	return b.String()
}
