package catalog

import (
	"regexp"
	"strings"

	"github.com/kundan-thakur61/mobilecoverdesign/internal/types"
)

var slugCleanRe = regexp.MustCompile(`[^a-z0-9_-]+`)

// Slugify turns a display handle into its URL form, e.g.
// "Krishna Theme" -> "krishna-theme".
func Slugify(value string) string {
	slug := strings.ToLower(strings.TrimSpace(value))
	slug = slugCleanRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// FallbackCollections is served when the catalog database is empty or
// unreachable, so the collections page never renders blank.
var FallbackCollections = []types.Collection{
	{
		ID:          "fallback-krishna",
		Handle:      Slugify("Krishna Theme"),
		Title:       "GOD Krishna",
		Description: "A soothing drop featuring hazy gradients, prism flares and airy lettering. Ideal for dreamy lock-screens.",
	},
	{
		ID:          "fallback-anime",
		Handle:      Slugify("Anime Theme"),
		Title:       "Anime Theme",
		Description: "A flexible canvas pack with high-contrast grids and masking overlays for quick mockups.",
	},
	{
		ID:          "fallback-marble",
		Handle:      Slugify("Marble Theme"),
		Title:       "Marble Theme",
		Description: "Deep charcoal slabs with molten gold veins and cloudy lilac smoke drifting over the edges.",
	},
	{
		ID:          "fallback-cricketer",
		Handle:      Slugify("Cricketer Theme"),
		Title:       "Cricketer Theme",
		Description: "Punchy serif phrases with halftone shadows and grainy spray textures for maximum impact.",
	},
	{
		ID:     "fallback-cute",
		Handle: Slugify("Cute Theme"),
		Title:  "Cute Theme",
	},
	{
		ID:     "fallback-aesthetic",
		Handle: Slugify("Aesthetic Theme"),
		Title:  "Aesthetic Theme",
	},
	{
		ID:     "fallback-flower",
		Handle: Slugify("Flower Theme"),
		Title:  "Flower Theme",
	},
	{
		ID:     "fallback-footballer",
		Handle: Slugify("Footballer Theme"),
		Title:  "Footballer Theme",
	},
}
