package models

// FilterPreset is one entry of the AR filter catalog. The catalog is seeded
// at startup and read-only at runtime.
type FilterPreset struct {
	ID         string             `json:"id" dynamodbav:"id"`
	Name       string             `json:"name" dynamodbav:"name"`
	Category   string             `json:"category" dynamodbav:"category"`
	PreviewURL string             `json:"preview_url,omitempty" dynamodbav:"preview_url,omitempty"`
	Params     map[string]float64 `json:"params,omitempty" dynamodbav:"params,omitempty"`
}

// DefaultFilterPresets is the built-in catalog used to seed new stores.
func DefaultFilterPresets() []FilterPreset {
	return []FilterPreset{
		{ID: "glow", Name: "Glow", Category: "beauty", Params: map[string]float64{"smooth": 0.6, "brighten": 0.3}},
		{ID: "vintage", Name: "Vintage", Category: "color", Params: map[string]float64{"sepia": 0.5, "grain": 0.2}},
		{ID: "neon", Name: "Neon", Category: "color", Params: map[string]float64{"saturation": 0.8}},
		{ID: "cat-ears", Name: "Cat Ears", Category: "ar", Params: map[string]float64{"scale": 1.0}},
		{ID: "big-eyes", Name: "Big Eyes", Category: "ar", Params: map[string]float64{"eye_scale": 1.25}},
	}
}
