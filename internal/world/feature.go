package world

// FeatureType tags a discrete structure stamped onto the terrain.
type FeatureType string

const (
	FeatureRuin          FeatureType = "Ruin"
	FeatureForest        FeatureType = "Forest"
	FeatureRockFormation FeatureType = "RockFormation"
)

// Feature is descriptive metadata about a placed structure. It is never
// consulted by passability; the tiles themselves are authoritative.
type Feature struct {
	Type       FeatureType
	Bounds     Rect
	Properties map[string]string
}

// clone copies f with its own properties map.
func (f Feature) clone() Feature {
	props := make(map[string]string, len(f.Properties))
	for k, v := range f.Properties {
		props[k] = v
	}
	f.Properties = props
	return f
}
