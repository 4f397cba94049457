package mode

// Mode is the anchoring strategy of a restaurant search.
type Mode string

// Search mode constants.
const (
	// Zones fans out over named sub-areas of the city.
	Zones       Mode = "zones"
	Coordinates Mode = "coordinates"
	// City anchors on the resolved city center.
	City Mode = "city"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Zones || m == Coordinates || m == City
}
