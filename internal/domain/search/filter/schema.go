package filter

// Schema names the record-store fields the builder targets.
type Schema struct {
	Day        string `yaml:"day"`
	Price      string `yaml:"price"`
	Categories string `yaml:"categories"`
	Reviews    string `yaml:"reviews"`
	Lat        string `yaml:"lat"`
	Lon        string `yaml:"lng"`
}

// DefaultSchema returns the field names of the restaurant table.
func DefaultSchema() Schema {
	return Schema{
		Day:        "day_opened",
		Price:      "price_range",
		Categories: "comida_[TESTING]",
		Reviews:    "reviews",
		Lat:        "location/lat",
		Lon:        "location/lng",
	}
}
