package model

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AgeRange is an inclusive age range served by a program.
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Program is a treatment program candidate supplied by the program
// directory. It is read-only from the matching core's perspective;
// optional fields are pointers so "absent" stays distinguishable from
// a zero value.
type Program struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Insurance    []string     `json:"insurance,omitempty"`
	Specialties  []string     `json:"specialties,omitempty"`
	Features     []string     `json:"features,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
	AgeRange     *AgeRange    `json:"age_range,omitempty"`
	GenderServed string       `json:"gender_served,omitempty"`
	Description  string       `json:"description,omitempty"`
}
