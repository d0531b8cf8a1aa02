package stops

// Stop is a transit stop. Direction is a free-form partition key, e.g.
// "Northbound" or "Southbound".
type Stop struct {
	ID        string  `json:"id"`
	Route     string  `json:"route"`
	Name      string  `json:"name"`
	Direction string  `json:"direction"`
	Location  string  `json:"location"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
}

// Match is a stop paired with its distance in miles from a query point
type Match struct {
	Stop     Stop    `json:"stop"`
	Distance float64 `json:"distance"`
}
