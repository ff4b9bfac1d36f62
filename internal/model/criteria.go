package model

// Criteria is the set of filter constraints applied to the item list.
// Empty fields impose no constraint; set fields are combined with AND.
// Dates use the "2006-01-02" form and bound receivedAt at day resolution.
type Criteria struct {
	Status   string
	Customer string
	DateFrom string
	DateTo   string
}

// Empty reports whether no constraint is set.
func (c Criteria) Empty() bool {
	return c.Status == "" && c.Customer == "" && c.DateFrom == "" && c.DateTo == ""
}
