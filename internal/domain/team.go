package domain

// Team represents a named grouping of employees that can be assigned
// to fulfil reservations. A team may have zero employees.
type Team struct {
	ID   int64
	Name string

	// IDs of employees belonging to the team.
	// Replaced wholesale on every update.
	EmployeeIDs []int64
}

// HasEmployees returns true if at least one employee is assigned
func (t *Team) HasEmployees() bool {
	return len(t.EmployeeIDs) > 0
}
