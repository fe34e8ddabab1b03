package domain

import "fmt"

// JobRole represents an employee's job role
type JobRole string

const (
	JobChief    JobRole = "chief"
	JobHandyman JobRole = "handyman"
)

// IsValid returns true if the job role is one of the known roles
func (j JobRole) IsValid() bool {
	return j == JobChief || j == JobHandyman
}

// Employee represents a company employee that can be grouped into teams
type Employee struct {
	ID        int64
	FirstName string
	LastName  string
	Job       JobRole
}

// Name returns the employee's full name
func (e *Employee) Name() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}
