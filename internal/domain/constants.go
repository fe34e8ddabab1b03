package domain

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Business validation constants
const (
	MaxNameLength        = 64
	MaxServiceNameLength = 128
	MaxCommentLength     = 1000
)
