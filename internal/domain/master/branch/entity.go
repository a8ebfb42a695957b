package branch

import "time"

type Branch struct {
	ID        string
	Name      string
	City      string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Label is the text matched against the overtime branch aliases.
func (b Branch) Label() string {
	if b.City == "" {
		return b.Name
	}
	return b.Name + " " + b.City
}
