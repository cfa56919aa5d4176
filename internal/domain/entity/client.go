package entity

import "time"

// Client representa un cliente facturable.
type Client struct {
	ID        string
	Name      string
	Email     string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
