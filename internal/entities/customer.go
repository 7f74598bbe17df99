package entities

import "time"

type Customer struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type CustomerModify struct {
	ID   *string
	Name *string
}
