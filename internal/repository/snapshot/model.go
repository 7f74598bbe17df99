package snapshot

import "time"

type CustomerDB struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

type DriverDB struct {
	ID             string
	Name           string
	VehicleType    string
	Status         string
	CurrentOrderID *string
	TotalRating    int
	RatingsCount   int
	CreatedAt      time.Time
}

type OrderDB struct {
	ID          string
	CustomerID  string
	ItemID      string
	Quantity    int
	Status      string
	DriverID    *string
	CreatedAt   time.Time
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
	Rating      *int
}
