package entities

import "time"

type Driver struct {
	ID             string
	Name           string
	VehicleType    string
	Status         DriverStatusType
	CurrentOrderID string
	TotalRating    int
	RatingsCount   int
	CreatedAt      time.Time
}

func (d Driver) AverageRating() float64 {
	if d.RatingsCount == 0 {
		return 0
	}
	return float64(d.TotalRating) / float64(d.RatingsCount)
}

type DriverStatusType string

const (
	DriverAvailable DriverStatusType = "AVAILABLE"
	DriverBusy      DriverStatusType = "BUSY"
)

const DefaultVehicleType = "two_wheeler"

func (t DriverStatusType) String() string {
	return string(t)
}

type DriverModify struct {
	ID             *string
	Name           *string
	VehicleType    *string
	Status         *DriverStatusType
	CurrentOrderID *string
}
