package snapshot

import (
	"time"

	"dispatcher/internal/entities"
)

func CustomerToDomain(c *CustomerDB) entities.Customer {
	return entities.Customer{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt.UTC(),
	}
}

func DriverFromDomain(d *entities.Driver) DriverDB {
	return DriverDB{
		ID:             d.ID,
		Name:           d.Name,
		VehicleType:    d.VehicleType,
		Status:         d.Status.String(),
		CurrentOrderID: nullable(d.CurrentOrderID),
		TotalRating:    d.TotalRating,
		RatingsCount:   d.RatingsCount,
		CreatedAt:      d.CreatedAt,
	}
}

func DriverToDomain(d *DriverDB) entities.Driver {
	return entities.Driver{
		ID:             d.ID,
		Name:           d.Name,
		VehicleType:    d.VehicleType,
		Status:         entities.DriverStatusType(d.Status),
		CurrentOrderID: value(d.CurrentOrderID),
		TotalRating:    d.TotalRating,
		RatingsCount:   d.RatingsCount,
		CreatedAt:      d.CreatedAt.UTC(),
	}
}

func OrderFromDomain(o *entities.Order) OrderDB {
	return OrderDB{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ItemID:      o.ItemID,
		Quantity:    o.Quantity,
		Status:      o.Status.String(),
		DriverID:    nullable(o.DriverID),
		CreatedAt:   o.CreatedAt,
		AssignedAt:  o.AssignedAt,
		PickedUpAt:  o.PickedUpAt,
		DeliveredAt: o.DeliveredAt,
		Rating:      o.Rating,
	}
}

func OrderToDomain(o *OrderDB) entities.Order {
	return entities.Order{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ItemID:      o.ItemID,
		Quantity:    o.Quantity,
		Status:      entities.OrderStatusType(o.Status),
		DriverID:    value(o.DriverID),
		CreatedAt:   o.CreatedAt.UTC(),
		AssignedAt:  utc(o.AssignedAt),
		PickedUpAt:  utc(o.PickedUpAt),
		DeliveredAt: utc(o.DeliveredAt),
		Rating:      o.Rating,
	}
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
