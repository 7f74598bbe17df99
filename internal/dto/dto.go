package dto

import "time"

type Error struct {
	Message string `json:"message"`
}

type CustomerCreateRequest struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type DriverCreateRequest struct {
	ID   *string `json:"id"`
	Name *string `json:"name"`
}

type Driver struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	VehicleType    string    `json:"vehicle_type"`
	Status         string    `json:"status"`
	CurrentOrderID *string   `json:"current_order_id,omitempty"`
	AverageRating  float64   `json:"average_rating"`
	RatingsCount   int       `json:"ratings_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type OrderCreateRequest struct {
	CustomerID *string `json:"customer_id"`
	ItemID     *string `json:"item_id"`
	Quantity   *int    `json:"quantity"`
}

type Order struct {
	ID          string     `json:"id"`
	CustomerID  string     `json:"customer_id"`
	ItemID      string     `json:"item_id"`
	Quantity    int        `json:"quantity"`
	Status      string     `json:"status"`
	DriverID    *string    `json:"driver_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	AssignedAt  *time.Time `json:"assigned_at,omitempty"`
	PickedUpAt  *time.Time `json:"picked_up_at,omitempty"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	Rating      *int       `json:"rating,omitempty"`
}

// OrderDriverRequest тело запросов pickup и complete.
type OrderDriverRequest struct {
	DriverID *string `json:"driver_id"`
}

type OrderRatingRequest struct {
	Stars *int `json:"stars"`
}

type DispatchQueue struct {
	OrderIDs []string `json:"order_ids"`
	Length   int      `json:"length"`
}

// NotificationEvent сообщение в топике уведомлений.
type NotificationEvent struct {
	RecipientID   string    `json:"recipient_id"`
	RecipientKind string    `json:"recipient_kind"`
	OrderID       string    `json:"order_id"`
	Message       string    `json:"message"`
	CreatedAt     time.Time `json:"created_at"`
}

type PingResponse struct {
	Message       string `json:"message"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}
