package entities

import "time"

type RecipientKind string

const (
	RecipientCustomer RecipientKind = "customer"
	RecipientDriver   RecipientKind = "driver"
)

func (k RecipientKind) String() string {
	return string(k)
}

type Notification struct {
	RecipientID   string
	RecipientKind RecipientKind
	OrderID       string
	Message       string
	CreatedAt     time.Time
}
