//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import "time"

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID() string
}
