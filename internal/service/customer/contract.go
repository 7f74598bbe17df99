//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=customer_test
package customer

import "time"

type Clock interface {
	Now() time.Time
}
