//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=driver_test
package driver

import "time"

type Clock interface {
	Now() time.Time
}
