package driver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"dispatcher/internal/entities"
)

// Registry хранит курьеров и их доступность. Порядок регистрации
// сохраняется и задает порядок кандидатов при распределении заказов.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]*entities.Driver
	order   []string
	clock   Clock
}

func New(clock Clock) *Registry {
	return &Registry{
		drivers: make(map[string]*entities.Driver),
		clock:   clock,
	}
}

// Onboard регистрирует курьера. Если курьер с таким ID уже есть,
// возвращается существующая запись без изменений.
func (r *Registry) Onboard(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error) {
	if driverModify.ID == nil || driverModify.Name == nil {
		return nil, ErrMissingRequiredFields
	}
	id := strings.TrimSpace(*driverModify.ID)
	if !isValidID(id) {
		return nil, ErrInvalidDriverID
	}
	if !isValidName(*driverModify.Name) {
		return nil, ErrInvalidName
	}

	vehicleType := entities.DefaultVehicleType
	if driverModify.VehicleType != nil && strings.TrimSpace(*driverModify.VehicleType) != "" {
		vehicleType = strings.TrimSpace(*driverModify.VehicleType)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.drivers[id]; ok {
		clone := *existing
		return &clone, nil
	}

	driver := &entities.Driver{
		ID:          id,
		Name:        strings.TrimSpace(*driverModify.Name),
		VehicleType: vehicleType,
		Status:      entities.DriverAvailable,
		CreatedAt:   r.clock.Now().UTC(),
	}
	r.drivers[id] = driver
	r.order = append(r.order, id)

	clone := *driver
	return &clone, nil
}

func (r *Registry) Get(ctx context.Context, driverID string) (*entities.Driver, error) {
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	driver, ok := r.drivers[driverID]
	if !ok {
		return nil, fmt.Errorf("get driver %s: %w", driverID, ErrDriverNotFound)
	}
	clone := *driver
	return &clone, nil
}

// List возвращает курьеров в порядке регистрации.
func (r *Registry) List(ctx context.Context) ([]entities.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]entities.Driver, 0, len(r.order))
	for _, id := range r.order {
		drivers = append(drivers, *r.drivers[id])
	}
	return drivers, nil
}

// ListAvailable возвращает свободных курьеров в порядке регистрации.
func (r *Registry) ListAvailable(ctx context.Context) ([]entities.Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drivers := make([]entities.Driver, 0, len(r.order))
	for _, id := range r.order {
		if driver := r.drivers[id]; driver.Status == entities.DriverAvailable {
			drivers = append(drivers, *driver)
		}
	}
	return drivers, nil
}

// SetStatus меняет доступность одного курьера.
//   - BUSY: курьер должен быть свободен, заказ обязателен;
//   - AVAILABLE: текущий заказ сбрасывается, если заказ передан, он должен совпасть с текущим.
func (r *Registry) SetStatus(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error) {
	if driverModify.ID == nil || driverModify.Status == nil {
		return nil, ErrMissingRequiredFields
	}
	if !isValidStatus(*driverModify.Status) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidStatus, *driverModify.Status)
	}

	var orderID string
	if driverModify.CurrentOrderID != nil {
		orderID = strings.TrimSpace(*driverModify.CurrentOrderID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[*driverModify.ID]
	if !ok {
		return nil, fmt.Errorf("set driver %s status: %w", *driverModify.ID, ErrDriverNotFound)
	}

	switch *driverModify.Status {
	case entities.DriverBusy:
		if orderID == "" {
			return nil, fmt.Errorf("busy driver needs an order: %w", ErrMissingRequiredFields)
		}
		if driver.Status == entities.DriverBusy {
			if driver.CurrentOrderID == orderID {
				break
			}
			return nil, fmt.Errorf("driver %s busy with order %s: %w", driver.ID, driver.CurrentOrderID, ErrDriverNotAvailable)
		}
		driver.Status = entities.DriverBusy
		driver.CurrentOrderID = orderID
	case entities.DriverAvailable:
		if driver.Status == entities.DriverAvailable {
			break
		}
		if orderID != "" && driver.CurrentOrderID != orderID {
			return nil, fmt.Errorf("driver %s holds order %s, not %s: %w", driver.ID, driver.CurrentOrderID, orderID, ErrDriverOrderMismatch)
		}
		driver.Status = entities.DriverAvailable
		driver.CurrentOrderID = ""
	}

	clone := *driver
	return &clone, nil
}

// AddRating учитывает оценку курьера. Если previous задан, заказ уже оценивали:
// старая оценка заменяется новой без увеличения счетчика.
func (r *Registry) AddRating(ctx context.Context, driverID string, stars int, previous *int) (*entities.Driver, error) {
	if !isValidStars(stars) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, stars)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	driver, ok := r.drivers[driverID]
	if !ok {
		return nil, fmt.Errorf("rate driver %s: %w", driverID, ErrDriverNotFound)
	}

	if previous != nil {
		driver.TotalRating += stars - *previous
	} else {
		driver.TotalRating += stars
		driver.RatingsCount++
	}

	clone := *driver
	return &clone, nil
}

// Restore заменяет содержимое реестра курьерами из снапшота,
// порядок регистрации восстанавливается по времени создания.
func (r *Registry) Restore(ctx context.Context, drivers []entities.Driver) error {
	restored := make(map[string]*entities.Driver, len(drivers))
	order := make([]string, 0, len(drivers))

	sorted := make([]entities.Driver, len(drivers))
	copy(sorted, drivers)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	for i := range sorted {
		driver := sorted[i]
		if !isValidID(driver.ID) || !isValidStatus(driver.Status) {
			return fmt.Errorf("restore driver %q: %w", driver.ID, ErrInvalidStatus)
		}
		if (driver.Status == entities.DriverBusy) != (driver.CurrentOrderID != "") {
			return fmt.Errorf("restore driver %s: %w", driver.ID, ErrCorruptedDriver)
		}
		if _, ok := restored[driver.ID]; ok {
			continue
		}
		restored[driver.ID] = &driver
		order = append(order, driver.ID)
	}

	r.mu.Lock()
	r.drivers = restored
	r.order = order
	r.mu.Unlock()

	return nil
}
