package persistence

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
)

// Snapshotter переносит состояние реестров в базу и обратно.
// Очередь ожидающих заказов не сохраняется, при восстановлении
// она заново собирается из заказов в статусе CREATED.
type Snapshotter struct {
	log        handlerLogger
	repo       Repository
	tx         TxManager
	customers  CustomerRegistry
	drivers    DriverRegistry
	orders     OrderRegistry
	dispatcher Dispatcher

	mu sync.Mutex
}

func New(
	log handlerLogger,
	repo Repository,
	tx TxManager,
	customers CustomerRegistry,
	drivers DriverRegistry,
	orders OrderRegistry,
	dispatcher Dispatcher,
) *Snapshotter {
	return &Snapshotter{
		repo:       repo,
		tx:         tx,
		customers:  customers,
		drivers:    drivers,
		orders:     orders,
		dispatcher: dispatcher,
		log: log.With(
			logger.NewField("component", "persistence"),
		),
	}
}

// Snapshot записывает все записи реестров одной транзакцией.
func (s *Snapshotter) Snapshot(ctx context.Context) (err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		SnapshotDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			SnapshotsTotal.WithLabelValues("failed").Inc()
			return
		}
		SnapshotsTotal.WithLabelValues("saved").Inc()
	}()

	customers, err := s.customers.List(ctx)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	// Курьер регистрируется раньше, чем получает заказ, поэтому заказы
	// читаются первыми: каждый курьер из заказов попадет в снимок.
	orders, err := s.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	drivers, err := s.drivers.List(ctx)
	if err != nil {
		return fmt.Errorf("list drivers: %w", err)
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.repo.SaveCustomers(ctx, customers); err != nil {
			return err
		}
		if err := s.repo.SaveDrivers(ctx, drivers); err != nil {
			return err
		}
		return s.repo.SaveOrders(ctx, orders)
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	s.log.Info("snapshot saved",
		logger.NewField("customers", len(customers)),
		logger.NewField("drivers", len(drivers)),
		logger.NewField("orders", len(orders)),
	)
	return nil
}

// Restore загружает последний снапшот в реестры и ставит в очередь
// заказы, которые еще ждут курьера, в порядке создания.
func (s *Snapshotter) Restore(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		customers []entities.Customer
		drivers   []entities.Driver
		orders    []entities.Order
	)
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if customers, err = s.repo.LoadCustomers(ctx); err != nil {
			return err
		}
		if drivers, err = s.repo.LoadDrivers(ctx); err != nil {
			return err
		}
		orders, err = s.repo.LoadOrders(ctx)
		return err
	})
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	drivers = s.reconcileDrivers(drivers, orders)

	if err := s.customers.Restore(ctx, customers); err != nil {
		return fmt.Errorf("restore customers: %w", err)
	}
	if err := s.drivers.Restore(ctx, drivers); err != nil {
		return fmt.Errorf("restore drivers: %w", err)
	}
	if err := s.orders.Restore(ctx, orders); err != nil {
		return fmt.Errorf("restore orders: %w", err)
	}

	RestoredRecords.WithLabelValues("customer").Set(float64(len(customers)))
	RestoredRecords.WithLabelValues("driver").Set(float64(len(drivers)))
	RestoredRecords.WithLabelValues("order").Set(float64(len(orders)))

	pending := createdOrders(orders)
	for _, orderID := range pending {
		if err := s.dispatcher.Enqueue(ctx, orderID); err != nil {
			return fmt.Errorf("enqueue restored order %s: %w", orderID, err)
		}
	}

	s.log.Info("snapshot restored",
		logger.NewField("customers", len(customers)),
		logger.NewField("drivers", len(drivers)),
		logger.NewField("orders", len(orders)),
		logger.NewField("pending", len(pending)),
	)
	return nil
}

// reconcileDrivers выводит занятость курьеров из заказов.
// Реестры читаются при снапшоте по очереди, поэтому строки курьеров
// могут отставать от заказов; заказы считаются источником правды.
func (s *Snapshotter) reconcileDrivers(drivers []entities.Driver, orders []entities.Order) []entities.Driver {
	active := make([]entities.Order, 0)
	for i := range orders {
		switch orders[i].Status {
		case entities.OrderAssigned, entities.OrderPickedUp:
			active = append(active, orders[i])
		}
	}
	sortByCreation(active)

	current := make(map[string]string, len(active))
	for i := range active {
		order := &active[i]
		if busyWith, ok := current[order.DriverID]; ok {
			s.log.Warn("driver has several active orders in snapshot",
				logger.NewField("driver", order.DriverID),
				logger.NewField("order", busyWith),
				logger.NewField("ignored_order", order.ID),
			)
			continue
		}
		current[order.DriverID] = order.ID
	}

	reconciled := make([]entities.Driver, len(drivers))
	for i := range drivers {
		driver := drivers[i]
		orderID, busy := current[driver.ID]
		delete(current, driver.ID)

		if busy {
			driver.Status = entities.DriverBusy
			driver.CurrentOrderID = orderID
		} else {
			driver.Status = entities.DriverAvailable
			driver.CurrentOrderID = ""
		}
		if driver.Status != drivers[i].Status || driver.CurrentOrderID != drivers[i].CurrentOrderID {
			s.log.Warn("driver state reconciled from orders",
				logger.NewField("driver", driver.ID),
				logger.NewField("status", driver.Status.String()),
				logger.NewField("order", orderID),
			)
		}
		reconciled[i] = driver
	}

	for driverID, orderID := range current {
		s.log.Warn("active order references unknown driver",
			logger.NewField("driver", driverID),
			logger.NewField("order", orderID),
		)
	}
	return reconciled
}

func createdOrders(orders []entities.Order) []string {
	created := make([]entities.Order, 0)
	for i := range orders {
		if orders[i].Status == entities.OrderCreated {
			created = append(created, orders[i])
		}
	}
	sortByCreation(created)

	ids := make([]string, 0, len(created))
	for i := range created {
		ids = append(ids, created[i].ID)
	}
	return ids
}

func sortByCreation(orders []entities.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID < orders[j].ID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
}
