package delivery

import (
	"context"
	"fmt"
	"sync"

	"dispatcher/internal/entities"
	"dispatcher/pkg/logger"
)

// Delivery собирает реестры и движок диспетчеризации в операции клиента:
// онбординг, создание заказа, забор, доставка, отмена и оценка.
type Delivery struct {
	customers  CustomerRegistry
	drivers    DriverRegistry
	orders     OrderRegistry
	dispatcher Dispatcher
	notifier   Notifier
	clock      Clock
	log        handlerLogger

	maxQuantity int

	// оценка меняет заказ и курьера, операции должны идти парой
	ratingMu sync.Mutex
}

func New(
	log handlerLogger,
	customers CustomerRegistry,
	drivers DriverRegistry,
	orders OrderRegistry,
	dispatcher Dispatcher,
	notifier Notifier,
	clock Clock,
	maxQuantity int,
) *Delivery {
	return &Delivery{
		customers:   customers,
		drivers:     drivers,
		orders:      orders,
		dispatcher:  dispatcher,
		notifier:    notifier,
		clock:       clock,
		maxQuantity: maxQuantity,
		log: log.With(
			logger.NewField("component", "delivery"),
		),
	}
}

func (d *Delivery) OnboardCustomer(ctx context.Context, customerModify entities.CustomerModify) (*entities.Customer, error) {
	customer, err := d.customers.Onboard(ctx, customerModify)
	if err != nil {
		return nil, fmt.Errorf("onboard customer: %w", err)
	}
	return customer, nil
}

// OnboardDriver регистрирует курьера и сразу отдает ему заказ из очереди, если он есть.
func (d *Delivery) OnboardDriver(ctx context.Context, driverModify entities.DriverModify) (*entities.Driver, error) {
	driver, err := d.drivers.Onboard(ctx, driverModify)
	if err != nil {
		return nil, fmt.Errorf("onboard driver: %w", err)
	}

	d.dispatcher.OnDriverFreed(ctx, driver.ID)

	driver, err = d.drivers.Get(ctx, driver.ID)
	if err != nil {
		return nil, fmt.Errorf("get onboarded driver: %w", err)
	}
	return driver, nil
}

func (d *Delivery) CreateOrder(ctx context.Context, orderModify entities.OrderModify) (*entities.Order, error) {
	if orderModify.CustomerID == nil || orderModify.ItemID == nil || orderModify.Quantity == nil {
		return nil, ErrMissingRequiredFields
	}

	if _, err := d.customers.Get(ctx, *orderModify.CustomerID); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	if _, ok := entities.ItemByID(*orderModify.ItemID); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, *orderModify.ItemID)
	}
	if quantity := *orderModify.Quantity; quantity < 1 || quantity > d.maxQuantity {
		return nil, fmt.Errorf("%w: %d, must be between 1 and %d", ErrQuantityOutOfRange, quantity, d.maxQuantity)
	}

	created, err := d.orders.Create(ctx, entities.OrderModify{
		CustomerID: orderModify.CustomerID,
		ItemID:     orderModify.ItemID,
		Quantity:   orderModify.Quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	d.log.Info("order created",
		logger.NewField("order", created.ID),
		logger.NewField("customer", created.CustomerID),
	)

	if err := d.dispatcher.Enqueue(ctx, created.ID); err != nil {
		return nil, fmt.Errorf("enqueue order %s: %w", created.ID, err)
	}

	order, err := d.orders.Get(ctx, created.ID)
	if err != nil {
		return nil, fmt.Errorf("get created order: %w", err)
	}
	return order, nil
}

func (d *Delivery) PickupOrder(ctx context.Context, orderID, driverID string) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	pickedUp := entities.OrderPickedUp
	transition, err := d.orders.Transition(ctx, entities.OrderModify{
		ID:       &orderID,
		Status:   &pickedUp,
		DriverID: &driverID,
	})
	if err != nil {
		return nil, fmt.Errorf("pickup order: %w", err)
	}

	order := transition.Current
	if transition.Previous.Status != pickedUp {
		d.log.Info("order picked up",
			logger.NewField("order", orderID),
			logger.NewField("driver", driverID),
		)
		d.notifyCustomer(ctx, &order, fmt.Sprintf("Your order %s has been picked up.", orderID))
	}
	return &order, nil
}

// CompleteOrder закрывает доставку и освобождает курьера под следующий заказ из очереди.
func (d *Delivery) CompleteOrder(ctx context.Context, orderID, driverID string) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}

	delivered := entities.OrderDelivered
	transition, err := d.orders.Transition(ctx, entities.OrderModify{
		ID:       &orderID,
		Status:   &delivered,
		DriverID: &driverID,
	})
	if err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}

	order := transition.Current
	if transition.Previous.Status == delivered {
		if err := d.releaseHeldDriver(ctx, driverID, orderID); err != nil {
			return nil, fmt.Errorf("complete order: %w", err)
		}
		return &order, nil
	}

	d.log.Info("order delivered",
		logger.NewField("order", orderID),
		logger.NewField("driver", driverID),
	)
	d.notifyCustomer(ctx, &order, fmt.Sprintf("Your order %s has been delivered.", orderID))

	if err := d.dispatcher.ReleaseDriver(ctx, driverID, orderID); err != nil {
		return nil, fmt.Errorf("complete order: %w", err)
	}
	return &order, nil
}

// releaseHeldDriver освобождает курьера, если он все еще держит доставленный заказ:
// прошлая попытка могла перевести заказ, но не освободить курьера.
func (d *Delivery) releaseHeldDriver(ctx context.Context, driverID, orderID string) error {
	driver, err := d.drivers.Get(ctx, driverID)
	if err != nil {
		return err
	}
	if driver.Status != entities.DriverBusy || driver.CurrentOrderID != orderID {
		return nil
	}

	d.log.Warn("releasing driver left busy by delivered order",
		logger.NewField("order", orderID),
		logger.NewField("driver", driverID),
	)
	return d.dispatcher.ReleaseDriver(ctx, driverID, orderID)
}

func (d *Delivery) CancelOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}

	order, err := d.dispatcher.Cancel(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RateDriver ставит оценку доставленному заказу и учитывает ее в рейтинге курьера.
// Повторная оценка того же заказа заменяет прежнюю.
func (d *Delivery) RateDriver(ctx context.Context, orderID string, stars int) (*entities.Order, error) {
	if !isValidID(orderID) {
		return nil, ErrInvalidOrderID
	}
	if !isValidStars(stars) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidRating, stars)
	}

	d.ratingMu.Lock()
	defer d.ratingMu.Unlock()

	previous, order, err := d.orders.SetRating(ctx, orderID, stars)
	if err != nil {
		return nil, fmt.Errorf("rate order: %w", err)
	}
	if order.DriverID == "" {
		return order, nil
	}

	if _, err := d.drivers.AddRating(ctx, order.DriverID, stars, previous); err != nil {
		return nil, fmt.Errorf("rate driver %s: %w", order.DriverID, err)
	}
	return order, nil
}

func (d *Delivery) GetOrder(ctx context.Context, orderID string) (*entities.Order, error) {
	return d.orders.Get(ctx, orderID)
}

func (d *Delivery) ListOrders(ctx context.Context) ([]entities.Order, error) {
	return d.orders.List(ctx)
}

func (d *Delivery) GetDriver(ctx context.Context, driverID string) (*entities.Driver, error) {
	return d.drivers.Get(ctx, driverID)
}

func (d *Delivery) ListDrivers(ctx context.Context) ([]entities.Driver, error) {
	return d.drivers.List(ctx)
}

func (d *Delivery) PendingOrders(ctx context.Context) []string {
	return d.dispatcher.Pending(ctx)
}

func (d *Delivery) notifyCustomer(ctx context.Context, order *entities.Order, message string) {
	d.notifier.Notify(ctx, entities.Notification{
		RecipientID:   order.CustomerID,
		RecipientKind: entities.RecipientCustomer,
		OrderID:       order.ID,
		Message:       message,
		CreatedAt:     d.clock.Now().UTC(),
	})
}
