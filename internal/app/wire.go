//go:build wireinject
// +build wireinject

package app

import (
	"context"
	"time"

	"dispatcher/internal/entities"
	"dispatcher/internal/handlers/rest/customer_post"
	"dispatcher/internal/handlers/rest/dispatch_queue_get"
	"dispatcher/internal/handlers/rest/driver_get"
	"dispatcher/internal/handlers/rest/driver_post"
	"dispatcher/internal/handlers/rest/drivers_get"
	"dispatcher/internal/handlers/rest/order_cancel_post"
	"dispatcher/internal/handlers/rest/order_complete_post"
	"dispatcher/internal/handlers/rest/order_get"
	"dispatcher/internal/handlers/rest/order_pickup_post"
	"dispatcher/internal/handlers/rest/order_post"
	"dispatcher/internal/handlers/rest/order_rating_post"
	"dispatcher/internal/handlers/rest/orders_get"
	"dispatcher/internal/handlers/tasks/order_timeout"
	"dispatcher/internal/jobs"
	"dispatcher/internal/pkg/clock"
	"dispatcher/internal/pkg/config"
	"dispatcher/internal/pkg/idgen"
	"dispatcher/internal/repository/snapshot"
	customerService "dispatcher/internal/service/customer"
	deliveryService "dispatcher/internal/service/delivery"
	dispatchService "dispatcher/internal/service/dispatch"
	driverService "dispatcher/internal/service/driver"
	orderService "dispatcher/internal/service/order"
	persistenceService "dispatcher/internal/service/persistence"
	"dispatcher/pkg/background"
	"dispatcher/pkg/logger"
	"dispatcher/pkg/querier"
	"dispatcher/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotTimeout ограничивает один проход снимка по расписанию.
const snapshotTimeout = 30 * time.Second

// Notifier конечная точка уведомлений: Kafka или лог, выбирается в main.
type Notifier interface {
	Notify(ctx context.Context, notification entities.Notification)
}

type Application struct {
	ServiceCustomer ServiceCustomer
	ServiceDriver   ServiceDriver
	ServiceOrder    ServiceOrder
	ServiceDispatch ServiceDispatch

	Customers *customerService.Registry
	Drivers   *driverService.Registry
	Orders    *orderService.Registry
	Engine    *dispatchService.Engine
}

type ServiceCustomer interface {
	customer_post.Service
}

type ServiceDriver interface {
	driver_get.Service
	driver_post.Service
	drivers_get.Service
}

type ServiceOrder interface {
	order_post.Service
	order_get.Service
	orders_get.Service
	order_pickup_post.Service
	order_complete_post.Service
	order_cancel_post.Service
	order_rating_post.Service
}

type ServiceDispatch interface {
	dispatch_queue_get.Service
}

type Persistence struct {
	Snapshotter *persistenceService.Snapshotter
	SnapshotJob *jobs.SnapshotJob
}

var clockSet = wire.NewSet(
	clock.New,
	wire.Bind(new(customerService.Clock), new(*clock.Clock)),
	wire.Bind(new(driverService.Clock), new(*clock.Clock)),
	wire.Bind(new(orderService.Clock), new(*clock.Clock)),
	wire.Bind(new(dispatchService.Clock), new(*clock.Clock)),
	wire.Bind(new(deliveryService.Clock), new(*clock.Clock)),
)

// InitializeApplication собирает реестры, движок диспетчеризации и сервис доставки.
func InitializeApplication(
	log logger.Logger,
	notifier Notifier,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		clockSet,
		idgen.New,

		customerService.New,
		driverService.New,
		orderService.New,
		provideDispatchEngine,
		provideServiceDelivery,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceCustomer), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceDriver), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceOrder), new(*deliveryService.Delivery)),
		wire.Bind(new(ServiceDispatch), new(*deliveryService.Delivery)),

		wire.Bind(new(orderService.IDGenerator), new(*idgen.UUIDGenerator)),

		wire.Bind(new(dispatchService.OrderRegistry), new(*orderService.Registry)),
		wire.Bind(new(dispatchService.DriverRegistry), new(*driverService.Registry)),
		wire.Bind(new(dispatchService.Notifier), new(Notifier)),

		wire.Bind(new(deliveryService.CustomerRegistry), new(*customerService.Registry)),
		wire.Bind(new(deliveryService.DriverRegistry), new(*driverService.Registry)),
		wire.Bind(new(deliveryService.OrderRegistry), new(*orderService.Registry)),
		wire.Bind(new(deliveryService.Dispatcher), new(*dispatchService.Engine)),
		wire.Bind(new(deliveryService.Notifier), new(Notifier)),
	)
	return &Application{}, nil
}

// InitializePersistence собирает снимки состояния в Postgres и их расписание.
func InitializePersistence(
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	app *Application,
	cfg *config.Config,
) (*Persistence, error) {
	wire.Build(
		provideTxManager,
		provideQuerier,
		provideSnapshotRepository,
		provideSnapshotter,
		provideSnapshotJob,

		wire.FieldsOf(new(*Application), "Customers", "Drivers", "Orders", "Engine"),
		wire.Struct(new(Persistence), "*"),

		wire.Bind(new(snapshot.Querier), new(*querier.Querier)),
		wire.Bind(new(persistenceService.Repository), new(*snapshot.Repository)),
		wire.Bind(new(persistenceService.TxManager), new(*tx.Manager)),
		wire.Bind(new(persistenceService.CustomerRegistry), new(*customerService.Registry)),
		wire.Bind(new(persistenceService.DriverRegistry), new(*driverService.Registry)),
		wire.Bind(new(persistenceService.OrderRegistry), new(*orderService.Registry)),
		wire.Bind(new(persistenceService.Dispatcher), new(*dispatchService.Engine)),
		wire.Bind(new(jobs.Snapshotter), new(*persistenceService.Snapshotter)),
	)
	return &Persistence{}, nil
}

// InitializeBackgroundWorkers запускает периодические задачи.
// Вызывается после восстановления снимка, чтобы прогрев видел восстановленные заказы.
func InitializeBackgroundWorkers(
	ctx context.Context,
	log logger.Logger,
	app *Application,
	cfg *config.Config,
) (*background.Worker, error) {
	wire.Build(
		clock.New,
		provideOrderTimeoutTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.FieldsOf(new(*Application), "Orders", "Engine"),

		wire.Bind(new(order_timeout.OrderLister), new(*orderService.Registry)),
		wire.Bind(new(order_timeout.Canceller), new(*dispatchService.Engine)),
		wire.Bind(new(order_timeout.Clock), new(*clock.Clock)),
	)
	return nil, nil
}

func provideDispatchEngine(
	log logger.Logger,
	orders dispatchService.OrderRegistry,
	drivers dispatchService.DriverRegistry,
	notifier dispatchService.Notifier,
	clock dispatchService.Clock,
) *dispatchService.Engine {
	return dispatchService.New(log, orders, drivers, notifier, clock)
}

func provideServiceDelivery(
	log logger.Logger,
	customers deliveryService.CustomerRegistry,
	drivers deliveryService.DriverRegistry,
	orders deliveryService.OrderRegistry,
	dispatcher deliveryService.Dispatcher,
	notifier deliveryService.Notifier,
	clock deliveryService.Clock,
	cfg *config.Config,
) *deliveryService.Delivery {
	return deliveryService.New(
		log,
		customers,
		drivers,
		orders,
		dispatcher,
		notifier,
		clock,
		cfg.Dispatch.MaxOrderQuantity,
	)
}

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideSnapshotRepository(querier snapshot.Querier) *snapshot.Repository {
	return snapshot.New(querier)
}

func provideSnapshotter(
	log logger.Logger,
	repository persistenceService.Repository,
	txManager persistenceService.TxManager,
	customers persistenceService.CustomerRegistry,
	drivers persistenceService.DriverRegistry,
	orders persistenceService.OrderRegistry,
	dispatcher persistenceService.Dispatcher,
) *persistenceService.Snapshotter {
	return persistenceService.New(log, repository, txManager, customers, drivers, orders, dispatcher)
}

func provideSnapshotJob(
	log logger.Logger,
	snapshotter jobs.Snapshotter,
	cfg *config.Config,
) *jobs.SnapshotJob {
	return jobs.NewSnapshotJob(log, snapshotter, cfg.Persistence.SnapshotSchedule, snapshotTimeout)
}

func provideOrderTimeoutTask(
	log logger.Logger,
	orders order_timeout.OrderLister,
	canceller order_timeout.Canceller,
	clock order_timeout.Clock,
	cfg *config.Config,
) *order_timeout.OrderTimeout {
	return order_timeout.NewOrderTimeout(
		log,
		orders,
		canceller,
		clock,
		cfg.Dispatch.OrderTimeout,
		cfg.Tasks.OrderTimeoutSweepInterval,
	)
}

func provideTaskList(
	orderTimeoutTask *order_timeout.OrderTimeout,
) []background.Task {
	return []background.Task{
		orderTimeoutTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
