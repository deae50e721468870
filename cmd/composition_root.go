package cmd

import (
	"log/slog"

	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/redis"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CompositionRoot wires the adapters into the application's command and
// query handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	ledger     *redis.AvailabilityLedger
	tracker    *services.LocationTracker
	logger     *slog.Logger
}

// NewCompositionRoot builds the object graph from the shared connections.
func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	redisClient *goredis.Client,
	logger *slog.Logger,
) (CompositionRoot, error) {
	mirror := redis.NewLocationMirror(redisClient)

	trackerOpts := make([]services.LocationTrackerOption, 0, 1)
	if config.LocationStalenessWindow > 0 {
		trackerOpts = append(trackerOpts, services.WithStalenessWindow(config.LocationStalenessWindow))
	}

	tracker, err := services.NewLocationTracker(mirror, trackerOpts...)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		ledger:     redis.NewAvailabilityLedger(redisClient),
		tracker:    tracker,
		logger:     logger,
	}, nil
}

// Tracker exposes the location tracker so the entry point can warm-load it
// from the mirror before serving traffic.
func (c *CompositionRoot) Tracker() *services.LocationTracker {
	return c.tracker
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() *commands.CreateOrderCommandHandler {
	dispatchHandler := c.CreateDispatchOrderCommandHandler()
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), dispatchHandler, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	return commands.NewUpdateOrderStatusCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDispatchOrderCommandHandler() commands.DispatchOrderCommandHandler {
	return commands.NewDispatchOrderCommandHandler(c.orderUoWFactory(), c.ledger, c.tracker)
}

func (c *CompositionRoot) CreateUpdateLocationCommandHandler() commands.UpdateLocationCommandHandler {
	return commands.NewUpdateLocationCommandHandler(c.tracker, c.ledger)
}

func (c *CompositionRoot) CreateRemoveLocationCommandHandler() commands.RemoveLocationCommandHandler {
	return commands.NewRemoveLocationCommandHandler(c.tracker)
}

func (c *CompositionRoot) CreateSetAvailabilityCommandHandler() commands.SetAvailabilityCommandHandler {
	return commands.NewSetAvailabilityCommandHandler(c.ledger, c.tracker)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateNearbyDriversQueryHandler() queries.NearbyDriversQueryHandler {
	return queries.NewNearbyDriversQueryHandler(c.tracker)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.orderUoWFactory(),
		c.CreateDispatchOrderCommandHandler(),
		c.tracker,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
