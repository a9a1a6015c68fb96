package cmd

import (
	"errors"
	"io"
	"log/slog"

	orderhttp "orders/internal/adapters/in/http"
	"orders/internal/adapters/out/gateway"
	"orders/internal/adapters/out/kafka"
	"orders/internal/adapters/out/memory"
	"orders/internal/adapters/out/notify"
	"orders/internal/adapters/out/postgres"
	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/application/usecases/queries"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/ports"
	"orders/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	clock      kernel.Clock
	uowFactory ports.UnitOfWorkFactory
	notifier   ports.StatusNotifier
	closers    []io.Closer
}

// NewCompositionRoot wires the adapters selected by configs. gormDB is only
// used by the postgres backend and may be nil for the memory backend.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		configs: configs,
		logger:  logger,
		clock:   kernel.SystemClock{},
	}

	if configs.StoreBackend == StoreBackendMemory {
		root.uowFactory = memory.NewStore()
		logger.Warn("using in-memory order store, data is lost on restart")
	} else {
		root.uowFactory = postgres.NewGormUnitOfWorkFactory(gormDB)
	}

	root.notifier = root.createNotifier()

	return root
}

func (c *CompositionRoot) createNotifier() ports.StatusNotifier {
	var notifiers []ports.StatusNotifier

	if c.configs.GatewayURL != "" {
		notifiers = append(notifiers, gateway.NewNotifier(gateway.Config{
			BaseURL:     c.configs.GatewayURL,
			Timeout:     c.configs.GatewayTimeout,
			MaxFailures: c.configs.GatewayMaxFailures,
			OpenTimeout: c.configs.GatewayBreakerTimeout,
		}, c.logger))
	}

	if c.configs.KafkaHost != "" && c.configs.KafkaOrderChangedTopic != "" {
		publisher := kafka.NewPublisher(kafka.NewWriter(c.configs.KafkaHost, c.configs.KafkaOrderChangedTopic))
		c.closers = append(c.closers, publisher)
		notifiers = append(notifiers, publisher)
	}

	if len(notifiers) == 0 {
		c.logger.Warn("no status change notifier configured")
		return notify.Nop{}
	}

	return notify.NewFanout(notifiers...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) orderReader() queries.OrderReader {
	return c.uowFactory.Create().OrderRepository()
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.clock, c.logger)
}

func (c *CompositionRoot) CreateChangeOrderStatusCommandHandler() commands.ChangeOrderStatusCommandHandler {
	return commands.NewChangeOrderStatusCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateAdvanceOrderCommandHandler() commands.AdvanceOrderCommandHandler {
	return commands.NewAdvanceOrderCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateProgressOrdersCommandHandler() commands.ProgressOrdersCommandHandler {
	return commands.NewProgressOrdersCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateTransitionOrdersCommandHandler() commands.TransitionOrdersCommandHandler {
	return commands.NewTransitionOrdersCommandHandler(c.orderUoWFactory(), c.notifier, c.clock, c.logger)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetAllOrdersQueryHandler() queries.GetAllOrdersQueryHandler {
	return queries.NewGetAllOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateServer() *orderhttp.Server {
	return orderhttp.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateChangeOrderStatusCommandHandler(),
		c.CreateAdvanceOrderCommandHandler(),
		c.CreateProgressOrdersCommandHandler(),
		c.CreateTransitionOrdersCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetAllOrdersQueryHandler(),
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	handler := c.CreateProgressOrdersCommandHandler()
	return jobs.NewJobManager(&handler, c.configs.ProgressionSchedule, c.logger)
}

// Close releases the notifier connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	for _, closer := range c.closers {
		errList = append(errList, closer.Close())
	}
	return errors.Join(errList...)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
