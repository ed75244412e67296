package cmd

import (
	"log/slog"

	httpin "autoservice/internal/adapters/in/http"
	"autoservice/internal/adapters/in/ws"
	"autoservice/internal/adapters/out/postgres"
	"autoservice/internal/adapters/out/postgres/contractorrepo"
	"autoservice/internal/core/application/usecases/commands"
	"autoservice/internal/core/application/usecases/notifications"
	"autoservice/internal/core/application/usecases/queries"
	"autoservice/internal/core/domain/services"
	"autoservice/internal/core/ports"
	"autoservice/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config            Config
	gormDB            *gorm.DB
	uowFactory        postgres.GormUnitOfWorkFactory
	contractorRepo    *contractorrepo.GormContractorRepository
	statusChanger     services.StatusChanger
	notifier          *notifications.OrderNotifier
	cityScopedRegions map[string]bool
	logger            *slog.Logger
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	sink ports.NotificationSink,
	logger *slog.Logger,
) CompositionRoot {
	cityScopedRegions := make(map[string]bool, len(config.CityScopedRegions))
	for _, region := range config.CityScopedRegions {
		cityScopedRegions[region] = true
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	contractorRepo := contractorrepo.NewGormContractorRepository(gormDB)

	root := CompositionRoot{
		config:            config,
		gormDB:            gormDB,
		uowFactory:        *uowFactory,
		contractorRepo:    contractorRepo,
		statusChanger:     services.NewStatusChanger(config.UnitPrice),
		cityScopedRegions: cityScopedRegions,
		logger:            logger,
	}
	root.notifier = notifications.NewOrderNotifier(
		uowFactory.Create().OrderRepository(),
		contractorRepo,
		sink,
		cityScopedRegions,
		logger,
	)

	return root
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderCatalogUoWFactory = FuncOrderCatalogUoWFactory(func() commands.OrderCatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateSetStatusCommandHandler() commands.SetStatusCommandHandler {
	var f commands.AcceptUoWFactory = FuncAcceptUoWFactory(func() commands.AcceptUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetStatusCommandHandler(f, c.statusChanger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f, c.statusChanger)
}

func (c *CompositionRoot) CreateUpdateJobsCommandHandler() commands.UpdateJobsCommandHandler {
	var f commands.OrderCatalogUoWFactory = FuncOrderCatalogUoWFactory(func() commands.OrderCatalogUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateJobsCommandHandler(f)
}

func (c *CompositionRoot) CreateSetVehicleFieldsCommandHandler() commands.SetVehicleFieldsCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetVehicleFieldsCommandHandler(f)
}

func (c *CompositionRoot) CreateLinkOrdersCommandHandler() commands.LinkOrdersCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewLinkOrdersCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewGetOrderQueryHandler(
		uow.OrderRepository(), uow.AccountRepository(), c.config.UnitPrice)
}

func (c *CompositionRoot) CreateGetOrderAnonymousQueryHandler() queries.GetOrderAnonymousQueryHandler {
	return queries.NewGetOrderAnonymousQueryHandler(
		c.uowFactory.Create().OrderRepository(), c.config.UnitPrice)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB, c.contractorRepo, c.cityScopedRegions)
}

func (c *CompositionRoot) CreateListMessagesQueryHandler() queries.ListMessagesQueryHandler {
	uow := c.uowFactory.Create()
	return queries.NewListMessagesQueryHandler(uow.OrderRepository(), uow.ChatRepository())
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateOrderCommandHandler(),
		c.CreateSetStatusCommandHandler(),
		c.CreateCancelOrderCommandHandler(),
		c.CreateUpdateJobsCommandHandler(),
		c.CreateSetVehicleFieldsCommandHandler(),
		c.CreateLinkOrdersCommandHandler(),
		c.CreateGetOrderQueryHandler(),
		c.CreateGetOrderAnonymousQueryHandler(),
		c.CreateListOrdersQueryHandler(),
		c.CreateListMessagesQueryHandler(),
	)
}

func (c *CompositionRoot) CreateChatServer() *ws.Server {
	uow := c.uowFactory.Create()
	return ws.NewServer(
		ws.NewHub(c.logger), uow.OrderRepository(), uow.ChatRepository(), c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	rebroadcastJob := jobs.NewOrderRebroadcastJob(
		c.uowFactory.Create().OrderRepository(),
		c.notifier,
		c.config.OrderStaleAfter,
		c.logger,
	)
	return jobs.NewJobManager(rebroadcastJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderCatalogUoWFactory func() commands.OrderCatalogUoW

func (f FuncOrderCatalogUoWFactory) Create() commands.OrderCatalogUoW {
	return f()
}

type FuncAcceptUoWFactory func() commands.AcceptUoW

func (f FuncAcceptUoWFactory) Create() commands.AcceptUoW {
	return f()
}
