package cmd

import (
	"context"
	"fmt"
	"log/slog"

	apihttp "pos/internal/adapters/in/http"
	"pos/internal/adapters/out/escpos"
	"pos/internal/adapters/out/kafka"
	"pos/internal/adapters/out/memory"
	"pos/internal/adapters/out/postgres"
	"pos/internal/adapters/out/rabbitmq"
	"pos/internal/adapters/out/records"
	"pos/internal/adapters/out/redisstore"
	"pos/internal/core/application/session"
	"pos/internal/core/application/usecases/commands"
	"pos/internal/core/application/usecases/queries"
	"pos/internal/core/domain/model/kernel"
	"pos/internal/core/domain/model/location"
	"pos/internal/core/domain/services"
	"pos/internal/core/ports"
	"pos/internal/jobs"
	"pos/internal/pkg/printer"

	"github.com/redis/go-redis/v9"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type unitOfWorkFactory interface {
	Create() ports.UnitOfWork
}

type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger

	store      ports.RecordStore
	uowFactory unitOfWorkFactory
	registry   *location.Registry
	taxRate    kernel.TaxRate

	kitchen  ports.KitchenTicketSender
	receipts ports.ReceiptPrinter
	events   ports.OrderEventPublisher

	session *session.Session
	closers []func()
}

// NewCompositionRoot opens the store and the outbound adapters cfg enables.
// Call Close on shutdown.
func NewCompositionRoot(ctx context.Context, cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	taxRate, err := kernel.TaxRateFromString(cfg.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("TAX_RATE: %w", err)
	}

	c := &CompositionRoot{
		cfg:      cfg,
		logger:   logger,
		registry: location.NewRegistry(),
		taxRate:  taxRate,
	}
	if err = c.openStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err = c.openOutbound(); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func (c *CompositionRoot) openStore(ctx context.Context) error {
	switch c.cfg.StoreDriver {
	case StoreDriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			c.cfg.DBHost, c.cfg.DBPort, c.cfg.DBUser, c.cfg.DBPassword, c.cfg.DBName, c.cfg.DBSslMode)
		// Connectivity errors surface from Migrate.
		db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{DisableAutomaticPing: true})
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		c.closers = append(c.closers, func() { _ = sqlDB.Close() })
		if err = postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate postgres: %w", err)
		}
		c.store = postgres.NewGormRecordStore(db)
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db)

	case StoreDriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.RedisAddr,
			Password: c.cfg.RedisPassword,
			DB:       c.cfg.RedisDB,
		})
		c.closers = append(c.closers, func() { _ = client.Close() })
		if err := client.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("connect to redis: %w", err)
		}
		store := redisstore.NewStore(client, c.cfg.RedisKeyPrefix)
		c.store = store
		c.uowFactory = redisstore.NewUnitOfWorkFactory(store)

	case StoreDriverMemory, "":
		c.logger.Warn("Using the in-memory store; data is lost on restart")
		store := memory.NewStore()
		c.store = store
		c.uowFactory = memory.NewUnitOfWorkFactory(store)

	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (use postgres, redis or memory)", c.cfg.StoreDriver)
	}
	return nil
}

func (c *CompositionRoot) openOutbound() error {
	device, err := printer.New(c.cfg.PrinterType, c.cfg.PrinterUSBPath, c.cfg.PrinterAddress)
	if err != nil {
		return err
	}
	tickets := escpos.NewTicketPrinter(device, c.cfg.PrinterWidth, "")
	c.kitchen = tickets
	c.receipts = tickets

	if c.cfg.RabbitMQURL != "" {
		exchange := c.cfg.RabbitMQExchange
		if exchange == "" {
			exchange = rabbitmq.DefaultExchange
		}
		client, err := rabbitmq.Dial(c.cfg.RabbitMQURL, exchange)
		if err != nil {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		c.closers = append(c.closers, client.Close)
		c.kitchen = rabbitmq.NewKitchenTicketPublisher(client, exchange)
		c.logger.Info("Kitchen tickets go to RabbitMQ", "exchange", exchange)
	}

	if c.cfg.KafkaBroker != "" {
		writer := kafka.NewWriter(c.cfg.KafkaBroker, c.cfg.KafkaOrderTopic)
		c.closers = append(c.closers, func() { _ = writer.Close() })
		c.events = kafka.NewOrderEventPublisher(writer)
		c.logger.Info("Order events go to Kafka", "broker", c.cfg.KafkaBroker, "topic", writer.Topic)
	}
	return nil
}

// Close releases connections in reverse order of opening.
func (c *CompositionRoot) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

func (c *CompositionRoot) orderReader() *records.OrderRepository {
	return records.NewOrderRepository(c.store)
}

func (c *CompositionRoot) productReader() *records.ProductRepository {
	return records.NewProductRepository(c.store)
}

func (c *CompositionRoot) categoryReader() *records.CategoryRepository {
	return records.NewCategoryRepository(c.store)
}

func (c *CompositionRoot) CreateSaveOrderCommandHandler() commands.SaveOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	policy := services.StockPolicy{AllowNegative: c.cfg.AllowNegativeStock}
	return commands.NewTransitionOrderCommandHandler(f, services.NewOrderLifecycle(policy), c.registry, c.events, c.logger)
}

func (c *CompositionRoot) CreateSaveProductCommandHandler() commands.SaveProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSaveProductCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteProductCommandHandler() commands.DeleteProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteProductCommandHandler(f)
}

func (c *CompositionRoot) CreateCatalogLookup() queries.CatalogLookup {
	return queries.NewCatalogLookup(c.productReader(), c.categoryReader())
}

func (c *CompositionRoot) CreateGetOrdersQueryHandler() queries.GetOrdersQueryHandler {
	return queries.NewGetOrdersQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetSalesReportQueryHandler() queries.GetSalesReportQueryHandler {
	return queries.NewGetSalesReportQueryHandler(c.orderReader())
}

func (c *CompositionRoot) CreateGetDashboardQueryHandler() queries.GetDashboardQueryHandler {
	return queries.NewGetDashboardQueryHandler(c.orderReader(), c.productReader())
}

func (c *CompositionRoot) CreateGetLowStockProductsQueryHandler() queries.GetLowStockProductsQueryHandler {
	return queries.NewGetLowStockProductsQueryHandler(c.productReader())
}

func (c *CompositionRoot) CreateExportDataQueryHandler() queries.ExportDataQueryHandler {
	return queries.NewExportDataQueryHandler(c.orderReader(), c.productReader(), c.categoryReader())
}

// Session returns the terminal's billing session, creating it and loading
// occupancy from the store on first use.
func (c *CompositionRoot) Session(ctx context.Context) (*session.Session, error) {
	if c.session != nil {
		return c.session, nil
	}

	s, err := session.New(session.Dependencies{
		Registry:     c.registry,
		Orders:       c.orderReader(),
		Catalog:      c.CreateCatalogLookup(),
		Saver:        c.CreateSaveOrderCommandHandler(),
		Transitioner: c.CreateTransitionOrderCommandHandler(),
		Kitchen:      c.kitchen,
		Receipts:     c.receipts,
	}, session.Config{
		TaxRate:      c.taxRate,
		MaxLocations: c.cfg.MaxLocations,
	}, c.logger)
	if err != nil {
		return nil, err
	}

	occupied, err := s.RebuildOccupancy(ctx)
	if err != nil {
		return nil, fmt.Errorf("load occupancy: %w", err)
	}
	c.logger.Info("Occupancy loaded", "occupied", len(occupied))

	c.session = s
	return s, nil
}

func (c *CompositionRoot) CreateHTTPServer(ctx context.Context) (*apihttp.Server, error) {
	s, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}
	auth, err := apihttp.NewAuthenticator(c.cfg.AdminPassword, c.cfg.CashierPassword)
	if err != nil {
		return nil, err
	}

	return apihttp.NewServer(apihttp.Handlers{
		Session:       s,
		SaveProduct:   c.CreateSaveProductCommandHandler(),
		DeleteProduct: c.CreateDeleteProductCommandHandler(),
		Orders:        c.orderReader(),
		Catalog:       c.CreateCatalogLookup(),
		GetOrders:     c.CreateGetOrdersQueryHandler(),
		SalesReport:   c.CreateGetSalesReportQueryHandler(),
		Dashboard:     c.CreateGetDashboardQueryHandler(),
		LowStock:      c.CreateGetLowStockProductsQueryHandler(),
		Export:        c.CreateExportDataQueryHandler(),
	}, auth, apihttp.Options{
		LowStockThreshold: c.cfg.LowStockThreshold,
		QR:                apihttp.DefaultQRGenerator{BaseURL: c.cfg.PublicBaseURL},
		RequestsPerSecond: c.cfg.RateLimit,
		Burst:             int(c.cfg.RateLimit) * 2,
	}, c.logger), nil
}

func (c *CompositionRoot) CreateJobManager(ctx context.Context) (*jobs.JobManager, error) {
	s, err := c.Session(ctx)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(s, c.CreateGetLowStockProductsQueryHandler(), c.cfg.LowStockThreshold, c.logger), nil
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
