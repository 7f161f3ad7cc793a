package appcontext

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/RoyceAzure/lab/shopler/internal/config"
	"github.com/RoyceAzure/lab/shopler/internal/infra/payment"
	"github.com/RoyceAzure/lab/shopler/internal/infra/producer"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/shopler/internal/infra/repository/redis_repo"
	"github.com/RoyceAzure/lab/shopler/internal/service"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ApplicationContext struct {
	Cf     *config.Config
	Logger zerolog.Logger

	DbConn       *gorm.DB
	Store        db.Store
	RedisClient  *redis.Client
	ProductCache redis_repo.IProductCacheRepository

	Authorizer    payment.IAuthorizer
	EventProducer producer.IOrderEventProducer

	CatalogService service.ICatalogService
	CartService    service.ICartService
	AddressService service.IAddressService
	PricingEngine  service.IPricingEngine
	OrderService   service.IOrderService
}

func NewApplicationContext(cf *config.Config) (*ApplicationContext, error) {
	app := ApplicationContext{
		Cf: cf,
	}
	if err := app.Init(); err != nil {
		return nil, err
	}
	return &app, nil
}

func (app *ApplicationContext) Init() error {
	app.setUpLogger()

	if err := app.setUpDbConn(); err != nil {
		return err
	}
	if err := app.setUpStore(); err != nil {
		return err
	}
	app.setUpRedis()
	app.setUpEventProducer()
	app.setUpAuthorizer()
	app.setUpServices()

	return nil
}

func (app *ApplicationContext) setUpLogger() {
	app.Logger = zerolog.New(os.Stdout).With().
		Timestamp().
		Str("module", app.Cf.ModulerName).
		Logger()
}

func (app *ApplicationContext) setUpDbConn() error {
	log.Printf("Start setup database connection")
	conn, err := db.GetDbConn(app.Cf.DbName, app.Cf.DbHost, app.Cf.DbPort, app.Cf.DbUser, app.Cf.DbPas)
	if err != nil {
		return err
	}
	app.DbConn = conn
	log.Printf("Finish setup database connection")
	return nil
}

func (app *ApplicationContext) setUpStore() error {
	log.Printf("Start setup store")
	store := db.NewStore(app.DbConn)
	if err := store.InitMigrate(); err != nil {
		return err
	}
	app.Store = store
	log.Printf("Finish setup store")
	return nil
}

// redis 掛掉不擋啟動，型錄退回純 DB 讀取
func (app *ApplicationContext) setUpRedis() {
	log.Printf("Start setup redis")
	client := redis.NewClient(&redis.Options{
		Addr:     app.Cf.RedisAddr,
		Password: app.Cf.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("redis not reachable, catalog cache disabled: %v", err)
		client.Close()
		return
	}

	app.RedisClient = client
	app.ProductCache = redis_repo.NewProductCacheRepo(client)
	log.Printf("Finish setup redis")
}

// kafka 未設定 brokers 時不發事件
func (app *ApplicationContext) setUpEventProducer() {
	brokers := app.Cf.KafkaBrokerList()
	if len(brokers) == 0 {
		log.Printf("kafka brokers not configured, order events disabled")
		return
	}

	log.Printf("Start setup order event producer")
	app.EventProducer = producer.NewOrderEventProducer(brokers, app.Cf.KafkaOrderTopic)
	log.Printf("Finish setup order event producer")
}

func (app *ApplicationContext) setUpAuthorizer() {
	log.Printf("Start setup payment authorizer")
	timeout := time.Duration(app.Cf.PaymentAuthTimeoutSeconds) * time.Second
	app.Authorizer = payment.NewTimeoutAuthorizer(payment.NewStubAuthorizer(0), timeout)
	log.Printf("Finish setup payment authorizer")
}

func (app *ApplicationContext) setUpServices() {
	log.Printf("Start setup services")
	cacheTTL := time.Duration(app.Cf.ProductCacheTTLSeconds) * time.Second

	app.CatalogService = service.NewCatalogService(app.Store, app.ProductCache, cacheTTL)
	app.CartService = service.NewCartService(app.Store, app.CatalogService, app.Cf.CartMaxLineQuantity)
	app.AddressService = service.NewAddressService(app.Store)
	app.PricingEngine = service.NewPricingEngine()
	app.OrderService = service.NewOrderService(
		app.Store,
		app.AddressService,
		app.CatalogService,
		app.PricingEngine,
		app.Authorizer,
		app.EventProducer,
		app.Logger,
	)
	log.Printf("Finish setup services")
}

func (app *ApplicationContext) Shutdown(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		log.Printf("Start application shutdown")

		if app.EventProducer != nil {
			if err := app.EventProducer.Close(); err != nil {
				log.Printf("event producer close error: %v", err)
			}
		}
		if app.RedisClient != nil {
			if err := app.RedisClient.Close(); err != nil {
				log.Printf("redis close error: %v", err)
			}
		}
		if app.DbConn != nil {
			if sqlDB, err := app.DbConn.DB(); err == nil {
				sqlDB.Close()
			}
		}

		log.Printf("Application shutdown complete")
		done <- nil
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return fmt.Errorf("shutdown timeout: %v", ctx.Err())
	}
}
