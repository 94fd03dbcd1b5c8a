package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"procurement/cmd"
	httpadapter "procurement/internal/adapters/in/http"
	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/adapters/out/postgres/productrepo"
	"procurement/internal/adapters/out/postgres/recurringrepo"
	"procurement/internal/adapters/out/postgres/stockrepo"
	"procurement/internal/adapters/out/postgres/supplierorderrepo"
	"procurement/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db := openDatabase(configs)
	migrateDatabase(db)

	app := cmd.NewCompositionRoot(configs, db, logger)

	if !configs.SchedulerDisabled {
		jobManager := jobs.NewJobManager(
			app.CreateRunRecurringOrdersCommandHandler(),
			configs.RecurringCronSpec,
			logger,
		)
		if err := jobManager.StartAll(); err != nil {
			log.Fatalf("Failed to start jobs: %v", err)
		}
		defer jobManager.StopAll()
	}

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:              goDotEnvVariable("HTTP_PORT"),
		DBHost:                goDotEnvVariable("DB_HOST"),
		DBPort:                goDotEnvVariable("DB_PORT"),
		DBUser:                goDotEnvVariable("DB_USER"),
		DBPassword:            goDotEnvVariable("DB_PASSWORD"),
		DBName:                goDotEnvVariable("DB_NAME"),
		DBSslMode:             goDotEnvVariable("DB_SSLMODE"),
		SchedulerDisabled:     os.Getenv("SCHEDULER_DISABLED") == "true",
		RecurringCronSpec:     "0 * * * * *",
		AlertThrottleInterval: time.Hour,
	}
	if spec := os.Getenv("RECURRING_CRON_SPEC"); spec != "" {
		config.RecurringCronSpec = spec
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	// TranslateError turns duplicate key violations into gorm.ErrDuplicatedKey,
	// which the supplier order repository relies on for number conflicts.
	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func migrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(
		&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{},
		&productrepo.ProductDTO{}, &productrepo.ProductSupplierDTO{},
		&recurringrepo.RecurringOrderDTO{}, &recurringrepo.RecurringOrderItemDTO{},
		&supplierorderrepo.SupplierOrderDTO{}, &supplierorderrepo.SupplierOrderLineDTO{},
		&stockrepo.ShopStockDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateChangeOrderStatusCommandHandler(),
		app.CreateAggregateOrdersCommandHandler(),
		app.CreateMaterializeSupplierOrdersCommandHandler(),
		app.CreateRunRecurringOrdersCommandHandler(),
		app.CreateGetOrdersByDeliveryDateQueryHandler(),
		app.CreateGetSupplierOrdersQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
