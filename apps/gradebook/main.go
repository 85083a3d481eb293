package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"

	echogradebook "github.com/trezcool/gradebook/apps/gradebook/echo"
	"github.com/trezcool/gradebook/apps/web"
	"github.com/trezcool/gradebook/core"
	logsvc "github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/database"
)

const defaultAddress = ":5001"

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.New(conf, "GRADEBOOK")
	dbLogger := logsvc.New(conf, "DB")
	database.SetLogger(dbLogger)

	// set up DB
	db, err := setUpDB(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	defer func() {
		if err = db.Close(); err != nil {
			dbLogger.Error("Failed to close", err)
		}
	}()

	validate, translator := core.NewValidator()

	// =========================================================================
	// Start Gradebook Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	address := conf.Server.Address
	if address == "" {
		address = defaultAddress
	}
	server, err := echogradebook.NewServer(address, echogradebook.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		DB:         db,
		Validate:   validate,
		Translator: translator,
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up server: %v", err), err)
	}

	web.Run(server, logger, conf.Server.ShutdownTimeout)
}

func setUpDB(conf *core.Config) (*sqlx.DB, error) {
	ctx := context.Background()
	if err := database.CreateIfNotExist(ctx, conf.Database); err != nil {
		return nil, err
	}

	db, err := database.Open(conf.Database)
	if err != nil {
		return nil, err
	}
	if err = database.Ping(ctx, db, 20); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = database.Migrate(ctx, db, conf.Database.Engine); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
