package main

import (
	"fmt"
	"log"

	"github.com/pkg/errors"

	echointake "github.com/trezcool/gradebook/apps/intake/echo"
	"github.com/trezcool/gradebook/apps/web"
	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/intake"
	logsvc "github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/files"
)

const defaultAddress = ":5000"

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.New(conf, "INTAKE")

	store, err := newStore(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up storage: %v", err), err)
	}
	intakeSvc := intake.NewService(store)

	validate, translator := core.NewValidator()
	intake.RegisterValidators(validate, translator)

	// =========================================================================
	// Start Intake Service

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	address := conf.Server.Address
	if address == "" {
		address = defaultAddress
	}
	server, err := echointake.NewServer(address, echointake.ServerDeps{
		Conf:       conf,
		Logger:     logger,
		IntakeSvc:  intakeSvc,
		Validate:   validate,
		Translator: translator,
	})
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up server: %v", err), err)
	}

	web.Run(server, logger, conf.Server.ShutdownTimeout)
}

func newStore(conf *core.Config) (intake.Store, error) {
	switch conf.Intake.Storage {
	case core.StorageLocal:
		return files.NewLocalStore(conf.Intake.Dir)
	case core.StorageS3:
		return files.NewS3Store(conf.S3)
	}
	return nil, errors.Errorf("unsupported submission storage %q", conf.Intake.Storage)
}
