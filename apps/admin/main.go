package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/gradebook/core"
	logsvc "github.com/trezcool/gradebook/services/logger"
	"github.com/trezcool/gradebook/storage/database"
	sqlxrepos "github.com/trezcool/gradebook/storage/database/sqlx"
)

func main() {
	conf, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.New(conf, "ADMIN")
	database.SetLogger(logger)

	// set up DB (connections are opened lazily: `createdb` runs before the database exists)
	db, err := database.Open(conf.Database)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}

	validate, _ := core.NewValidator()

	// start CLI
	cli := commandLine{
		dbConf:   conf.Database,
		db:       db,
		repo:     sqlxrepos.NewGradebookRepository(db),
		validate: validate,
	}
	err = cli.run(os.Args)
	_ = db.Close()
	if err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("error: %s", err), err)
		}
		os.Exit(1)
	}
}
