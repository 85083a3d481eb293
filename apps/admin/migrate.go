package main

import (
	"context"

	"github.com/trezcool/gradebook/storage/database"
)

var (
	migrateFunc  = database.RunMigrations    // mockable
	createDBFunc = database.CreateIfNotExist // mockable
)

func (cli *commandLine) migrate(args []string) error {
	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateFunc(context.Background(), cli.db, cli.dbConf.Engine, args[0], arguments...)
}

func (cli *commandLine) createDB() error {
	return createDBFunc(context.Background(), cli.dbConf)
}
