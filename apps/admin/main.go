package main

import (
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/spms/core"
	logsvc "github.com/trezcool/spms/services/logger"
	"github.com/trezcool/spms/storage/recordstore"
)

func main() {
	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug)

	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	store, err := recordstore.NewClient(conf, logger, validate)
	if err != nil {
		logger.Fatal("setting up record store client", err)
	}

	cli := newCommandLine(store, conf.Table.PageSize)
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error("admin command failed", err)
		}
		os.Exit(1)
	}
}
