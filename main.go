package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	echoapi "github.com/ttgamma/gemportal/apps/api/echo"
	"github.com/ttgamma/gemportal/core"
	"github.com/ttgamma/gemportal/core/gem"
	emailsvc "github.com/ttgamma/gemportal/services/email"
	logsvc "github.com/ttgamma/gemportal/services/logger"
	"github.com/ttgamma/gemportal/storage/database"
	sqlxrepos "github.com/ttgamma/gemportal/storage/database/sqlx"
)

func main() {
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "GEMPORTAL : ", log.LstdFlags|log.Lshortfile), core.Conf)
	logger.Enable(!core.Conf.Debug)

	if err := run(logger); err != nil {
		logger.Fatal("server error", err)
	}
}

func run(logger core.Logger) error {
	// set up DB
	if err := database.CreateIfNotExist(core.Conf); err != nil {
		return errors.Wrap(err, "creating database")
	}
	db, err := database.Open(core.Conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	defer func() { _ = db.Close() }()
	if err = database.Migrate(db); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	sdb := sqlx.NewDb(db, core.Conf.Database.Engine)

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}
	gemSvc := gem.NewService(
		core.Conf.Gem,
		sqlxrepos.NewMemberRepository(sdb),
		sqlxrepos.NewCommitteeRepository(sdb),
		sqlxrepos.NewEventRepository(sdb),
		sqlxrepos.NewGradeRepository(sdb),
		mailSvc,
	)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(&echoapi.Options{
		Address:  fmt.Sprintf("%s:%d", core.Conf.Server.Host, core.Conf.Server.Port),
		Logger:   logger,
		GemSvc:   gemSvc,
		Shutdown: shutdown,
	})

	serverErrs := make(chan error, 1)
	go func() { serverErrs <- app.Start() }()

	select {
	case err = <-serverErrs:
		return errors.Wrap(err, "starting server")
	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: shutting down", sig))

		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		if err = app.Stop(ctx); err != nil {
			return errors.Wrap(err, "stopping server")
		}
	}
	return nil
}
