package main

import (
	"context"
	"fmt"
	"os"

	"github.com/poisebuild/poise-pms/internal/cli"
	"github.com/poisebuild/poise-pms/internal/config"
	"github.com/poisebuild/poise-pms/internal/db"
	"github.com/poisebuild/poise-pms/internal/excel"
	"github.com/poisebuild/poise-pms/internal/logger"
	"github.com/poisebuild/poise-pms/internal/pdf"
	"github.com/poisebuild/poise-pms/internal/repository"
	"github.com/poisebuild/poise-pms/internal/service"
	"github.com/poisebuild/poise-pms/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	database, err := db.New(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error connecting to database !")
		log.Error().Err(err).Msg("failed to connect database")
		os.Exit(1)
	}

	sess, err := session.Begin(database, log)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin session")
		os.Exit(1)
	}
	defer sess.Close()

	peopleRepo := repository.NewPersonRepository(sess)
	projectRepo := repository.NewProjectRepository(sess)
	projectService := service.NewProjectService(
		peopleRepo,
		projectRepo,
		excel.NewGenerator(),
		pdf.NewGenerator(cfg.Reports.CurrencySymbol),
	)

	console := cli.NewConsole(os.Stdin, os.Stdout)
	app := cli.New(console, sess, projectService, cfg, log)

	if err := app.Run(context.Background()); err != nil {
		log.Error().Err(err).Msg("session ended with error")
		os.Exit(1)
	}
}
