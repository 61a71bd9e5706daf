// ABOUTME: Standalone server binary for the dyndns53 update endpoint.
// ABOUTME: Wires AWS clients, config, and logging; runs until SIGINT/SIGTERM.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"go.uber.org/zap"

	"github.com/mauromedda/dyndns53"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "initialising logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	dyndns53.SetLogger(logger)

	if err := run(logger.Sugar()); err != nil {
		logger.Sugar().Fatalf("dyndns53: %v", err)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg, err := dyndns53.LoadConfig()
	if err != nil {
		return err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		return fmt.Errorf("loading AWS configuration: %w", err)
	}

	store := dyndns53.NewRoute53Store(
		route53.NewFromConfig(awsCfg),
		dyndns53.WithChangeComment(cfg.ChangeComment),
	)
	creds := dyndns53.NewSecretsManagerSource(secretsmanager.NewFromConfig(awsCfg), cfg.SecretName)

	updater := dyndns53.NewUpdater(
		dyndns53.NewAuth(creds),
		dyndns53.NewZoneResolver(store),
		dyndns53.NewReconciler(store, dyndns53.WithRecordTTL(cfg.RecordTTL)),
	)

	api := dyndns53.NewAPIServer(updater, cfg.Listen, cfg.TLS())
	if err := api.Start(); err != nil {
		return err
	}
	log.Infof("listening on %s", api.Addr())

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Infof("shutting down")
	api.Stop()
	return nil
}
