// ABOUTME: AWS Lambda binary for the dyndns53 update endpoint behind API Gateway v2.
// ABOUTME: Clients are built once per container; each event runs the same engine.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
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

	updater, err := buildUpdater(context.Background())
	if err != nil {
		logger.Sugar().Fatalf("dyndns53-lambda: %v", err)
	}

	lambda.Start(func(ctx context.Context, ev events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		resp := updater.Handle(ctx, dyndns53.RequestFromAPIGateway(ev))
		return resp.APIGatewayResponse(), nil
	})
}

func buildUpdater(ctx context.Context) (*dyndns53.Updater, error) {
	cfg, err := dyndns53.LoadConfig()
	if err != nil {
		return nil, err
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	store := dyndns53.NewRoute53Store(
		route53.NewFromConfig(awsCfg),
		dyndns53.WithChangeComment(cfg.ChangeComment),
	)
	creds := dyndns53.NewSecretsManagerSource(secretsmanager.NewFromConfig(awsCfg), cfg.SecretName)

	return dyndns53.NewUpdater(
		dyndns53.NewAuth(creds),
		dyndns53.NewZoneResolver(store),
		dyndns53.NewReconciler(store, dyndns53.WithRecordTTL(cfg.RecordTTL)),
	), nil
}
