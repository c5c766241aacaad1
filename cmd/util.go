package cmd

import (
	"context"
	"fmt"
	"portfoliobias/api"
	"portfoliobias/internal/app"
	"portfoliobias/internal/ingest"
	"portfoliobias/internal/repository"
	l2_service "portfoliobias/internal/service/l2"
	"portfoliobias/internal/util"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// enrichPause spaces out quote lookups during enrichment.
const enrichPause = 5 * time.Second

type Dependencies struct {
	Secrets          *util.Secrets
	ObjectRepository repository.ObjectRepository
	// UploadsRepository holds csv uploads and the csv-uploads/ and processed/
	// documents. It is the uploads bucket when one is configured for the s3
	// store, the results store otherwise.
	UploadsRepository repository.ObjectRepository
	// S3Client is nil unless the s3 store is configured.
	S3Client   *s3.Client
	ApiHandler *api.ApiHandler
	Enricher   ingest.Enricher

	closers []func() error
}

func CloseDependencies(deps *Dependencies) error {
	for _, c := range deps.closers {
		if err := c(); err != nil {
			return err
		}
	}
	return nil
}

func NewEnricher() ingest.Enricher {
	return ingest.Enricher{
		EnrichmentRepository: repository.NewYahooEnrichmentRepository(util.DefaultRetryPolicy),
		Clock:                util.SystemClock,
		Pause:                enrichPause,
	}
}

// InitializeStore picks the results and uploads stores from secrets. It is
// enough for ingest and enrich, which never call the commentary service.
func InitializeStore(ctx context.Context, secrets *util.Secrets) (*Dependencies, error) {
	deps := &Dependencies{
		Secrets:  secrets,
		Enricher: NewEnricher(),
	}

	switch secrets.Store {
	case util.StoreS3:
		if secrets.Aws.ResultsBucket == "" {
			return nil, fmt.Errorf("results bucket is required for the s3 store")
		}
		client, err := repository.NewS3Client(ctx, secrets.Aws.Region)
		if err != nil {
			return nil, err
		}
		deps.S3Client = client
		deps.ObjectRepository = repository.NewS3ResultRepository(client, secrets.Aws.ResultsBucket)
		if secrets.Aws.UploadsBucket != "" {
			deps.UploadsRepository = repository.NewS3ResultRepository(client, secrets.Aws.UploadsBucket)
		}
	case util.StorePostgres:
		dbConn, err := repository.NewPostgresDb(secrets.Db.ToConnectionStr())
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, dbConn.Close)
		deps.ObjectRepository, err = repository.NewPostgresResultRepository(ctx, dbConn)
		if err != nil {
			dbConn.Close()
			return nil, err
		}
	case util.StoreMemory:
		deps.ObjectRepository = repository.NewMemoryObjectRepository()
	default:
		return nil, fmt.Errorf("unknown store %q", secrets.Store)
	}
	if deps.UploadsRepository == nil {
		deps.UploadsRepository = deps.ObjectRepository
	}

	return deps, nil
}

func InitializeDependencies(ctx context.Context) (*Dependencies, error) {
	secrets, err := util.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	deps, err := InitializeStore(ctx, secrets)
	if err != nil {
		return nil, err
	}

	gptClient, err := repository.NewGptClient(secrets.ChatGPTApiKey)
	if err != nil {
		CloseDependencies(deps)
		return nil, err
	}
	commentaryRepository := repository.NewGptCommentaryRepository(gptClient, util.DefaultRetryPolicy)

	biasService := l2_service.NewBiasService(
		deps.ObjectRepository,
		commentaryRepository,
		secrets.LoadBenchmarks(),
		util.SystemClock,
		util.DefaultRetryPolicy,
	)
	combinerService := l2_service.NewCombinerService(deps.ObjectRepository, util.DefaultRetryPolicy)

	deps.ApiHandler = &api.ApiHandler{
		DispatcherHandler: app.DispatcherHandler{
			BiasService:     biasService,
			CombinerService: combinerService,
		},
		BiasService:     biasService,
		CombinerService: combinerService,
		LatencyTrackingRepository: repository.NewLatencyTrackingRepository(
			deps.ObjectRepository,
			util.SystemClock,
		),
		Close: func() error {
			return CloseDependencies(deps)
		},
	}

	return deps, nil
}
