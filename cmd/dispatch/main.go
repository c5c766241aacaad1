package main

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"portfoliobias/cmd"
	"portfoliobias/internal/logger"
	"portfoliobias/internal/repository"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3EventHandler struct {
	deps     *cmd.Dependencies
	s3Client *s3.Client
}

func (h s3EventHandler) Handler(ctx context.Context, event events.S3Event) error {
	if len(event.Records) == 0 {
		return fmt.Errorf("no records in s3 event")
	}
	lg := logger.FromContext(ctx)

	for _, record := range event.Records {
		key, err := url.QueryUnescape(record.S3.Object.Key)
		if err != nil {
			return fmt.Errorf("invalid object key %q: %w", record.S3.Object.Key, err)
		}
		bucket := record.S3.Bucket.Name
		ctx := logger.WithLogger(ctx, lg.With("bucket", bucket))

		pipeline := cmd.Pipeline{
			Uploads:    repository.NewS3ResultRepository(h.s3Client, bucket),
			Enricher:   h.deps.Enricher,
			Dispatcher: h.deps.ApiHandler.DispatcherHandler,
		}
		written, err := pipeline.HandleObject(ctx, key)
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to handle object", "key", key, "error", err.Error())
			return err
		}
		logger.FromContext(ctx).Infow("handled object", "key", key, "wrote", written)
	}
	return nil
}

func main() {
	ctx := context.Background()
	deps, err := cmd.InitializeDependencies(ctx)
	if err != nil {
		log.Fatal(err)
	}
	defer cmd.CloseDependencies(deps)

	client := deps.S3Client
	if client == nil {
		client, err = repository.NewS3Client(ctx, deps.Secrets.Aws.Region)
		if err != nil {
			log.Fatal(err)
		}
	}

	handler := s3EventHandler{deps: deps, s3Client: client}
	lambda.Start(handler.Handler)
}
