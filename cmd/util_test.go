package cmd

import (
	"context"
	"portfoliobias/internal/util"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInitializeStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory store also holds uploads", func(t *testing.T) {
		deps, err := InitializeStore(ctx, &util.Secrets{Store: util.StoreMemory})
		require.NoError(t, err)
		require.NotNil(t, deps.ObjectRepository)

		require.NoError(t, deps.UploadsRepository.Put(ctx, "uploads/abc-p.csv", []byte("x")))
		_, err = deps.ObjectRepository.Get(ctx, "uploads/abc-p.csv")
		require.NoError(t, err)
	})

	t.Run("s3 uploads bucket is separate", func(t *testing.T) {
		secrets := &util.Secrets{Store: util.StoreS3}
		secrets.Aws.Region = "us-east-1"
		secrets.Aws.ResultsBucket = "bias-results"
		secrets.Aws.UploadsBucket = "bias-uploads"

		deps, err := InitializeStore(ctx, secrets)
		require.NoError(t, err)
		require.NotNil(t, deps.S3Client)
		require.NotEqual(t, deps.ObjectRepository, deps.UploadsRepository)
	})

	t.Run("s3 without uploads bucket shares the results bucket", func(t *testing.T) {
		secrets := &util.Secrets{Store: util.StoreS3}
		secrets.Aws.Region = "us-east-1"
		secrets.Aws.ResultsBucket = "bias-results"

		deps, err := InitializeStore(ctx, secrets)
		require.NoError(t, err)
		require.Equal(t, deps.ObjectRepository, deps.UploadsRepository)
	})

	t.Run("s3 needs a results bucket", func(t *testing.T) {
		_, err := InitializeStore(ctx, &util.Secrets{Store: util.StoreS3})
		require.Error(t, err)
	})

	t.Run("unknown store", func(t *testing.T) {
		_, err := InitializeStore(ctx, &util.Secrets{Store: "disk"})
		require.Error(t, err)
	})
}
