package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"portfoliobias/internal/domain"
	"portfoliobias/internal/util"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestMemoryObjectRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryObjectRepository()

	require.NoError(t, repo.Put(ctx, "results/abc/sector_results.json", []byte(`{"a":1}`)))
	require.NoError(t, repo.Put(ctx, "results/abc/size_results.json", []byte(`{"b":2}`)))
	require.NoError(t, repo.Put(ctx, "results/abd/size_results.json", []byte(`{}`)))

	body, err := repo.Get(ctx, "results/abc/sector_results.json")
	require.NoError(t, err)
	require.Equal(t, `{"a":1}`, string(body))

	keys, err := repo.List(ctx, "results/abc/")
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]string{
		"results/abc/sector_results.json",
		"results/abc/size_results.json",
	}, keys))

	_, err = repo.Get(ctx, "results/abc/momentum_results.json")
	require.ErrorIs(t, err, domain.ErrResultNotFound)
}

type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(params.Key)] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	body, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(body))}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	out := &s3.ListObjectsV2Output{}
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(params.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
		}
	}
	return out, nil
}

func TestS3Repository(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{objects: map[string][]byte{}}
	repo := NewS3ResultRepository(client, "bias-results")

	require.NoError(t, repo.Put(ctx, "results/p1/volatility_results.json", []byte(`{"weighted_beta":1}`)))
	require.NoError(t, repo.Put(ctx, "results/p1/location_results.json", []byte(`{}`)))

	body, err := repo.Get(ctx, "results/p1/volatility_results.json")
	require.NoError(t, err)
	require.Equal(t, `{"weighted_beta":1}`, string(body))

	keys, err := repo.List(ctx, "results/p1/")
	require.NoError(t, err)
	require.Equal(t, "", cmp.Diff([]string{
		"results/p1/location_results.json",
		"results/p1/volatility_results.json",
	}, keys))

	_, err = repo.Get(ctx, "results/p1/size_results.json")
	require.True(t, errors.Is(err, domain.ErrResultNotFound))
}

func TestLatencyTrackingRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryObjectRepository()
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	repo := NewLatencyTrackingRepository(store, util.FixedClock(now))

	profile, endProfile := domain.NewProfile()
	_, endSpan := profile.StartSpan("sector analysis")
	endSpan()
	endProfile()

	key, err := repo.Add(ctx, "p1", profile, "req-1")
	require.NoError(t, err)
	require.Equal(t, LatencyTrackingKey("p1", now), key)

	body, err := store.Get(ctx, key)
	require.NoError(t, err)
	record := LatencyTrackingRecord{}
	require.NoError(t, json.Unmarshal(body, &record))
	require.Equal(t, "p1", record.PortfolioID)
	require.Equal(t, "req-1", record.RequestID)
	require.NotNil(t, record.TotalMs)

	spans := []domain.Span{}
	require.NoError(t, json.Unmarshal(record.ProcessingTimes, &spans))
	require.Len(t, spans, 1)
	require.Equal(t, "sector analysis", spans[0].Name)
}
