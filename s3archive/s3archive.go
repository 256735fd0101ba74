// Package s3archive loads archives of fundamental observations, stored as
// yearly JSONL files in an S3 compatible bucket, into a memory store.
//
// The objects use the layout of package jsonl:
//
//	<prefix>/2023.jsonl
//	<prefix>/2024.jsonl
package s3archive

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/jsonl"
)

// ClientConfig holds the configuration for connecting to an S3 compatible
// object store.
type ClientConfig struct {
	// Endpoint is the S3 compatible endpoint URL. Leave empty for AWS S3.
	Endpoint       string
	Region         string
	Bucket         string
	AccessKey      string
	SecretKey      string
	UseSSL         bool // scheme used when Endpoint has none
	ForcePathStyle bool
}

// objectAPI is the subset of the S3 client used by the archive.
type objectAPI interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Archive reads observation archives from a bucket.
type Archive struct {
	client objectAPI
	bucket string
}

// New creates a new Archive from the given configuration.
func New(ctx context.Context, cfg ClientConfig) (*Archive, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3archive: bucket name is required")
	}
	if cfg.Region == "" {
		return nil, fmt.Errorf("s3archive: region is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		opts = append(opts, config.WithCredentialsProvider(creds))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3archive: load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		endpoint := normaliseEndpoint(cfg.Endpoint, cfg.UseSSL)
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	if cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return &Archive{client: s3.NewFromConfig(awsCfg, s3Opts...), bucket: cfg.Bucket}, nil
}

// Keys returns the keys of the yearly files under prefix, in lexicographic
// order.
func (a *Archive) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	paginator := s3.NewListObjectsV2Paginator(a.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(a.bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("s3archive: %w: list prefix %s: %w", fundamental.ErrStoreUnavailable, prefix, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if isYearFile(key) {
				keys = append(keys, key)
			}
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Load reads all the yearly files under prefix into a new memory store.
func (a *Archive) Load(ctx context.Context, prefix string) (*fundamental.MemoryStore, error) {
	keys, err := a.Keys(ctx, prefix)
	if err != nil {
		return nil, err
	}
	store := fundamental.NewMemoryStore()
	for _, key := range keys {
		if err := a.loadObject(ctx, store, key); err != nil {
			return nil, err
		}
	}
	slog.Info("load-archive", "bucket", a.bucket, "prefix", prefix, "files", len(keys), "observations", store.Len())
	return store, nil
}

func (a *Archive) loadObject(ctx context.Context, store *fundamental.MemoryStore, key string) error {
	out, err := a.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(a.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3archive: %w: get %s: %w", fundamental.ErrStoreUnavailable, key, err)
	}
	defer out.Body.Close()
	return jsonl.Decode(store, "s3://"+a.bucket+"/"+key, out.Body)
}

// isYearFile reports whether key names a yearly file such as "x/2024.jsonl".
func isYearFile(key string) bool {
	ok, _ := path.Match("[0-9][0-9][0-9][0-9].jsonl", path.Base(key))
	return ok
}

// normaliseEndpoint ensures the endpoint has a scheme.
func normaliseEndpoint(endpoint string, useSSL bool) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	scheme := "http"
	if useSSL {
		scheme = "https"
	}
	return scheme + "://" + strings.TrimPrefix(endpoint, "//")
}
