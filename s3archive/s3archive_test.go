package s3archive

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/date"
)

// fakeBucket serves objects from memory. When down is set every call fails.
type fakeBucket struct {
	objects map[string]string
	down    bool
}

func (f *fakeBucket) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	if f.down {
		return nil, errors.New("connection refused")
	}
	out := new(s3.ListObjectsV2Output)
	for key := range f.objects {
		if strings.HasPrefix(key, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(key)})
		}
	}
	return out, nil
}

func (f *fakeBucket) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	content, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(content))}, nil
}

func TestLoad(t *testing.T) {
	bucket := &fakeBucket{objects: map[string]string{
		"fundamentals/2023.jsonl":  `{ "on":"2023-12-31", "id":"US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear":3.9 }`,
		"fundamentals/2024.jsonl":  `{ "on":"2024-03-31", "id":"US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear":4.2 }`,
		"fundamentals/README.md":   `not an archive`,
		"other/2024.jsonl":         `{ "on":"2024-03-31", "id":"US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear":99 }`,
		"fundamentals/x/2022.json": `{}`,
	}}
	a := &Archive{client: bucket, bucket: "test"}

	store, err := a.Load(context.Background(), "fundamentals/")
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if got := store.Len(); got != 2 {
		t.Errorf("store.Len() = %d, want 2", got)
	}
	v, err := store.Get(context.Background(), date.New(2024, 6, 30), "US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear")
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if got := v.String(); got != "4.2" {
		t.Errorf("Get() = %s, want 4.2", got)
	}
}

func TestLoadUnavailable(t *testing.T) {
	a := &Archive{client: &fakeBucket{down: true}, bucket: "test"}
	if _, err := a.Load(context.Background(), "fundamentals/"); !errors.Is(err, fundamental.ErrStoreUnavailable) {
		t.Errorf("Load() error = %v, want ErrStoreUnavailable", err)
	}
}

func TestNormaliseEndpoint(t *testing.T) {
	testCases := []struct {
		endpoint string
		useSSL   bool
		want     string
	}{
		{"https://s3.example.com", false, "https://s3.example.com"},
		{"minio:9000", false, "http://minio:9000"},
		{"s3.example.com", true, "https://s3.example.com"},
	}
	for _, tc := range testCases {
		t.Run(tc.endpoint, func(t *testing.T) {
			if got := normaliseEndpoint(tc.endpoint, tc.useSSL); got != tc.want {
				t.Errorf("normaliseEndpoint(%q, %v) = %q, want %q", tc.endpoint, tc.useSSL, got, tc.want)
			}
		})
	}
}
