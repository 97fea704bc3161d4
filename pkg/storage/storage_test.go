package storage

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// storeContract exercises the behavior every backend must share.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("AbsentKey", func(t *testing.T) {
		data, err := s.Get(ctx, "never-written")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if data != nil {
			t.Errorf("absent key should return nil, got %q", data)
		}
	})

	t.Run("RoundTrip", func(t *testing.T) {
		if err := s.Set(ctx, "k", []byte(`{"a":1}`)); err != nil {
			t.Fatalf("set: %v", err)
		}
		data, err := s.Get(ctx, "k")
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if string(data) != `{"a":1}` {
			t.Errorf("expected round-trip value, got %q", data)
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		if err := s.Set(ctx, "k", []byte("v1")); err != nil {
			t.Fatalf("set: %v", err)
		}
		if err := s.Set(ctx, "k", []byte("v2")); err != nil {
			t.Fatalf("set: %v", err)
		}
		data, _ := s.Get(ctx, "k")
		if string(data) != "v2" {
			t.Errorf("last writer should win, got %q", data)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	storeContract(t, s)
}

func TestMemoryStoreClosed(t *testing.T) {
	s := NewMemoryStore()
	s.Close()

	if err := s.Set(context.Background(), "k", nil); err == nil {
		t.Error("expected error on closed store")
	}
	if _, err := s.Get(context.Background(), "k"); err == nil {
		t.Error("expected error on closed store")
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	ctx := context.Background()

	in := []byte("abc")
	s.Set(ctx, "k", in)
	in[0] = 'z'

	out, _ := s.Get(ctx, "k")
	if string(out) != "abc" {
		t.Errorf("stored value should not alias caller's slice, got %q", out)
	}

	out[0] = 'z'
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("returned value should not alias stored slice, got %q", again)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()

	storeContract(t, s)
}

func TestSQLiteStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("durable")); err != nil {
		t.Fatalf("set: %v", err)
	}
	s.Close()

	reopened, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen sqlite: %v", err)
	}
	defer reopened.Close()

	data, err := reopened.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "durable" {
		t.Errorf("expected value to survive reopen, got %q", data)
	}
}

// fakeS3 implements s3API over a map.
type fakeS3 struct {
	objects map[string][]byte
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*params.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store(t *testing.T) {
	fake := &fakeS3{objects: make(map[string][]byte)}
	s := &S3Store{client: fake, bucket: "b", prefix: "prefs/"}
	defer s.Close()

	storeContract(t, s)

	// Keys are namespaced under the prefix.
	if _, ok := fake.objects["prefs/k"]; !ok {
		t.Error("expected object stored under prefix")
	}
}
