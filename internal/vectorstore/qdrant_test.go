package vectorstore

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestGrpcAddress(t *testing.T) {
	tests := []struct {
		name     string
		urlStr   string
		wantErr  bool
		wantHost string
		wantPort int
	}{
		{
			name:     "default http port",
			urlStr:   "http://localhost:6333",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "custom port",
			urlStr:   "http://qdrant:9000",
			wantHost: "qdrant",
			wantPort: 9001,
		},
		{
			name:     "no port",
			urlStr:   "http://localhost",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:     "no hostname",
			urlStr:   "http://:6333",
			wantHost: "localhost",
			wantPort: 6334,
		},
		{
			name:    "invalid URL",
			urlStr:  "://invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, port, err := grpcAddress(tt.urlStr)
			if tt.wantErr {
				if err == nil {
					t.Error("grpcAddress() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("grpcAddress() unexpected error: %v", err)
			}
			if host != tt.wantHost || port != tt.wantPort {
				t.Errorf("grpcAddress() = %s:%d, want %s:%d", host, port, tt.wantHost, tt.wantPort)
			}
		})
	}
}

func TestNewQdrantStore_InvalidURL(t *testing.T) {
	_, err := NewQdrantStore("://invalid")
	if err == nil {
		t.Error("NewQdrantStore() with invalid URL should return error")
	}
}

func TestBuildFilter(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f, err := buildFilter(nil)
		if err != nil || f != nil {
			t.Errorf("buildFilter(nil) = %v, %v; want nil, nil", f, err)
		}
	})

	t.Run("mixed types in key order", func(t *testing.T) {
		f, err := buildFilter(Filter{
			"corpus_id": int64(3),
			"file_name": "a.md",
			"active":    true,
		})
		if err != nil {
			t.Fatalf("buildFilter() unexpected error: %v", err)
		}

		var keys []string
		for _, c := range f.Must {
			keys = append(keys, c.GetField().GetKey())
		}
		if want := []string{"active", "corpus_id", "file_name"}; !reflect.DeepEqual(keys, want) {
			t.Errorf("condition keys = %v, want %v", keys, want)
		}

		if got := f.Must[0].GetField().GetMatch().GetBoolean(); !got {
			t.Error("active condition should match true")
		}
		if got := f.Must[1].GetField().GetMatch().GetInteger(); got != 3 {
			t.Errorf("corpus_id match = %d, want 3", got)
		}
		if got := f.Must[2].GetField().GetMatch().GetKeyword(); got != "a.md" {
			t.Errorf("file_name match = %q, want a.md", got)
		}
	})

	t.Run("int is widened", func(t *testing.T) {
		f, err := buildFilter(Filter{"corpus_id": 7})
		if err != nil {
			t.Fatalf("buildFilter() unexpected error: %v", err)
		}
		if got := f.Must[0].GetField().GetMatch().GetInteger(); got != 7 {
			t.Errorf("corpus_id match = %d, want 7", got)
		}
	})

	t.Run("unsupported type", func(t *testing.T) {
		if _, err := buildFilter(Filter{"score": 0.5}); err == nil {
			t.Error("buildFilter() with float value should return error")
		}
	})
}

func TestQdrantStore_Upsert_EmptyPoints(t *testing.T) {
	store := &QdrantStore{}

	// returns before touching the client
	if err := store.Upsert(context.Background(), "test-collection", []Point{}); err != nil {
		t.Errorf("Upsert() with empty points should return early without error, got: %v", err)
	}
}

func TestQdrantStore_Delete_EmptyIDs(t *testing.T) {
	store := &QdrantStore{}

	if err := store.Delete(context.Background(), "test-collection", nil); err != nil {
		t.Errorf("Delete() with empty IDs should return early without error, got: %v", err)
	}
}

func TestQdrantStore_DeleteByFilter_Empty(t *testing.T) {
	store := &QdrantStore{}

	err := store.DeleteByFilter(context.Background(), "test-collection", Filter{})
	if !errors.Is(err, ErrEmptyFilter) {
		t.Errorf("DeleteByFilter() error = %v, want ErrEmptyFilter", err)
	}
}

func TestQdrantStore_Search_Validation(t *testing.T) {
	store := &QdrantStore{}
	ctx := context.Background()

	if _, err := store.Search(ctx, "test-collection", []float32{1.0, 2.0}, 0, nil); err == nil {
		t.Error("Search() with k=0 should return error")
	}
	if _, err := store.Search(ctx, "test-collection", []float32{1.0, 2.0}, -1, nil); err == nil {
		t.Error("Search() with k=-1 should return error")
	}
	if _, err := store.Search(ctx, "test-collection", []float32{1.0}, 3, Filter{"x": []int{1}}); err == nil {
		t.Error("Search() with unsupported filter should return error")
	}
}

func TestConvertPayloadToMap(t *testing.T) {
	result := convertPayloadToMap(nil)
	if result == nil || len(result) != 0 {
		t.Errorf("convertPayloadToMap(nil) = %v, want empty map", result)
	}

	payload := qdrant.NewValueMap(map[string]any{
		"corpus_id":   int64(2),
		"file_name":   "doc.md",
		"chunk_index": int64(4),
	})
	got := convertPayloadToMap(payload)
	want := map[string]any{
		"corpus_id":   int64(2),
		"file_name":   "doc.md",
		"chunk_index": int64(4),
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("convertPayloadToMap() = %v, want %v", got, want)
	}
}
