package capability_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pronas-suite/aicore/pkg/capability"
	"github.com/pronas-suite/aicore/pkg/utils/cmp"
	"github.com/pronas-suite/aicore/pkg/utils/try"
)

func TestClient(t *testing.T) {

	t.Run("when the model-server answers, it should decode each capability response", func(t *testing.T) {
		requested := map[string]map[string]any{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			payload := map[string]any{}
			if r.Body != nil {
				json.NewDecoder(r.Body).Decode(&payload)
			}
			requested[r.URL.Path] = payload

			w.Header().Set("Content-Type", "application/json")
			switch r.URL.Path {
			case "/embed":
				json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.1, 0.2, 0.3}})
			case "/sentiment":
				json.NewEncoder(w).Encode(map[string]any{"label": "4 stars", "score": 0.8})
			case "/entities":
				json.NewEncoder(w).Encode(map[string]any{"entities": []map[string]any{
					{"text": "São Paulo", "label": "LOC", "start": 10, "end": 19},
				}})
			case "/extract-text":
				json.NewEncoder(w).Encode(map[string]any{"text": "conteúdo"})
			case "/extract-tables":
				json.NewEncoder(w).Encode(map[string]any{"tables": []map[string]any{
					{"name": "orçamento", "rows": [][]string{{"a", "b"}}},
				}})
			case "/ready":
				w.WriteHeader(http.StatusOK)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		ctx := context.Background()
		testee := capability.NewClient(server.URL, nil)

		embedding := try.To(testee.Embed(ctx, "texto")).OrFatal(t)
		if !cmp.SliceEq(embedding, []float32{0.1, 0.2, 0.3}) {
			t.Errorf("unexpected embedding: %v", embedding)
		}
		if requested["/embed"]["text"] != "texto" {
			t.Errorf("unexpected /embed payload: %v", requested["/embed"])
		}

		sentiment := try.To(testee.Classify(ctx, "bom texto")).OrFatal(t)
		if sentiment.Label != "4 stars" || sentiment.Score != 0.8 {
			t.Errorf("unexpected sentiment: %+v", sentiment)
		}
		if sentiment.Negative() {
			t.Error("4 stars should not be negative")
		}

		entities := try.To(testee.Tag(ctx, "projeto em São Paulo")).OrFatal(t)
		if len(entities) != 1 || entities[0].Label != "LOC" || entities[0].Start != 10 {
			t.Errorf("unexpected entities: %+v", entities)
		}

		text := try.To(testee.ExtractText(ctx, "doc-1")).OrFatal(t)
		if text != "conteúdo" {
			t.Errorf("unexpected text: %s", text)
		}

		tables := try.To(testee.ExtractTables(ctx, "doc-1")).OrFatal(t)
		if len(tables) != 1 || tables[0].Name != "orçamento" {
			t.Errorf("unexpected tables: %+v", tables)
		}

		if err := testee.Ready(ctx); err != nil {
			t.Errorf("unexpected readiness error: %+v", err)
		}
	})

	t.Run("when the model-server responds 503, it should wrap ErrNotReady", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]any{
				"message": map[string]any{"reason": "models are loading"},
			})
		}))
		defer server.Close()

		ctx := context.Background()
		testee := capability.NewClient(server.URL, nil)

		if err := testee.Ready(ctx); !errors.Is(err, capability.ErrNotReady) {
			t.Errorf("unexpected error: %+v", err)
		}
		if _, err := testee.Embed(ctx, "texto"); !errors.Is(err, capability.ErrNotReady) {
			t.Errorf("unexpected error: %+v", err)
		}
	})

	t.Run("when the model-server responds another error, it should not be ErrNotReady", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		ctx := context.Background()
		testee := capability.NewClient(server.URL, nil)

		_, err := testee.Embed(ctx, "texto")
		if err == nil {
			t.Fatal("no error is returned")
		}
		if errors.Is(err, capability.ErrNotReady) {
			t.Errorf("unexpected ErrNotReady: %+v", err)
		}
	})
}
