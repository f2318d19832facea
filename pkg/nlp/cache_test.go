package nlp_test

import (
	"context"
	"sync"
	"testing"

	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/nlp"
)

func TestGuidelineCache(t *testing.T) {
	t.Run("it should load lazily and serve from cache afterwards", func(t *testing.T) {
		loads := 0
		cache := nlp.NewGuidelineCache(func(context.Context) (domain.Guidelines, error) {
			loads += 1
			return domain.Guidelines{Version: "2024.1"}, nil
		})

		for i := 0; i < 3; i++ {
			g, err := cache.Get(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			if g.Version != "2024.1" {
				t.Errorf("version: got %s", g.Version)
			}
		}

		if loads != 1 {
			t.Errorf("loader ran %d times, want 1", loads)
		}
	})

	t.Run("when invalidated, the next read should reload", func(t *testing.T) {
		versions := []string{"2024.1", "2024.2"}
		loads := 0
		cache := nlp.NewGuidelineCache(func(context.Context) (domain.Guidelines, error) {
			v := versions[loads]
			loads += 1
			return domain.Guidelines{Version: v}, nil
		})

		if g, _ := cache.Get(context.Background()); g.Version != "2024.1" {
			t.Errorf("version: got %s, want 2024.1", g.Version)
		}

		cache.Invalidate()

		if g, _ := cache.Get(context.Background()); g.Version != "2024.2" {
			t.Errorf("version: got %s, want 2024.2", g.Version)
		}
	})

	t.Run("when read concurrently, the loader should run at most once", func(t *testing.T) {
		mu := sync.Mutex{}
		loads := 0
		cache := nlp.NewGuidelineCache(func(context.Context) (domain.Guidelines, error) {
			mu.Lock()
			loads += 1
			mu.Unlock()
			return nlp.DefaultGuidelines(), nil
		})

		wg := sync.WaitGroup{}
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				g, err := cache.Get(context.Background())
				if err != nil {
					t.Error(err)
					return
				}
				if g.Empty() {
					t.Error("observed an empty guideline set")
				}
			}()
		}
		wg.Wait()

		if loads != 1 {
			t.Errorf("loader ran %d times, want 1", loads)
		}
	})
}
