package filewatch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pronas-suite/aicore/pkg/utils/filewatch"
)

func TestOnModify(t *testing.T) {
	t.Run("when a watched file is written, it invokes callback", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "version")
		if err := os.WriteFile(target, []byte("1"), 0o644); err != nil {
			t.Fatal(err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		modified := make(chan string, 1)
		stop, err := filewatch.OnModify(
			ctx,
			func(path string) {
				select {
				case modified <- path:
				default:
				}
			},
			target,
		)
		if err != nil {
			t.Fatal(err)
		}
		defer stop()

		if err := os.WriteFile(target, []byte("2"), 0o644); err != nil {
			t.Fatal(err)
		}

		select {
		case <-modified:
			// ok
		case <-time.After(3 * time.Second):
			t.Error("callback is not invoked")
		}
	})

	t.Run("when a target file does not exist, it returns error", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		_, err := filewatch.OnModify(ctx, func(string) {}, "/no/such/file")
		if err == nil {
			t.Error("error is expected, but not returned")
		}
	})
}
