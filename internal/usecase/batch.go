package usecase

import (
	"context"
	"runtime"
	"sync"

	"bookcheck/internal/domain"
	"bookcheck/internal/port"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each file finishes with the number of files
// done so far and the batch size.
type ProgressFunc func(done, total int)

// runBatch applies fn to every file on up to workers goroutines. Results keep
// the order of files regardless of completion order. Only context
// cancellation stops the batch early.
func runBatch[T any](ctx context.Context, files []port.FileInfo, workers int, progress ProgressFunc, fn func(port.FileInfo) T) ([]T, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]T, len(files))

	var (
		mu   sync.Mutex
		done int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = fn(file)

			if progress != nil {
				mu.Lock()
				done++
				progress(done, len(files))
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// readDocument loads one file's text. The document is never modified after.
func readDocument(reader port.TextReader, file port.FileInfo) (domain.Document, error) {
	text, err := reader.ReadText(file.Path)
	if err != nil {
		return domain.Document{}, err
	}
	return domain.Document{Path: file.Path, Text: text}, nil
}
