package cli

import (
	"fmt"
	"io"
	"sync"

	"bookcheck/internal/usecase"
	"github.com/schollz/progressbar/v3"
)

// newProgress returns a callback drawing a progress bar on w, or nil when
// progress is disabled. The bar is created on the first call, once the batch
// size is known.
func newProgress(w io.Writer, enabled bool, description string) usecase.ProgressFunc {
	if !enabled {
		return nil
	}

	var (
		bar *progressbar.ProgressBar
		mu  sync.Mutex
	)

	return func(done, total int) {
		mu.Lock()
		defer mu.Unlock()

		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(w),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowBytes(false),
				progressbar.OptionSetWidth(40),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan]"+description+"[reset]"),
				progressbar.OptionSetTheme(progressbar.Theme{
					Saucer:        "[green]=[reset]",
					SaucerHead:    "[green]>[reset]",
					SaucerPadding: " ",
					BarStart:      "[",
					BarEnd:        "]",
				}),
				progressbar.OptionOnCompletion(func() {
					fmt.Fprintln(w)
				}),
			)
		}
		_ = bar.Set(done)
	}
}
