package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

const defaultDebounce = 250 * time.Millisecond

// Watch calls onChange whenever another process creates, rewrites or removes
// the token file. Bursts of events inside the debounce window collapse into a
// single call. Watch blocks until ctx is cancelled.
//
// The parent directory is watched instead of the file because Save replaces
// the file by rename, which drops watches held on the old inode.
func (s *TokenStore) Watch(ctx context.Context, debounce time.Duration, log zerolog.Logger, onChange func(context.Context)) error {
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	log.Debug().Str("path", s.path).Dur("debounce", debounce).Msg("watching token file")

	name := filepath.Base(s.path)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(debounce)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Str("path", s.path).Msg("token file watcher error")

		case <-timer.C:
			onChange(ctx)
		}
	}
}
