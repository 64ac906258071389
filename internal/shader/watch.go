package shader

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"scene-walker/internal/logger"
)

// Watch reports the names of programs whose override files change in dir. The returned
// channel is closed when ctx is done. Names are dropped, not queued, while the reader is
// behind; one pending notice per frame is enough to trigger a reload.
func Watch(ctx context.Context, dir string, log *logger.Logger) (<-chan string, error) {
	if log == nil {
		log = logger.Nop()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader: watcher: %w", err)
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("shader: watch %s: %w", dir, err)
	}

	out := make(chan string, 8)
	go func() {
		defer close(out)
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
					continue
				}
				name := ProgramName(ev.Name)
				if name == "" {
					continue
				}
				select {
				case out <- name:
				default:
					log.Debug("shader reload notice dropped", zap.String("program", name))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Warn("shader watcher", zap.Error(err))
			}
		}
	}()
	return out, nil
}

// Drain collects the distinct names waiting on ch without blocking.
func Drain(ch <-chan string) []string {
	var names []string
	seen := map[string]bool{}
	for {
		select {
		case name, ok := <-ch:
			if !ok {
				return names
			}
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		default:
			return names
		}
	}
}
