package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/forgekit/cli/internal/output"
	"github.com/forgekit/cli/internal/workspace"
)

// watchDebounce coalesces bursts of filesystem events into one rebuild.
const watchDebounce = 300 * time.Millisecond

// Watch re-runs rebuild whenever workspace sources change. It watches the
// proto directory, the package directories, and the workspace manifest;
// build outputs (gen, dist, the generated config) are ignored to avoid
// rebuild loops. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, ws *workspace.Workspace, rebuild func(context.Context) error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchDirs(watcher, ws); err != nil {
		return err
	}

	ignored := []string{ws.GenDir(), ws.DistDir(), ws.SecretPath()}

	output.Info("watching for changes", "workspace", ws.Name)

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if isIgnoredPath(event.Name, ignored) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			// New directories join the watch set.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}

			output.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			output.Warn("watch error", "error", err)

		case <-timerC:
			timer = nil
			timerC = nil

			if err := rebuild(ctx); err != nil {
				// Keep watching; a broken source tree is the normal
				// state mid-edit.
				output.Error("rebuild failed", "error", err)
			}
		}
	}
}

// addWatchDirs registers the workspace source directories recursively.
func addWatchDirs(watcher *fsnotify.Watcher, ws *workspace.Workspace) error {
	if err := watcher.Add(ws.Root); err != nil {
		return fmt.Errorf("watching %s: %w", ws.Root, err)
	}

	dirs := []string{ws.ProtoDir()}
	for _, pkg := range ws.Packages {
		dirs = append(dirs, ws.PackageDir(pkg))
	}

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				return nil
			}
			return watcher.Add(path)
		})
		if err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	return nil
}

// isIgnoredPath reports whether path is one of, or inside, the ignored roots.
func isIgnoredPath(path string, ignored []string) bool {
	for _, root := range ignored {
		if path == root || strings.HasPrefix(path, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
