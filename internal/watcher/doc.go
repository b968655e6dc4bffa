// Package watcher reports changes to a fixed set of files.
//
// fsnotify watches the parent directory of every file, so editors that save
// by writing a temp file and renaming it over the original are still seen.
// When fsnotify is unavailable the watcher falls back to polling the files'
// size and modification time. Bursts of events are debounced into batches.
//
//	w, err := watcher.New([]string{"book.txt"}, watcher.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	go func() { _ = w.Start(ctx) }()
//	for batch := range w.Events() {
//	    // rerun the analysis
//	}
package watcher
