package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchCmd re-checks documents whenever they change on disk. Events are
// debounced because editors fire several writes per save.
func watchCmd(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var verbose bool
	fs.BoolVar(&verbose, "v", false, "debug logging")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	log := newLogger(verbose)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatal().Err(err).Msg("watcher init")
	}
	defer watcher.Close()

	watched := map[string]bool{}
	for _, f := range fs.Args() {
		abs, err := filepath.Abs(f)
		if err != nil {
			log.Fatal().Err(err).Str("file", f).Msg("absolute path")
		}
		watched[abs] = true
		// Watch the directory: many editors replace the file on save, which
		// drops a direct file watch.
		if err := watcher.Add(filepath.Dir(abs)); err != nil {
			log.Fatal().Err(err).Str("file", f).Msg("watch")
		}
		runCheck(log, abs)
	}

	var timer *time.Timer
	pending := map[string]bool{}
	fire := make(chan struct{}, 1)
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !watched[ev.Name] {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending[ev.Name] = true
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(200*time.Millisecond, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			for f := range pending {
				runCheck(log, f)
				delete(pending, f)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("watch error")
		}
	}
}

func runCheck(log zerolog.Logger, file string) {
	res, err := parseFile(context.Background(), file)
	if err != nil {
		log.Error().Err(err).Str("file", file).Msg("read failed")
		return
	}
	for _, d := range res.Errors {
		log.Error().Str("file", file).Int("line", d.Line).Str("kind", d.Kind).Msg(d.Message)
	}
	for _, d := range res.Warnings {
		log.Warn().Str("file", file).Int("line", d.Line).Str("kind", d.Kind).Msg(d.Message)
	}
	log.Info().
		Str("file", file).
		Int("schemas", len(res.Schemas)).
		Int("errors", len(res.Errors)).
		Int("warnings", len(res.Warnings)).
		Msg("checked")
}
