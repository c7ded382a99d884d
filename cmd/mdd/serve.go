package main

import (
	"flag"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	mdd "github.com/mdd-lang/go-mdd"
	"github.com/mdd-lang/go-mdd/codec"
	"github.com/mdd-lang/go-mdd/loader"
)

// serveCmd runs a local parse endpoint, the successor of the project's old
// dev test server: POST a document to /parse and get the structured result.
func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	var addr, root string
	var verbose bool
	fs.StringVar(&addr, "addr", ":8000", "listen address")
	fs.StringVar(&root, "root", ".", "directory external schema references resolve against")
	fs.BoolVar(&verbose, "v", false, "debug logging")
	_ = fs.Parse(args)

	log := newLogger(verbose)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Post("/parse", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		body, err := io.ReadAll(io.LimitReader(req.Body, 4<<20))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		// The loader and cache are single-use: neither is safe for
		// concurrent requests.
		cache := mdd.NewCache()
		res := mdd.Parse(req.Context(), string(body), mdd.ParseOpt{
			Loader: loader.FS(os.DirFS(root), cache),
			Cache:  cache,
		})

		var out []byte
		switch req.URL.Query().Get("format") {
		case "yaml":
			out, err = codec.ResultYAML(res)
			w.Header().Set("Content-Type", "application/yaml")
		default:
			out, err = codec.ResultJSON(res)
			w.Header().Set("Content-Type", "application/json")
		}
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, _ = w.Write(out)
		log.Debug().
			Int("bytes", len(body)).
			Int("errors", len(res.Errors)).
			Int("warnings", len(res.Warnings)).
			Dur("took", time.Since(start)).
			Msg("parsed document")
	})

	log.Info().Str("addr", addr).Str("root", root).Msg("serving")
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
