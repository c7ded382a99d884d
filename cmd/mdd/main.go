package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	mdd "github.com/mdd-lang/go-mdd"
	"github.com/mdd-lang/go-mdd/codec"
	"github.com/mdd-lang/go-mdd/i18n"
	"github.com/mdd-lang/go-mdd/jsonschema"
	"github.com/mdd-lang/go-mdd/loader"

	json "github.com/goccy/go-json"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "export":
		exportCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "watch":
		watchCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `mdd CLI

Usage:
  mdd check [-lang en|ja] file...
  mdd export [-format json|yaml] [-schema name] file
  mdd serve [-addr :8000] [-root dir] [-v]
  mdd watch [-v] file...

check parses documents and prints diagnostics; exit status 1 when any
document has errors. export emits the parse result (or one schema as JSON
Schema via -schema) on stdout. serve runs a local parse endpoint. watch
re-checks documents whenever they change on disk.`)
}

// parseFile parses one document with external references resolved relative to
// the document's directory.
func parseFile(ctx context.Context, file string) (*mdd.ParseResult, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(file)
	cache := mdd.NewCache()
	opt := mdd.ParseOpt{
		Loader:     loader.FS(os.DirFS(dir), cache),
		Cache:      cache,
		SourceName: filepath.Base(file),
	}
	return mdd.Parse(ctx, string(b), opt), nil
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var lang string
	fs.StringVar(&lang, "lang", "en", "diagnostic message language (en, ja)")
	_ = fs.Parse(args)
	if fs.NArg() == 0 {
		fs.Usage()
		os.Exit(2)
	}
	i18n.SetLanguage(lang)

	failed := false
	for _, file := range fs.Args() {
		res, err := parseFile(context.Background(), file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", file, err)
			failed = true
			continue
		}
		printDiags(file, "error", res.Errors)
		printDiags(file, "warning", res.Warnings)
		fmt.Printf("%s: %d schema(s), %d data group(s), %d error(s), %d warning(s)\n",
			file, len(res.Schemas), len(res.Data), len(res.Errors), len(res.Warnings))
		if res.HasErrors() {
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func printDiags(file, severity string, ds mdd.Diagnostics) {
	for _, d := range ds {
		loc := file
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", file, d.Line)
		}
		fmt.Printf("%s: %s: %s (%s)\n", loc, severity, d.Message, i18n.T(d.Kind, nil))
	}
}

func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var format, schema string
	fs.StringVar(&format, "format", "json", "output format (json, yaml)")
	fs.StringVar(&schema, "schema", "", "emit this schema as JSON Schema instead of the full result")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}

	res, err := parseFile(context.Background(), fs.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var out []byte
	switch {
	case schema != "":
		s, ok := res.Schemas[schema]
		if !ok {
			fmt.Fprintf(os.Stderr, "no schema named %s\n", schema)
			os.Exit(1)
		}
		out, err = json.MarshalIndent(jsonschema.FromSchema(s), "", "  ")
	case format == "yaml":
		out, err = codec.ResultYAML(res)
	default:
		out, err = codec.ResultJSON(res)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
	fmt.Println()
}
