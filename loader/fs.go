// Package loader provides ready-made Loader collaborators for the parser
// core. The core itself never touches the filesystem; these implementations
// live outside it on purpose.
package loader

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	mdd "github.com/mdd-lang/go-mdd"
)

// FS returns a Loader that reads externally referenced documents from fsys.
// The referenced document is parsed as a Markdown Data Extension document and
// its first defined schema is returned; a document defining no schema is a
// load failure. References inside the loaded document resolve through the
// same loader and the same cache, so pass the cache in ParseOpt too and each
// document is loaded at most once per run. A reference back to a document
// whose load is still in flight is a cycle and fails instead of recursing.
//
// The returned Loader is not safe for concurrent use, matching Cache.
func FS(fsys fs.FS, cache *mdd.Cache) mdd.Loader {
	if cache == nil {
		cache = mdd.NewCache()
	}
	loading := map[string]bool{}
	var l mdd.LoaderFunc
	l = func(ctx context.Context, p string) (*mdd.Schema, error) {
		name := path.Clean(p)
		if loading[name] {
			return nil, fmt.Errorf("cyclic external reference through %s", name)
		}
		loading[name] = true
		defer delete(loading, name)
		b, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		res := mdd.Parse(ctx, string(b), mdd.ParseOpt{Loader: l, Cache: cache, SourceName: name})
		for _, sn := range res.SchemaOrder {
			if s, ok := res.Schemas[sn]; ok {
				if s.SourcePath == "" {
					s.SourcePath = name
				}
				return s, nil
			}
		}
		return nil, fmt.Errorf("%s defines no schema", name)
	}
	return l
}
