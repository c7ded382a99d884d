package mdd

import (
	"context"
	"path"
)

// Loader is the injected collaborator that fetches externally referenced
// schemas. It is invoked only on cache miss. The core itself performs no I/O;
// a Loader may hit the filesystem, the network, or anything else, and a
// caller wanting parallel loads implements that inside the Loader.
type Loader interface {
	Load(ctx context.Context, path string) (*Schema, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, path string) (*Schema, error)

// Load implements Loader.
func (f LoaderFunc) Load(ctx context.Context, path string) (*Schema, error) {
	return f(ctx, path)
}

// Cache maps normalized external paths to loaded schemas for the lifetime of
// a parse run. It has no eviction policy and is not safe for concurrent use;
// concurrent parse runs must each use their own Cache.
type Cache struct {
	byPath map[string]*Schema
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{byPath: map[string]*Schema{}}
}

// Get returns the schema cached under the normalized path.
func (c *Cache) Get(p string) (*Schema, bool) {
	s, ok := c.byPath[normalizePath(p)]
	return s, ok
}

// Put caches a schema under the normalized path.
func (c *Cache) Put(p string, s *Schema) {
	c.byPath[normalizePath(p)] = s
}

// Len returns the number of cached schemas.
func (c *Cache) Len() int { return len(c.byPath) }

// normalizePath collapses ./ and ../ segments so the same document referenced
// through different spellings shares one cache slot.
func normalizePath(p string) string {
	return path.Clean(p)
}

// resolveExternal fetches an externally referenced schema through the cache,
// delegating to the Loader on miss. A loader failure is fatal to this one
// reference only: the returned diagnostic is attached and the referencing
// block's entries stay in the result.
func (p *parser) resolveExternal(ctx context.Context, name, ref string, line int) (*Schema, *Diagnostic) {
	if s, ok := p.opt.Cache.Get(ref); ok {
		return s, nil
	}
	if p.opt.Loader == nil {
		return nil, &Diagnostic{
			Kind:    KindExternalReferenceFailed,
			Message: "no schema loader configured for external reference " + ref,
			Line:    line,
			Schema:  name,
		}
	}
	s, err := p.opt.Loader.Load(ctx, normalizePath(ref))
	if err != nil || s == nil {
		msg := "loading " + ref + " failed"
		if err != nil {
			msg += ": " + err.Error()
		}
		return nil, &Diagnostic{
			Kind:    KindExternalReferenceFailed,
			Message: msg,
			Line:    line,
			Schema:  name,
		}
	}
	if s.Name != name {
		return nil, &Diagnostic{
			Kind:    KindSchemaNotFound,
			Message: "document " + ref + " defines schema " + s.Name + ", not " + name,
			Line:    line,
			Schema:  name,
		}
	}
	if s.SourcePath == "" {
		s.SourcePath = normalizePath(ref)
	}
	p.opt.Cache.Put(ref, s)
	return s, nil
}
