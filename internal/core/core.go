// Package core wires the Type Registry, Path Resolver, Safe YAML Reader,
// Redactor, Log Streamer and Archive Walker together into the four
// front-end operations: list, get, stream_log and update_types.
package core

import (
	"io"

	"go.uber.org/zap"

	"github.com/sarahbx/must-oc/internal/coreerr"
	"github.com/sarahbx/must-oc/internal/discovery"
	"github.com/sarahbx/must-oc/internal/logstream"
	"github.com/sarahbx/must-oc/internal/pathsafe"
	"github.com/sarahbx/must-oc/internal/query"
	"github.com/sarahbx/must-oc/internal/record"
	"github.com/sarahbx/must-oc/internal/redact"
	"github.com/sarahbx/must-oc/internal/registry"
	"github.com/sarahbx/must-oc/internal/resolve"
	"github.com/sarahbx/must-oc/internal/selector"
	"github.com/sarahbx/must-oc/internal/walker"
	"github.com/sarahbx/must-oc/internal/yamlreader"
)

// Core holds the process-wide, load-once state a query runs against: the
// archive roots discovered at startup and the Type Registry loaded from
// the configuration directory, loaded once at startup and treated as
// immutable by readers.
type Core struct {
	Roots    []discovery.Root
	Registry *registry.Registry
	Log      *zap.Logger

	MaxYAMLBytes int64
	MaxLogBytes  int64
}

// New builds a Core from discovered roots and a loaded registry. Zero-value
// byte ceilings are replaced with their package defaults.
func New(roots []discovery.Root, reg *registry.Registry, log *zap.Logger, maxYAMLBytes, maxLogBytes int64) *Core {
	if maxYAMLBytes == 0 {
		maxYAMLBytes = yamlreader.DefaultMaxYAMLBytes
	}
	if maxLogBytes == 0 {
		maxLogBytes = logstream.DefaultMaxLogBytes
	}
	return &Core{
		Roots:        roots,
		Registry:     reg,
		Log:          log,
		MaxYAMLBytes: maxYAMLBytes,
		MaxLogBytes:  maxLogBytes,
	}
}

// ListOptions parameters the list operation.
type ListOptions struct {
	Selector *selector.Selector // nil or empty matches everything
	Reveal   bool
}

// List resolves q against every configured root, reading and deduplicating
// every matching record, applying the label selector and redaction mode.
// Per-file skips (PathEscape, ParseError, UnsafeYaml, TooLarge) are logged
// as warnings and excluded from the result rather than failing the whole
// operation.
func (c *Core) List(q query.Query, opts ListOptions) ([]*record.Record, error) {
	candidates, warnings, err := resolve.Candidates(c.Roots, q)
	if err != nil {
		return nil, err
	}
	c.logWarnings(warnings)

	type identity struct{ ns, kind, name string }
	seen := make(map[identity]bool)
	var out []*record.Record

	for _, cand := range candidates {
		recs, err := yamlreader.Read(cand.Path, c.MaxYAMLBytes)
		if err != nil {
			c.logSkip(cand.Path, err)
			continue
		}
		for _, rec := range recs {
			ns, kind, name := rec.Identity()
			id := identity{ns, kind, name}
			if seen[id] {
				// Pattern A precedes Pattern B within a root and roots are
				// walked in order, so the first occurrence in candidate
				// order is always the one kept.
				continue
			}
			seen[id] = true

			if opts.Selector != nil && !opts.Selector.Matches(rec.Labels) {
				continue
			}

			mode := redact.Redacted
			if opts.Reveal {
				mode = redact.Raw
			}
			out = append(out, redact.Apply(rec, mode))
		}
	}

	return out, nil
}

// Get resolves a qualified query (q.Name set) to exactly one record, or
// *coreerr.NotFound if none exists anywhere in scope.
func (c *Core) Get(q query.Query, reveal bool) (*record.Record, error) {
	if q.Name == "" {
		return nil, &coreerr.NotFound{What: "get requires a name"}
	}

	opts := ListOptions{Reveal: reveal}
	recs, err := c.List(q, opts)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, &coreerr.NotFound{What: q.Group + "/" + q.Plural + " " + q.Name}
	}
	return recs[0], nil
}

// StreamLog resolves h's container (disambiguating against the owning pod
// when necessary), validates the log path against h.ArchiveRoot, and
// streams its log to sink.
func (c *Core) StreamLog(h query.LogHandle, sink io.Writer) error {
	if h.Container == "" {
		pod, err := c.Get(query.Query{
			Group:  registry.CoreGroup,
			Plural: "pods",
			Scope:  query.SingleNamespace(h.Namespace),
			Name:   h.Pod,
		}, true)
		if err != nil {
			return err
		}
		container, err := logstream.ResolveContainer(h, pod)
		if err != nil {
			return err
		}
		h.Container = container
	}

	path, err := pathsafe.Validate(h.ArchiveRoot, logstream.Path(h.ArchiveRoot, h))
	if err != nil {
		return err
	}
	return logstream.Stream(path, sink, c.MaxLogBytes)
}

// UpdateSummary is the result of UpdateTypes: explicit counts and name
// lists describing what the merge added.
type UpdateSummary = walker.Summary

// UpdateTypes walks dirs for new resource kinds and cluster-scoped members,
// merges them additively into the registry and returns a summary. The
// caller is responsible for persisting the registry afterward via
// registry.Store under the held lock.
func (c *Core) UpdateTypes(dirs []string) (UpdateSummary, error) {
	roots, err := discovery.Discover(dirs)
	if err != nil {
		return UpdateSummary{}, err
	}
	return walker.Update(c.Registry, roots), nil
}

func (c *Core) logWarnings(warnings []error) {
	for _, w := range warnings {
		c.Log.Warn("candidate path skipped", zap.Error(w))
	}
}

func (c *Core) logSkip(path string, err error) {
	c.Log.Warn("file skipped", zap.String("path", path), zap.Error(err))
}
