// Package coreerr defines the sum-typed failure classes the core raises.
//
// Every fallible core operation returns one of these concrete types (wrapped
// with fmt.Errorf("%w", ...) where extra context is useful) rather than a
// bare string error, so callers branch on tier with errors.As instead of
// matching messages.
package coreerr

import "fmt"

// UnknownKind is a user error: the token given to the registry is neither a
// plural nor a registered alias.
type UnknownKind struct {
	Token string
}

func (e *UnknownKind) Error() string {
	return fmt.Sprintf("unknown resource kind %q", e.Token)
}

// NoArchive is a user error: no archive roots were found under any of the
// supplied directories.
type NoArchive struct {
	Dirs []string
}

func (e *NoArchive) Error() string {
	return fmt.Sprintf("no must-gather archive found under %v", e.Dirs)
}

// PathEscape is a per-file skip: a candidate path resolved outside its
// archive root.
type PathEscape struct {
	Path string
	Root string
}

func (e *PathEscape) Error() string {
	return fmt.Sprintf("path %q escapes archive root %q", e.Path, e.Root)
}

// NotFound is raised by the resolver (no candidate file exists) or by the
// log streamer (no log file for the requested variant). Non-fatal for list,
// fatal for describe/logs.
type NotFound struct {
	What string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("not found: %s", e.What)
}

// TooLarge is raised by the reader when a file exceeds its configured
// ceiling before it is opened. The log streamer does not raise it; it
// truncates its output with a notice instead.
type TooLarge struct {
	Path     string
	Size     int64
	SizeCeil int64
}

func (e *TooLarge) Error() string {
	return fmt.Sprintf("%q is %d bytes, exceeds ceiling of %d bytes", e.Path, e.Size, e.SizeCeil)
}

// UnsafeYaml is raised by the reader when a document contains a tag outside
// the safe built-in set.
type UnsafeYaml struct {
	Path string
	Tag  string
}

func (e *UnsafeYaml) Error() string {
	return fmt.Sprintf("%q: unsafe yaml tag %q", e.Path, e.Tag)
}

// ParseError is raised by the reader on malformed YAML, carrying the file
// path and the line number reported by the parser.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// AmbiguousContainer is raised by the log streamer when the caller did not
// specify a container and the pod has more than one.
type AmbiguousContainer struct {
	Pod        string
	Containers []string
}

func (e *AmbiguousContainer) Error() string {
	return fmt.Sprintf("pod %q has multiple containers, specify one of %v", e.Pod, e.Containers)
}

// ConfigConflict is a fatal startup error: the registry's alias table is
// internally inconsistent (a duplicate alias across kinds, or a
// cluster-scoped entry with no matching kind).
type ConfigConflict struct {
	Reason string
}

func (e *ConfigConflict) Error() string {
	return fmt.Sprintf("type registry config conflict: %s", e.Reason)
}

// ConfigCorrupt is a fatal startup error: a registry file exists but could
// not be parsed.
type ConfigCorrupt struct {
	Path string
	Err  error
}

func (e *ConfigCorrupt) Error() string {
	return fmt.Sprintf("type registry config %q is corrupt: %v", e.Path, e.Err)
}

func (e *ConfigCorrupt) Unwrap() error { return e.Err }

// BadSelector is a user error: a label selector string does not match the
// restricted equality/inequality grammar.
type BadSelector struct {
	Selector string
	Reason   string
}

func (e *BadSelector) Error() string {
	return fmt.Sprintf("bad selector %q: %s", e.Selector, e.Reason)
}
