package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sarahbx/must-oc/internal/config"
	"github.com/sarahbx/must-oc/internal/core"
	"github.com/sarahbx/must-oc/internal/discovery"
	"github.com/sarahbx/must-oc/internal/logstream"
	"github.com/sarahbx/must-oc/internal/query"
	"github.com/sarahbx/must-oc/internal/registry"
	"github.com/sarahbx/must-oc/internal/yamlreader"
)

// bootstrap discovers archive roots under dirs, loads the Type Registry
// from the configured directory, and builds a core.Core ready to serve
// list/get/logs. The registry is loaded once and treated as immutable by
// readers.
func bootstrap(dirs []string, maxYAMLBytes, maxLogBytes int64) (*core.Core, error) {
	roots, err := discovery.Discover(dirs)
	if err != nil {
		return nil, err
	}

	cfgDir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	reg, err := registry.Load(cfgDir)
	if err != nil {
		return nil, err
	}

	log, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	yamlCeil := config.MaxYAMLBytes(maxYAMLBytes)
	if yamlCeil == 0 {
		yamlCeil = yamlreader.DefaultMaxYAMLBytes
	}
	logCeil := config.MaxLogBytes(maxLogBytes)
	if logCeil == 0 {
		logCeil = logstream.DefaultMaxLogBytes
	}

	return core.New(roots, reg, log, yamlCeil, logCeil), nil
}

// resolveScope builds the Query.Scope variant a list/get/describe
// invocation's namespace flags select: --cluster, or a plural the registry
// lists as cluster-scoped, wins outright, else --all-namespaces, else the
// single named namespace, which is required in that case.
func resolveScope(c *core.Core, plural, namespace string, allNamespaces, clusterFlag bool) (query.Scope, error) {
	if clusterFlag || c.Registry.IsClusterScoped(plural) {
		return query.Cluster(), nil
	}
	if allNamespaces {
		return query.AllNamespaces(), nil
	}
	if namespace == "" {
		return query.Scope{}, fmt.Errorf("-n/--namespace is required unless --all-namespaces or --cluster is set")
	}
	return query.SingleNamespace(namespace), nil
}

// noopLogger is used where a core.Core is built only to drive UpdateTypes,
// which doesn't raise per-file skip warnings the way List does.
func noopLogger() *zap.Logger {
	return zap.NewNop()
}
