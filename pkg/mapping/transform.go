package mapping

import (
	"strings"

	"github.com/goliatone/go-gatewaygen/pkg/openapi"
)

// Resolution is the caller/document value applied to operations that lack
// their own, or to every operation when OverrideExtensions is set.
type Resolution struct {
	Service   string
	Namespace string
	Prefix    string
}

// Resolve applies the caller-over-document precedence. Document defaults are
// ignored entirely when the caller set a target service and asked to
// override extensions.
func Resolve(defaults DocumentDefaults, cfg GatewayConfig) (Resolution, Diagnostics) {
	var diags Diagnostics

	res := Resolution{
		Service:   cfg.TargetService,
		Namespace: cfg.TargetNamespace,
		Prefix:    cfg.ServicePrefix,
	}
	if cfg.TargetService == "" || !cfg.OverrideExtensions {
		if res.Service == "" {
			res.Service = defaults.Service
		}
		if res.Namespace == "" {
			res.Namespace = defaults.Namespace
		}
		if res.Prefix == "" {
			res.Prefix = defaults.Prefix
		}
	}

	if res.Service == "" {
		diags.Add(KindConfiguration, SeverityWarning, "",
			"missing target service: pass one or declare %s.service in the document", ExtensionKey)
	}
	if res.Namespace == "" {
		diags.Add(KindConfiguration, SeverityWarning, "",
			"missing target namespace: using %q, pass one or declare %s.namespace in the document", DefaultNamespace, ExtensionKey)
		res.Namespace = DefaultNamespace
	}

	return res, diags
}

// Transform produces one RouteEntry per surviving operation, preserving the
// input order. Operations are dropped when the caller ignores them or, once a
// target service is known, when their own x-ambassador block sets
// `ignore: true`.
func Transform(operations []openapi.Operation, defaults DocumentDefaults, cfg GatewayConfig) ([]RouteEntry, Diagnostics) {
	res, diags := Resolve(defaults, cfg)
	entries, opDiags := TransformResolved(operations, defaults.BasePath, res, cfg)
	return entries, append(diags, opDiags...)
}

// TransformResolved runs the per-operation pass against an already resolved
// configuration.
func TransformResolved(operations []openapi.Operation, basePath string, res Resolution, cfg GatewayConfig) ([]RouteEntry, Diagnostics) {
	var diags Diagnostics

	kept := make([]openapi.Operation, 0, len(operations))
	for _, op := range operations {
		if cfg.Ignores(op.ID) {
			diags.Add(KindOperationSuppressed, SeverityDebug, op.ID, "ignoring operation listed by caller")
			continue
		}
		kept = append(kept, op)
	}

	entries := make([]RouteEntry, 0, len(kept))
	for _, op := range kept {
		entry := RouteEntry{
			OperationID: strings.ToLower(op.ID),
			Method:      op.Method,
			Path:        RewritePath(basePath, op.Path),
			Summary:     op.Summary,
		}
		if len(op.Tags) > 0 {
			entry.Tags = append([]string(nil), op.Tags...)
		}

		if res.Service != "" {
			own, declared := OverridesFromExtensions(op.Extensions)
			if declared && own.Ignore {
				diags.Add(KindOperationSuppressed, SeverityDebug, op.ID, "ignoring operation flagged with %s.ignore", ExtensionKey)
				continue
			}
			entry = merge(entry, own, res, cfg.OverrideExtensions)
		}

		entries = append(entries, entry)
	}

	return entries, diags
}

func merge(entry RouteEntry, own VendorOverrides, res Resolution, override bool) RouteEntry {
	pick := func(field Field, ownValue, resolved string) string {
		if override || !own.Has(field) {
			return resolved
		}
		return ownValue
	}

	entry.Service = pick(FieldService, own.Service, res.Service)
	entry.ServiceName = ServiceName(entry.Service)
	entry.Namespace = pick(FieldNamespace, own.Namespace, res.Namespace)
	entry.Prefix = pick(FieldPrefix, own.Prefix, res.Prefix)
	if len(own.Extra) > 0 {
		entry.Extra = make(map[string]any, len(own.Extra))
		for key, value := range own.Extra {
			entry.Extra[key] = value
		}
	}
	entry.Resolved = true
	return entry
}
