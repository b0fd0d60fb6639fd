package prompt

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-gatewaygen/pkg/mapping"
)

// FillConfig prompts for every gateway setting the caller left empty and for
// the operations to ignore. Document defaults are shown as help text but never
// copied into the result, so leaving an answer empty keeps deferring to the
// document.
func FillConfig(ctx context.Context, driver Driver, cfg mapping.GatewayConfig, defaults mapping.DocumentDefaults, operationIDs []string) (mapping.GatewayConfig, error) {
	out := cfg

	if out.TargetService == "" {
		value, err := driver.Input(ctx, InputConfig{
			Message: "Target service (host[:port] or URL)",
			Help:    documentHint(mapping.FieldService, defaults.Service, "operations without their own service stay unrouted"),
		})
		if err != nil {
			return cfg, err
		}
		out.TargetService = strings.TrimSpace(value)
	}

	if out.TargetNamespace == "" {
		value, err := driver.Input(ctx, InputConfig{
			Message: "Target namespace",
			Help:    documentHint(mapping.FieldNamespace, defaults.Namespace, fmt.Sprintf("%q", mapping.DefaultNamespace)),
		})
		if err != nil {
			return cfg, err
		}
		out.TargetNamespace = strings.TrimSpace(value)
	}

	if out.ServicePrefix == "" {
		value, err := driver.Input(ctx, InputConfig{
			Message: "Service prefix (optional)",
			Help:    documentHint(mapping.FieldPrefix, defaults.Prefix, "no prefix"),
			Validator: func(s string) error {
				s = strings.TrimSpace(s)
				if s != "" && !strings.HasPrefix(s, "/") {
					return fmt.Errorf("prefix must start with /")
				}
				return nil
			},
		})
		if err != nil {
			return cfg, err
		}
		out.ServicePrefix = strings.TrimSpace(value)
	}

	if out.TargetService != "" && !cfg.OverrideExtensions {
		override, err := driver.Confirm(ctx, ConfirmConfig{
			Message: fmt.Sprintf("Override %s values declared on operations?", mapping.ExtensionKey),
			Default: false,
			Help:    "When enabled the target service, namespace and prefix replace per-operation values and document defaults are ignored.",
		})
		if err != nil {
			return cfg, err
		}
		out.OverrideExtensions = override
	}

	if len(operationIDs) > 0 {
		var selected []int
		for i, id := range operationIDs {
			if cfg.Ignores(id) {
				selected = append(selected, i)
			}
		}
		picked, err := driver.MultiSelect(ctx, SelectConfig{
			Message:  "Operations to leave out",
			Options:  operationIDs,
			Defaults: selected,
			PageSize: 15,
		})
		if err != nil {
			return cfg, err
		}
		ids := make([]string, 0, len(picked)+len(cfg.IgnoreOperationIDs))
		for _, idx := range picked {
			if idx >= 0 && idx < len(operationIDs) {
				ids = append(ids, operationIDs[idx])
			}
		}
		// ids outside the document stay ignored; the prompt cannot show them
		known := make(map[string]struct{}, len(operationIDs))
		for _, id := range operationIDs {
			known[id] = struct{}{}
		}
		for id := range cfg.IgnoreOperationIDs {
			if _, ok := known[id]; !ok {
				ids = append(ids, id)
			}
		}
		out.IgnoreOperationIDs = mapping.NewIgnoreSet(ids...)
	}

	return out, nil
}

func documentHint(field mapping.Field, value, fallback string) string {
	if value == "" {
		return fmt.Sprintf("The document declares no %s.%s; leaving this empty means %s.", mapping.ExtensionKey, field, fallback)
	}
	return fmt.Sprintf("Leave empty to use the document's %s.%s: %s", mapping.ExtensionKey, field, value)
}
