package mapping

import (
	"errors"
	"net/url"
	"strings"

	"github.com/goliatone/go-gatewaygen/pkg/openapi"
)

// ResolveDefaults extracts the base path and the root x-ambassador block.
// Only the first server is consulted.
func ResolveDefaults(spec openapi.Spec) (DocumentDefaults, Diagnostics) {
	var (
		defaults DocumentDefaults
		diags    Diagnostics
	)

	if len(spec.Servers) > 0 {
		basePath, err := basePathFromServer(spec.Servers[0])
		if err != nil {
			diags.Add(KindMalformedServerURL, SeverityWarning, "",
				"failed to extract path from server %q: %v", spec.Servers[0], err)
		} else {
			defaults.BasePath = basePath
		}
	}

	if overrides, ok := OverridesFromExtensions(spec.Extensions); ok {
		defaults.VendorOverrides = overrides
	}

	return defaults, diags
}

var (
	errNoScheme  = errors.New("missing scheme")
	errOpaqueURL = errors.New("opaque URL")
)

func basePathFromServer(raw string) (string, error) {
	if strings.HasPrefix(raw, "/") {
		return raw, nil
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "" {
		return "", errNoScheme
	}
	if parsed.Opaque != "" {
		return "", errOpaqueURL
	}
	return parsed.Path, nil
}
