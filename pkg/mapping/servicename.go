package mapping

import "strings"

// ServiceName reduces a service address to its leading host label:
// "grpc://foo.default.svc.cluster.local:8080" becomes "foo". The scheme, the
// port and the domain suffix are stripped in that order; a ':' or '.' at
// index 0 is left alone.
func ServiceName(service string) string {
	if service == "" {
		return ""
	}
	if ix := strings.Index(service, "://"); ix >= 0 {
		service = service[ix+len("://"):]
	}
	if ix := strings.IndexByte(service, ':'); ix > 0 {
		service = service[:ix]
	}
	if ix := strings.IndexByte(service, '.'); ix > 0 {
		service = service[:ix]
	}
	return service
}
