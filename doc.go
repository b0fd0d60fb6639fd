// Package gatewaygen turns OpenAPI documents into API gateway routing
// configuration. The default output is one Ambassador Mapping per operation,
// grouped into one YAML file per tag.
//
// Quick start:
//
//	result, err := gatewaygen.Generate(ctx,
//		openapi.SourceFromFile("petstore.yaml"),
//		gatewaygen.GatewayConfig{TargetNamespace: "pets"},
//		"",
//	)
//
// Caller settings win over the document's root x-ambassador block, and both
// fill in only what an operation's own block leaves out unless
// OverrideExtensions is set.
package gatewaygen
