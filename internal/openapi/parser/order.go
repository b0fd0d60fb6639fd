package parser

import (
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// canonicalMethods is the fallback ordering used when the declaration order
// of a path item cannot be recovered from the raw payload.
var canonicalMethods = []string{"GET", "PUT", "POST", "DELETE", "OPTIONS", "HEAD", "PATCH", "TRACE"}

// pathOrder records the order in which paths and their methods appear in the
// raw document. kin-openapi stores paths in a map, so the order is recovered
// from a yaml.Node walk over the same bytes (JSON parses as YAML too).
type pathOrder struct {
	paths   []string
	methods map[string][]string
}

func declarationOrder(raw []byte) pathOrder {
	order := pathOrder{methods: make(map[string][]string)}

	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil || len(root.Content) == 0 {
		return order
	}
	paths := mappingValue(root.Content[0], "paths")
	if paths == nil || paths.Kind != yaml.MappingNode {
		return order
	}
	for i := 0; i+1 < len(paths.Content); i += 2 {
		path := paths.Content[i].Value
		order.paths = append(order.paths, path)

		item := paths.Content[i+1]
		if item.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := strings.ToUpper(item.Content[j].Value)
			if isMethod(key) {
				order.methods[path] = append(order.methods[path], key)
			}
		}
	}
	return order
}

// orderedPaths returns the keys of items in declaration order. Paths missing
// from the recorded order (for example, when the payload could not be walked)
// are appended lexically.
func orderedPaths[T any](o pathOrder, items map[string]T) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, path := range o.paths {
		if _, ok := items[path]; !ok {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	var rest []string
	for path := range items {
		if _, ok := seen[path]; !ok {
			rest = append(rest, path)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func (o pathOrder) methodsOf(path string) []string {
	return o.methods[path]
}

// orderMethods lists the methods present in operations, declared ones first.
func orderMethods[T any](declared []string, operations map[string]T) []string {
	out := make([]string, 0, len(operations))
	seen := make(map[string]struct{}, len(operations))
	add := func(method string) {
		if _, ok := operations[method]; !ok {
			return
		}
		if _, dup := seen[method]; dup {
			return
		}
		seen[method] = struct{}{}
		out = append(out, method)
	}
	for _, method := range declared {
		add(method)
	}
	for _, method := range canonicalMethods {
		add(method)
	}
	return out
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func isMethod(key string) bool {
	for _, method := range canonicalMethods {
		if method == key {
			return true
		}
	}
	return false
}
