package mapping

import (
	"strings"
	"unicode"
)

// DefaultTag groups operations that carry no tag.
const DefaultTag = "default"

// Group is the set of entries rendered into one output file.
type Group struct {
	Tag     string
	Name    string
	Entries []RouteEntry
}

// GroupByTag buckets entries by every tag they carry, so an operation tagged
// twice appears in both groups. Groups keep the order in which their tag is
// first seen and entries keep their input order.
func GroupByTag(entries []RouteEntry) []Group {
	var (
		groups []Group
		index  = make(map[string]int)
	)
	add := func(tag string, entry RouteEntry) {
		i, ok := index[tag]
		if !ok {
			i = len(groups)
			index[tag] = i
			groups = append(groups, Group{Tag: tag, Name: APIName(tag)})
		}
		groups[i].Entries = append(groups[i].Entries, entry)
	}

	for _, entry := range entries {
		if len(entry.Tags) == 0 {
			add(DefaultTag, entry)
			continue
		}
		seen := make(map[string]struct{}, len(entry.Tags))
		for _, tag := range entry.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				tag = DefaultTag
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			add(tag, entry)
		}
	}
	return groups
}

// APIName camel-cases a tag and appends "Api": "pet store" becomes
// "PetStoreApi".
func APIName(tag string) string {
	words := strings.FieldsFunc(tag, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(words) == 0 {
		words = []string{DefaultTag}
	}

	var b strings.Builder
	for _, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	b.WriteString("Api")
	return b.String()
}
