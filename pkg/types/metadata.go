package types

import (
	"fmt"
	"sort"
)

// Metadata is a free-form key-value bag as declared in a package manifest.
// Values are whatever the manifest decoder produced: strings, bools, numbers,
// slices and nested maps.
type Metadata map[string]interface{}

// Has reports whether key is present, regardless of its value.
func (m Metadata) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m[key]
	return ok
}

// Bag returns the nested bag stored under key. The second return value is
// false when the key is absent or holds anything other than a structured map.
func (m Metadata) Bag(key string) (Metadata, bool) {
	if m == nil {
		return nil, false
	}
	return AsMetadata(m[key])
}

// String returns the value under key when it is a string.
func (m Metadata) String(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	s, ok := m[key].(string)
	return s, ok
}

// Strings returns the value under key as a list of strings. A single string
// is promoted to a one element list; non-string items are skipped.
func (m Metadata) Strings(key string) []string {
	if m == nil {
		return nil
	}
	switch v := m[key].(type) {
	case string:
		return []string{v}
	case []string:
		return append([]string(nil), v...)
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Keys returns the keys of the bag in sorted order.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsMetadata converts a decoded value into a Metadata bag. It accepts the map
// shapes produced by the TOML, YAML and JSON decoders and rejects scalars and
// lists.
func AsMetadata(v interface{}) (Metadata, bool) {
	switch bag := v.(type) {
	case Metadata:
		return bag, true
	case map[string]interface{}:
		return Metadata(bag), true
	case map[interface{}]interface{}:
		out := make(Metadata, len(bag))
		for k, val := range bag {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	}
	return nil, false
}
