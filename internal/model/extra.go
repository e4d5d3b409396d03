package model

import "github.com/tidwall/gjson"

// Extra keeps the full source object of an entity so fields the typed struct
// does not model stay readable. It is never mutated after decoding.
type Extra struct {
	raw string
}

// NewExtra wraps a raw JSON value.
func NewExtra(raw string) Extra {
	return Extra{raw: raw}
}

// Raw returns the source JSON exactly as received.
func (e Extra) Raw() string { return e.raw }

// Get returns the top-level member named key. Keys are matched literally, so
// names containing dots or wildcards are safe.
func (e Extra) Get(key string) (gjson.Result, bool) {
	var (
		out   gjson.Result
		found bool
	)
	gjson.Parse(e.raw).ForEach(func(k, v gjson.Result) bool {
		if k.String() == key {
			out, found = v, true
			return false
		}
		return true
	})
	return out, found
}

// Keys returns the top-level member names in document order.
func (e Extra) Keys() []string {
	res := gjson.Parse(e.raw)
	if !res.IsObject() {
		return nil
	}
	var keys []string
	res.ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// IsObject reports whether the source was a JSON object.
func (e Extra) IsObject() bool {
	return gjson.Parse(e.raw).IsObject()
}
