package app

type envelopeKind int

const (
	envNone envelopeKind = iota
	envList
	envObject
)

// envelope is a response body after unwrapping. The backend answers with a
// bare array, {data: ...}, {<resource>: ...} or nested combinations of
// those; unwrap collapses them all into one of three shapes.
type envelope struct {
	kind   envelopeKind
	list   []map[string]any
	object map[string]any
}

// generic wrapper keys tried after the resource-specific names
var containerKeys = []string{"data", "items", "results", "result", "payload"}

func unwrap(body any, names ...string) envelope {
	switch v := body.(type) {
	case []any:
		rows := make([]map[string]any, 0, len(v))
		for _, it := range v {
			if m, ok := it.(map[string]any); ok {
				rows = append(rows, m)
			}
		}
		if len(v) > 0 && len(rows) == 0 {
			return envelope{} // an array of scalars is not a resource list
		}
		return envelope{kind: envList, list: rows}
	case map[string]any:
		for _, k := range names {
			if env := unwrapKey(v, k, names); env.kind != envNone {
				return env
			}
		}
		// an identified object is the entity itself; its own "items" or
		// "result" fields are not wrappers
		if hasIdentity(v) {
			return envelope{kind: envObject, object: v}
		}
		for _, k := range containerKeys {
			if env := unwrapKey(v, k, names); env.kind != envNone {
				return env
			}
		}
		return envelope{kind: envObject, object: v}
	}
	return envelope{}
}

func unwrapKey(m map[string]any, key string, names []string) envelope {
	inner, ok := m[key]
	if !ok || inner == nil {
		return envelope{}
	}
	return unwrap(inner, names...)
}

func (e envelope) asList() ([]map[string]any, bool) {
	if e.kind != envList {
		return nil, false
	}
	return e.list, true
}

// asObject accepts a single object, or the first row of a list.
func (e envelope) asObject() (map[string]any, bool) {
	switch e.kind {
	case envObject:
		return e.object, true
	case envList:
		if len(e.list) > 0 {
			return e.list[0], true
		}
	}
	return nil, false
}
