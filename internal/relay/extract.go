package relay

import "github.com/tidwall/gjson"

// EmptyResponseText is returned when nothing usable can be found in an upstream response.
const EmptyResponseText = "The AI returned an empty response."

// Extract picks the user-facing answer out of a generateContent response.
//
// The first part under candidates[0].content.parts that carries a "text" field wins.
// If no part has one, the "thought" of the first part is used instead. Anything else,
// including bytes that are not JSON at all, yields EmptyResponseText.
func Extract(raw []byte) string {
	if !gjson.ValidBytes(raw) {
		return EmptyResponseText
	}
	root := gjson.ParseBytes(raw)

	parts, ok := lookup(root, key("candidates"), index(0), key("content"), key("parts"))
	if ok && parts.IsArray() {
		for _, part := range parts.Array() {
			text, found := lookup(part, key("text"))
			if !found {
				continue
			}
			if s, ok := asString(text, found); ok {
				return s
			}
			// A text field that is not a string stops the scan; fall back to the thought.
			break
		}
	}

	if s, ok := asString(lookup(root, key("candidates"), index(0), key("content"), key("parts"), index(0), key("thought"))); ok {
		return s
	}
	return EmptyResponseText
}

// step is one optional hop into a JSON document.
type step func(gjson.Result) (gjson.Result, bool)

// key selects a member of an object.
func key(name string) step {
	return func(r gjson.Result) (gjson.Result, bool) {
		if !r.IsObject() {
			return gjson.Result{}, false
		}
		v := r.Get(name)
		return v, v.Exists()
	}
}

// index selects an element of an array.
func index(i int) step {
	return func(r gjson.Result) (gjson.Result, bool) {
		if !r.IsArray() {
			return gjson.Result{}, false
		}
		elems := r.Array()
		if i < 0 || i >= len(elems) {
			return gjson.Result{}, false
		}
		return elems[i], true
	}
}

// lookup applies steps left to right and stops at the first miss.
func lookup(r gjson.Result, steps ...step) (gjson.Result, bool) {
	for _, s := range steps {
		var ok bool
		if r, ok = s(r); !ok {
			return gjson.Result{}, false
		}
	}
	return r, true
}

func asString(r gjson.Result, ok bool) (string, bool) {
	if !ok || r.Type != gjson.String {
		return "", false
	}
	return r.Str, true
}
