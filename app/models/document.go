// Package models holds the documents stored in the copshop collections.
//
// Clients send documents with many more fields than the server looks at
// (images, descriptions, phone numbers). Each model types the fields the
// API filters or updates on and keeps the rest in Attributes, which is
// stored inline in BSON and merged back into the JSON on the way out.
package models

import (
	"bytes"
	"encoding/json"
	"reflect"
	"strings"
	"sync"
)

// Attributes are document fields the server does not interpret.
type Attributes map[string]any

// zeroObjectID is how an unset primitive.ObjectID encodes to JSON.
var zeroObjectID = []byte(`"000000000000000000000000"`)

// marshalDocument encodes the typed fields of known and merges attrs into
// the same JSON object. An unset _id is left out.
func marshalDocument(known any, attrs Attributes) ([]byte, error) {
	typed, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(typed, &fields); err != nil {
		return nil, err
	}
	if id, ok := fields["_id"]; ok && bytes.Equal(id, zeroObjectID) {
		delete(fields, "_id")
	}
	for k, v := range attrs {
		if _, taken := fields[k]; taken {
			continue
		}
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		fields[k] = raw
	}
	return json.Marshal(fields)
}

// unmarshalDocument decodes data into known and returns every field that
// known does not declare. encoding/json fills a declared field from a key
// that differs only in case, so such keys ("Title" for "title") are not
// attributes either.
func unmarshalDocument(data []byte, known any) (Attributes, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var all map[string]any
	if err := dec.Decode(&all); err != nil {
		return nil, err
	}

	declared := jsonFields(reflect.TypeOf(known).Elem())
	attrs := Attributes{}
	for k, v := range all {
		if declared[strings.ToLower(k)] {
			continue
		}
		attrs[k] = plainValue(v)
	}
	if len(attrs) == 0 {
		return nil, nil
	}
	return attrs, nil
}

// plainValue replaces json.Number with int64 or float64 so the value
// encodes to BSON as a number rather than a string.
func plainValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = plainValue(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = plainValue(e)
		}
		return t
	default:
		return v
	}
}

var fieldCache sync.Map // reflect.Type → set of lower-cased json names

func jsonFields(t reflect.Type) map[string]bool {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(map[string]bool)
	}

	names := make(map[string]bool, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, _, _ := strings.Cut(tag, ",")
		if name == "" {
			name = f.Name
		}
		names[strings.ToLower(name)] = true
	}
	fieldCache.Store(t, names)
	return names
}
