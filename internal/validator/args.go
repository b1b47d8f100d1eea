package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/jokarl/banlist/internal/nearmatch"
)

// Args holds the arguments a validator is constructed with. Values come
// from HCL attributes, JSON request bodies or CLI flags.
type Args map[string]cty.Value

// ArgsFromJSON decodes a JSON object into Args, inferring cty types from the
// document.
func ArgsFromJSON(data []byte) (Args, error) {
	if len(strings.TrimSpace(string(data))) == 0 || string(data) == "null" {
		return Args{}, nil
	}

	ty, err := ctyjson.ImpliedType(data)
	if err != nil {
		return nil, fmt.Errorf("invalid args: %w", err)
	}
	if !ty.IsObjectType() {
		return nil, fmt.Errorf("invalid args: expected a JSON object, got %s", ty.FriendlyName())
	}

	val, err := ctyjson.Unmarshal(data, ty)
	if err != nil {
		return nil, fmt.Errorf("invalid args: %w", err)
	}

	args := make(Args)
	for name, v := range val.AsValueMap() {
		args[name] = v
	}
	return args, nil
}

// Keys returns the argument names in sorted order
func (a Args) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Check returns an error for the first argument not listed in allowed,
// suggesting the closest allowed name.
func (a Args) Check(allowed ...string) error {
	for _, key := range a.Keys() {
		known := false
		for _, name := range allowed {
			if key == name {
				known = true
				break
			}
		}
		if known {
			continue
		}
		if suggestion, _, ok := nearmatch.FindBestMatch(key, allowed, 0.6); ok {
			return fmt.Errorf("unknown argument %q, did you mean %q?", key, suggestion)
		}
		return fmt.Errorf("unknown argument %q (valid: %s)", key, strings.Join(allowed, ", "))
	}
	return nil
}

func (a Args) lookup(key string) (cty.Value, bool, error) {
	v, ok := a[key]
	if !ok || v.IsNull() {
		return cty.NilVal, false, nil
	}
	if !v.IsWhollyKnown() {
		return cty.NilVal, false, fmt.Errorf("argument %q: value is not known", key)
	}
	return v, true, nil
}

// Strings returns a list of strings. A single string is accepted as a
// one-element list. The boolean is false when the argument is absent.
func (a Args) Strings(key string) ([]string, bool, error) {
	v, ok, err := a.lookup(key)
	if !ok || err != nil {
		return nil, false, err
	}

	if v.Type() == cty.String {
		return []string{v.AsString()}, true, nil
	}

	list, err := convert.Convert(v, cty.List(cty.String))
	if err != nil {
		return nil, true, fmt.Errorf("argument %q: %w", key, err)
	}
	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, true, fmt.Errorf("argument %q: %w", key, err)
	}
	return out, true, nil
}

// Int returns an integer argument or def when absent
func (a Args) Int(key string, def int) (int, error) {
	v, ok, err := a.lookup(key)
	if !ok || err != nil {
		return def, err
	}

	num, err := convert.Convert(v, cty.Number)
	if err != nil {
		return def, fmt.Errorf("argument %q: %w", key, err)
	}
	var out int
	if err := gocty.FromCtyValue(num, &out); err != nil {
		return def, fmt.Errorf("argument %q: %w", key, err)
	}
	return out, nil
}

// Bool returns a boolean argument or def when absent
func (a Args) Bool(key string, def bool) (bool, error) {
	v, ok, err := a.lookup(key)
	if !ok || err != nil {
		return def, err
	}

	b, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return def, fmt.Errorf("argument %q: %w", key, err)
	}
	return b.True(), nil
}

// String returns a string argument or def when absent
func (a Args) String(key string, def string) (string, error) {
	v, ok, err := a.lookup(key)
	if !ok || err != nil {
		return def, err
	}

	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return def, fmt.Errorf("argument %q: %w", key, err)
	}
	return s.AsString(), nil
}
