// Package buildutil provides helpers for extracting attributes from
// buildtools AST nodes.
//
// The workspace definition parser uses these to read keyword arguments of
// workspace(), project(), bundle() and fragment() calls.
package buildutil

import (
	"sort"

	"github.com/bazelbuild/buildtools/build"
)

// Attr returns the right-hand side of the named keyword argument, or nil.
func Attr(call *build.CallExpr, name string) build.Expr {
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		if lhs, ok := assign.LHS.(*build.Ident); ok && lhs.Name == name {
			return assign.RHS
		}
	}
	return nil
}

// Has reports whether the named keyword argument is present.
func Has(call *build.CallExpr, name string) bool {
	return Attr(call, name) != nil
}

// String extracts a string attribute by name.
// Returns empty string if the attribute is not found or not a string.
func String(call *build.CallExpr, name string) string {
	if str, ok := Attr(call, name).(*build.StringExpr); ok {
		return str.Value
	}
	return ""
}

// Bool extracts a boolean attribute by name.
// Returns false if the attribute is not found or not True.
func Bool(call *build.CallExpr, name string) bool {
	if ident, ok := Attr(call, name).(*build.Ident); ok {
		return ident.Name == "True"
	}
	return false
}

// StringList extracts a list of strings attribute by name.
// Returns nil if the attribute is not found or not a list.
// Non-string elements in the list are silently skipped.
func StringList(call *build.CallExpr, name string) []string {
	list, ok := Attr(call, name).(*build.ListExpr)
	if !ok {
		return nil
	}
	result := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		if str, ok := elem.(*build.StringExpr); ok {
			result = append(result, str.Value)
		}
	}
	return result
}

// StringDict extracts a dict of string keys to string values by name.
// Returns nil if the attribute is not found or not a dict.
// Entries with non-string keys or values are skipped.
func StringDict(call *build.CallExpr, name string) map[string]string {
	dict, ok := Attr(call, name).(*build.DictExpr)
	if !ok {
		return nil
	}
	result := make(map[string]string, len(dict.List))
	for _, kv := range dict.List {
		key, ok := kv.Key.(*build.StringExpr)
		if !ok {
			continue
		}
		if val, ok := kv.Value.(*build.StringExpr); ok {
			result[key.Value] = val.Value
		}
	}
	return result
}

// Names returns the keyword argument names of a call in sorted order.
func Names(call *build.CallExpr) []string {
	var names []string
	for _, arg := range call.List {
		if assign, ok := arg.(*build.AssignExpr); ok {
			if lhs, ok := assign.LHS.(*build.Ident); ok {
				names = append(names, lhs.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// FuncName returns the function name from a CallExpr.
// Returns empty string if the call is not a simple function call
// (e.g., method calls like foo.bar()).
func FuncName(call *build.CallExpr) string {
	if ident, ok := call.X.(*build.Ident); ok {
		return ident.Name
	}
	return ""
}
