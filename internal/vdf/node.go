// =============================================================================
// steam2xml - VDF Tree
// =============================================================================
//
// This package reads and writes Valve Data Format (VDF) text, the nested
// key/value format used by Steam for localization token files:
//
//   "lang"
//   {
//   	"Language"		"english"
//   	"Tokens"
//   	{
//   		"ACH_1_NAME"		"Win"
//   	}
//   }
//
// A document is one root Property. Every value is a Node, which holds either
// a string or an ordered Object. The typed accessors (AsString, AsObject,
// Object.Get) fail with a descriptive error instead of coercing when the
// tree does not have the expected shape.
//
// =============================================================================

package vdf

import (
	"fmt"
	"strings"
)

// =============================================================================
// NODE
// =============================================================================

// Kind is the type of value a Node holds.
type Kind int

const (
	// KindString is a quoted or bare string value.
	KindString Kind = iota

	// KindObject is a braced block of properties.
	KindObject
)

// String returns the kind name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Node is a VDF value: either a string or an object.
type Node struct {
	kind Kind
	str  string
	obj  *Object
}

// StringNode returns a string value.
func StringNode(s string) Node {
	return Node{kind: KindString, str: s}
}

// ObjectNode returns an object value. A nil object is replaced by an empty one.
func ObjectNode(o *Object) Node {
	if o == nil {
		o = NewObject()
	}
	return Node{kind: KindObject, obj: o}
}

// Kind reports what the node holds.
func (n Node) Kind() Kind {
	return n.kind
}

// AsString returns the string value, or a *ShapeError if the node is an object.
func (n Node) AsString() (string, error) {
	if n.kind != KindString {
		return "", &ShapeError{Want: KindString, Got: n.kind}
	}
	return n.str, nil
}

// AsObject returns the object value, or a *ShapeError if the node is a string.
func (n Node) AsObject() (*Object, error) {
	if n.kind != KindObject || n.obj == nil {
		return nil, &ShapeError{Want: KindObject, Got: n.kind}
	}
	return n.obj, nil
}

// =============================================================================
// PROPERTY AND OBJECT
// =============================================================================

// Property is a key together with its value.
type Property struct {
	Key   string
	Value Node
}

// Object is an ordered set of properties with unique keys.
type Object struct {
	props []Property
	index map[string]int
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set stores value under key. Replacing an existing key keeps its position.
func (o *Object) Set(key string, value Node) {
	if i, exists := o.index[key]; exists {
		o.props[i].Value = value
		return
	}
	o.index[key] = len(o.props)
	o.props = append(o.props, Property{Key: key, Value: value})
}

// SetString is shorthand for Set(key, StringNode(value)).
func (o *Object) SetString(key, value string) {
	o.Set(key, StringNode(value))
}

// Lookup returns the value stored under key.
func (o *Object) Lookup(key string) (Node, bool) {
	i, exists := o.index[key]
	if !exists {
		return Node{}, false
	}
	return o.props[i].Value, true
}

// LookupFold is Lookup with an ASCII case-insensitive fallback. An exact
// match always wins; otherwise the first key equal under case folding is used.
func (o *Object) LookupFold(key string) (Node, bool) {
	if n, ok := o.Lookup(key); ok {
		return n, true
	}
	for _, p := range o.props {
		if strings.EqualFold(p.Key, key) {
			return p.Value, true
		}
	}
	return Node{}, false
}

// Get returns the value stored under key or a *MissingKeyError.
func (o *Object) Get(key string) (Node, error) {
	n, ok := o.Lookup(key)
	if !ok {
		return Node{}, &MissingKeyError{Key: key}
	}
	return n, nil
}

// Properties returns the properties in insertion order.
func (o *Object) Properties() []Property {
	props := make([]Property, len(o.props))
	copy(props, o.props)
	return props
}

// Len returns the number of properties.
func (o *Object) Len() int {
	return len(o.props)
}

// =============================================================================
// ERRORS
// =============================================================================

// SyntaxError reports malformed VDF text.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("vdf: line %d: %s", e.Line, e.Msg)
}

// ShapeError reports a node that does not hold the expected kind of value.
type ShapeError struct {
	Key  string
	Want Kind
	Got  Kind
}

func (e *ShapeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("vdf: expected %s value, found %s", e.Want, e.Got)
	}
	return fmt.Sprintf("vdf: %q: expected %s value, found %s", e.Key, e.Want, e.Got)
}

// MissingKeyError reports a key that is absent from an object.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("vdf: missing key %q", e.Key)
}
