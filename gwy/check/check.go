// Package check implements the GWY conformance checker: a post-hoc
// traversal collecting UTF-8, identifier-shape, empty-name and
// finite-double violations that the decoder deliberately does not
// enforce (spec §4.C: "Name validation ... is NOT performed during
// decode — it is deferred to the conformance checker").
//
// The error-collection shape (a typed Code, a Domain, a path-qualified
// message) mirrors gwy/error.go; the path-building logic reuses
// gwy.Object.Path/gwy.Item.Path.
package check

import (
	"fmt"

	"github.com/gwyddion/gwyfile-go/gwy"
	"github.com/gwyddion/gwyfile-go/internal/wire"
)

// Flags selects which categories of violation to collect.
type Flags uint

const (
	FlagValidity Flags = 1 << iota
	FlagWarning
)

// InvalidCode enumerates VALIDITY-domain violations.
type InvalidCode int

const (
	InvalidUTF8Name InvalidCode = iota
	InvalidUTF8Type
	InvalidUTF8String
	InvalidDouble
)

func (c InvalidCode) String() string {
	switch c {
	case InvalidUTF8Name:
		return "INVALID_UTF8_NAME"
	case InvalidUTF8Type:
		return "INVALID_UTF8_TYPE"
	case InvalidUTF8String:
		return "INVALID_UTF8_STRING"
	case InvalidDouble:
		return "INVALID_DOUBLE"
	default:
		return "UNKNOWN"
	}
}

// WarningCode enumerates WARNING-domain violations.
type WarningCode int

const (
	WarningTypeIdentifier WarningCode = iota
	WarningEmptyName
)

func (c WarningCode) String() string {
	switch c {
	case WarningTypeIdentifier:
		return "TYPE_IDENTIFIER"
	case WarningEmptyName:
		return "EMPTY_NAME"
	default:
		return "UNKNOWN"
	}
}

// Violation is one finding from Check.
type Violation struct {
	Domain  gwy.Domain
	Invalid InvalidCode // valid only when Domain == gwy.DomainValidity
	Warning WarningCode // valid only when Domain == gwy.DomainWarning
	Path    string
	Message string
}

func (v *Violation) Error() string {
	code := v.Invalid.String()
	if v.Domain == gwy.DomainWarning {
		code = v.Warning.String()
	}
	return fmt.Sprintf("%s: %s: %s [%s]", v.Domain, code, v.Message, v.Path)
}

// collector accumulates violations during one Check; shortCirc aborts
// the traversal early when the caller only wants a boolean result
// (errs == nil in Check maps onto it).
type collector struct {
	flags      Flags
	list       *[]*Violation
	shortCirc  bool
	found      bool
}

func (c *collector) report(v *Violation) bool {
	c.found = true
	if c.list != nil {
		*c.list = append(*c.list, v)
	}
	return c.shortCirc
}

// Check traverses obj and everything nested inside it, collecting
// violations selected by flags. If errs is non-nil, every violation
// found is appended to it (by calling *errs = append(*errs, ...)); if
// errs is nil, the traversal returns as soon as the first violation is
// found (the "null error list" fast path from spec §4.D). The return
// value reports whether the tree is clean (no selected violation
// found).
func Check(obj *gwy.Object, flags Flags, errs *[]*Violation) bool {
	c := &collector{flags: flags, list: errs, shortCirc: errs == nil}
	checkObject(obj, c)
	return !c.found
}

func checkObject(obj *gwy.Object, c *collector) bool {
	if c.flags&FlagValidity != 0 && !validUTF8(obj.Name()) {
		if c.report(&Violation{Domain: gwy.DomainValidity, Invalid: InvalidUTF8Type, Path: obj.Path(),
			Message: "object name is not valid UTF-8"}) {
			return true
		}
	}
	if c.flags&FlagWarning != 0 && !isIdentifier(obj.Name()) {
		if c.report(&Violation{Domain: gwy.DomainWarning, Warning: WarningTypeIdentifier, Path: obj.Path(),
			Message: "object name is not a C-like identifier"}) {
			return true
		}
	}
	stop := false
	obj.Foreach(func(it *gwy.Item) {
		if stop {
			return
		}
		stop = checkItem(it, c)
	})
	return stop
}

func checkItem(it *gwy.Item, c *collector) bool {
	if c.flags&FlagValidity != 0 && !validUTF8(it.Name()) {
		if c.report(&Violation{Domain: gwy.DomainValidity, Invalid: InvalidUTF8Name, Path: it.Path(),
			Message: "item name is not valid UTF-8"}) {
			return true
		}
	}
	if c.flags&FlagWarning != 0 && it.Name() == "" {
		if c.report(&Violation{Domain: gwy.DomainWarning, Warning: WarningEmptyName, Path: it.Path(),
			Message: "item name is empty"}) {
			return true
		}
	}

	switch it.Type() {
	case gwy.TypeDouble:
		if c.flags&FlagValidity != 0 && !wire.IsFiniteBits(wire.Float64bits(it.Double())) {
			if c.report(&Violation{Domain: gwy.DomainValidity, Invalid: InvalidDouble, Path: it.Path(),
				Message: "double value is NaN or infinite"}) {
				return true
			}
		}
	case gwy.TypeDoubleArray:
		if c.flags&FlagValidity != 0 {
			for i, v := range it.DoubleArray() {
				if !wire.IsFiniteBits(wire.Float64bits(v)) {
					if c.report(&Violation{Domain: gwy.DomainValidity, Invalid: InvalidDouble,
						Path: fmt.Sprintf("%s[%d]", it.Path(), i),
						Message: "double array element is NaN or infinite"}) {
						return true
					}
				}
			}
		}
	case gwy.TypeString:
		if c.flags&FlagValidity != 0 && !validUTF8(it.Str()) {
			if c.report(&Violation{Domain: gwy.DomainValidity, Invalid: InvalidUTF8String, Path: it.Path(),
				Message: "string value is not valid UTF-8"}) {
				return true
			}
		}
	case gwy.TypeStringArray:
		if c.flags&FlagValidity != 0 {
			for i, s := range it.StringArray() {
				if !validUTF8(s) {
					if c.report(&Violation{Domain: gwy.DomainValidity, Invalid: InvalidUTF8String,
						Path: fmt.Sprintf("%s[%d]", it.Path(), i),
						Message: "string array element is not valid UTF-8"}) {
						return true
					}
				}
			}
		}
	case gwy.TypeObject:
		if checkObject(it.ObjectValue(), c) {
			return true
		}
	case gwy.TypeObjectArray:
		for _, child := range it.ObjectArray() {
			if checkObject(child, c) {
				return true
			}
		}
	}
	return false
}

// isIdentifier reports whether s matches [A-Za-z][A-Za-z0-9_]*.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		case c == '_':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// validUTF8 implements the legacy, pre-RFC-3629 UTF-8 grammar the
// original C library accepts: 1- to 6-byte sequences with correctly
// formed 0x80-0xBF continuation bytes, rather than Go's stricter
// unicode/utf8 (which rejects 5- and 6-byte forms and surrogate-range
// code points outright). Hand-rolled on purpose: there is no drop-in
// ecosystem library for this now-obsolete variant of the grammar.
func validUTF8(s string) bool {
	b := []byte(s)
	for len(b) > 0 {
		c := b[0]
		var size int
		switch {
		case c&0x80 == 0x00:
			size = 1
		case c&0xE0 == 0xC0:
			size = 2
		case c&0xF0 == 0xE0:
			size = 3
		case c&0xF8 == 0xF0:
			size = 4
		case c&0xFC == 0xF8:
			size = 5
		case c&0xFE == 0xFC:
			size = 6
		default:
			return false
		}
		if size > len(b) {
			return false
		}
		for i := 1; i < size; i++ {
			if b[i]&0xC0 != 0x80 {
				return false
			}
		}
		b = b[size:]
	}
	return true
}
