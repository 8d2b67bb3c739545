package diff

import (
	"fmt"
	"io"
	"io/ioutil"
	"sort"
	"strconv"
	"strings"

	"github.com/gwyddion/gwyfile-go/gwy"
)

type treesOptions struct {
	contextLines int
	namesOnly    bool
	verbose      bool
	output       io.Writer
}

// TreesOption configures Trees, following the functional options
// pattern.
type TreesOption func(*treesOptions)

func TreesOutput(w io.Writer) TreesOption {
	return func(o *treesOptions) { o.output = w }
}

func TreesContext(n int) TreesOption {
	return func(o *treesOptions) { o.contextLines = n }
}

func TreesNamesOnly(v bool) TreesOption {
	return func(o *treesOptions) { o.namesOnly = v }
}

func TreesVerbose(v bool) TreesOption {
	return func(o *treesOptions) { o.verbose = v }
}

// Trees writes a structural diff of two GWY object trees to the
// configured output (ioutil.Discard by default). It returns only an
// error, not whether anything changed. Items are matched by name,
// recursively; an item present under one name on one side and absent
// on the other is reported as wholly added or removed rather than
// matched against an unrelated item that happens to occupy the same
// list position. Elements of object-array items are matched by index.
func Trees(a, b *gwy.Object, options ...TreesOption) error {
	opts := treesOptions{contextLines: 3, output: ioutil.Discard}
	for _, opt := range options {
		opt(&opts)
	}
	return diffObjects(a, b, "/", &opts)
}

func diffObjects(a, b *gwy.Object, path string, opts *treesOptions) error {
	an, bn := objectNode(a), objectNode(b)
	same, err := an.SameAs(bn)
	if err != nil {
		return err
	}
	if same {
		return nil
	}

	output, err := Unified(metaNode(a), metaNode(b), opts.contextLines)
	if err != nil {
		return err
	}
	if output != "" {
		printHeader(opts, path+"+meta")
		if !opts.namesOnly {
			_, _ = fmt.Fprint(opts.output, output)
		}
	}

	aItems, bItems := itemsByName(a), itemsByName(b)
	for _, name := range orderedUnionOfNames(aItems, bItems) {
		if err := diffItems(aItems[name], bItems[name], path+name, opts); err != nil {
			return err
		}
	}
	return nil
}

func diffItems(a, b *gwy.Item, path string, opts *treesOptions) error {
	if a == nil || b == nil || a.Type() != b.Type() {
		if a == nil && b == nil {
			return nil
		}
		printHeader(opts, path)
		if !opts.namesOnly {
			if a == nil {
				_, _ = fmt.Fprintf(opts.output, "+ %s (%s)\n", path, b.Type())
			} else {
				_, _ = fmt.Fprintf(opts.output, "- %s (%s)\n", path, a.Type())
			}
		}
		return nil
	}

	switch a.Type() {
	case gwy.TypeObject:
		return diffObjects(a.ObjectValue(), b.ObjectValue(), path+"/", opts)
	case gwy.TypeObjectArray:
		return diffObjectArrays(a.ObjectArray(), b.ObjectArray(), path, opts)
	default:
		output, err := Unified(itemContentNode(a), itemContentNode(b), opts.contextLines)
		if err != nil {
			return err
		}
		if output != "" {
			printHeader(opts, path)
			if !opts.namesOnly {
				_, _ = fmt.Fprint(opts.output, output)
			}
		}
		return nil
	}
}

func diffObjectArrays(a, b []*gwy.Object, path string, opts *treesOptions) error {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		var ao, bo *gwy.Object
		if i < len(a) {
			ao = a[i]
		}
		if i < len(b) {
			bo = b[i]
		}
		elemPath := path + "[" + strconv.Itoa(i) + "]/"
		if ao == nil || bo == nil {
			if ao == nil && bo == nil {
				continue
			}
			printHeader(opts, elemPath)
			continue
		}
		if err := diffObjects(ao, bo, elemPath, opts); err != nil {
			return err
		}
	}
	return nil
}

func printHeader(opts *treesOptions, path string) {
	if !opts.verbose {
		return
	}
	if opts.namesOnly {
		_, _ = fmt.Fprintln(opts.output, path)
	} else {
		_, _ = fmt.Fprintf(opts.output, "--- %s\n", path)
	}
}

func itemsByName(obj *gwy.Object) map[string]*gwy.Item {
	m := make(map[string]*gwy.Item, obj.NItems())
	obj.Foreach(func(it *gwy.Item) { m[it.Name()] = it })
	return m
}

func orderedUnionOfNames(a, b map[string]*gwy.Item) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	var names []string
	for n := range a {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	for n := range b {
		if _, ok := seen[n]; !ok {
			seen[n] = struct{}{}
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}

// objectNode hashes an object's exact wire encoding, giving SameAs a
// Merkle-style shortcut: two subtrees that encode identically need no
// further comparison, however deep they are.
func objectNode(obj *gwy.Object) HashedNode {
	raw, err := gwy.EncodeObject(obj)
	if err != nil {
		// An object that fails to encode (e.g. payload overflowing a
		// uint32) is certainly not equal to anything; hash its address
		// instead, so it compares unequal to every other object.
		return NewHashedNode([]byte(fmt.Sprintf("%p", obj)), metaContent(obj))
	}
	return NewHashedNode(raw, metaContent(obj))
}

func metaNode(obj *gwy.Object) StringNode {
	return StringNode(metaContent(obj))
}

func metaContent(obj *gwy.Object) string {
	var b strings.Builder
	fmt.Fprintf(&b, "name %q\n", obj.Name())
	for _, it := range itemList(obj) {
		fmt.Fprintf(&b, "item %q %s\n", it.Name(), it.Type())
	}
	return b.String()
}

func itemList(obj *gwy.Object) []*gwy.Item {
	var items []*gwy.Item
	obj.Foreach(func(it *gwy.Item) { items = append(items, it) })
	return items
}

func itemContentNode(it *gwy.Item) StringNode {
	var b strings.Builder
	switch it.Type() {
	case gwy.TypeBool:
		fmt.Fprintf(&b, "%v\n", it.Bool())
	case gwy.TypeChar:
		fmt.Fprintf(&b, "%d\n", it.Char())
	case gwy.TypeInt32:
		fmt.Fprintf(&b, "%d\n", it.Int32())
	case gwy.TypeInt64:
		fmt.Fprintf(&b, "%d\n", it.Int64())
	case gwy.TypeDouble:
		fmt.Fprintf(&b, "%v\n", it.Double())
	case gwy.TypeString:
		fmt.Fprintf(&b, "%s\n", it.Str())
	case gwy.TypeCharArray:
		fmt.Fprintf(&b, "% x\n", it.CharArray())
	case gwy.TypeInt32Array:
		for _, v := range it.Int32Array() {
			fmt.Fprintf(&b, "%d\n", v)
		}
	case gwy.TypeInt64Array:
		for _, v := range it.Int64Array() {
			fmt.Fprintf(&b, "%d\n", v)
		}
	case gwy.TypeDoubleArray:
		for _, v := range it.DoubleArray() {
			fmt.Fprintf(&b, "%v\n", v)
		}
	case gwy.TypeStringArray:
		for _, s := range it.StringArray() {
			fmt.Fprintf(&b, "%s\n", s)
		}
	}
	return StringNode(b.String())
}
