package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gwyddion/gwyfile-go/gwy"
	log "github.com/sirupsen/logrus"
)

func runRead(args []string) {
	fs := newFlagSet("read")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		exitUsage("read: expected exactly one file argument")
	}
	setLevel()

	obj, err := gwy.ReadFile(fs.Arg(0))
	if err != nil {
		log.Fatalf("could not read %q: %v", fs.Arg(0), err)
	}
	printObject(os.Stdout, obj, 0)
}

func printObject(w io.Writer, obj *gwy.Object, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s%s/\n", indent, obj.Name())
	obj.Foreach(func(it *gwy.Item) {
		printItem(w, it, depth+1)
	})
}

func printItem(w io.Writer, it *gwy.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	switch it.Type() {
	case gwy.TypeObject:
		printObject(w, it.ObjectValue(), depth)
	case gwy.TypeObjectArray:
		fmt.Fprintf(w, "%s%s[]/\n", indent, it.Name())
		for i, child := range it.ObjectArray() {
			fmt.Fprintf(w, "%s  [%d]\n", indent, i)
			printObject(w, child, depth+2)
		}
	default:
		fmt.Fprintf(w, "%s%s = %s (%s)\n", indent, it.Name(), itemText(it), it.Type())
	}
}

func itemText(it *gwy.Item) string {
	switch it.Type() {
	case gwy.TypeBool:
		return fmt.Sprintf("%v", it.Bool())
	case gwy.TypeChar:
		return fmt.Sprintf("%q", it.Char())
	case gwy.TypeInt32:
		return fmt.Sprintf("%d", it.Int32())
	case gwy.TypeInt64:
		return fmt.Sprintf("%d", it.Int64())
	case gwy.TypeDouble:
		return fmt.Sprintf("%g", it.Double())
	case gwy.TypeString:
		return fmt.Sprintf("%q", it.Str())
	case gwy.TypeCharArray:
		return fmt.Sprintf("<%d bytes>", len(it.CharArray()))
	case gwy.TypeInt32Array:
		return fmt.Sprintf("<%d int32s>", len(it.Int32Array()))
	case gwy.TypeInt64Array:
		return fmt.Sprintf("<%d int64s>", len(it.Int64Array()))
	case gwy.TypeDoubleArray:
		return fmt.Sprintf("<%d doubles>", len(it.DoubleArray()))
	case gwy.TypeStringArray:
		return fmt.Sprintf("<%d strings>", len(it.StringArray()))
	default:
		return "?"
	}
}
