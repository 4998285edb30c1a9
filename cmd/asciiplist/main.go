// Command asciiplist parses an ASCII property list and prints its
// structure, adapted from cmd/experimental/plait/plait.go's
// format-conversion driver — this one only ever reads the single
// dialect this module understands, and writes either a table or an
// indented tree instead of re-encoding to another format.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	flags "github.com/jessevdk/go-flags"
	"github.com/olekukonko/tablewriter"

	"github.com/asciiplist/asciiplist"
)

type options struct {
	GNUStep bool `short:"g" long:"gnustep" description:"parse the GNUStep dialect (typed literals, backslash escapes)"`
	Table   bool `short:"t" long:"table" description:"print top-level dictionary entries as a table instead of a tree"`
	Args    struct {
		Path string `positional-arg-name:"file" description:"plist file to read; '-' or omitted reads stdin"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}

	data, err := readInput(opts.Args.Path)
	if err != nil {
		bail(err)
	}

	var parseOpts []plist.Option
	if opts.GNUStep {
		parseOpts = append(parseOpts, plist.WithStyle(plist.GNUStepStyle))
	}
	parseOpts = append(parseOpts, plist.WithTrace(func(kind, message string, offset int) {
		fmt.Fprintf(os.Stderr, "asciiplist: %s: %s (offset %d)\n", kind, message, offset)
	}))

	obj, err := plist.Parse(data, parseOpts...)
	if err != nil {
		bail(err)
	}

	if opts.Table {
		printTable(obj)
		return
	}
	printTree(obj, 0)
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return readAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func readAll(f *os.File) ([]byte, error) {
	var buf []byte
	chunk := make([]byte, 32*1024)
	for {
		n, err := f.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return buf, err
		}
	}
}

func printTable(obj plist.Object) {
	dict, ok := obj.(*plist.Dictionary)
	if !ok {
		fmt.Println("asciiplist: -t/--table requires a top-level dictionary")
		printTree(obj, 0)
		return
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Kind", "Value"})
	dict.Range(func(key string, v plist.Object) {
		table.Append([]string{key, v.Kind().String(), summarize(v)})
	})
	table.Render()
}

func summarize(obj plist.Object) string {
	switch o := obj.(type) {
	case *plist.Array:
		return fmt.Sprintf("(%d items)", o.Len())
	case *plist.Dictionary:
		keys := o.Keys()
		sort.Strings(keys)
		return fmt.Sprintf("{%s}", strings.Join(keys, ", "))
	case plist.Data:
		return o.Base64()
	default:
		return fmt.Sprint(plist.ToNative(o))
	}
}

func printTree(obj plist.Object, depth int) {
	indent := strings.Repeat("  ", depth)
	switch o := obj.(type) {
	case *plist.Dictionary:
		o.Range(func(key string, v plist.Object) {
			fmt.Printf("%s%s (%s):\n", indent, key, v.Kind())
			printTree(v, depth+1)
		})
	case *plist.Array:
		o.Range(func(i int, v plist.Object) {
			fmt.Printf("%s[%d] (%s):\n", indent, i, v.Kind())
			printTree(v, depth+1)
		})
	default:
		fmt.Printf("%s%v\n", indent, plist.ToNative(obj))
	}
}

func bail(err error) {
	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(1)
}
