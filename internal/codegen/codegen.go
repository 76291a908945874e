// Package codegen emits Go dispatch metadata from compiled interface
// definitions. The emitted file is data-only: one dispatch.Table per
// definition, everything already validated by the compiler.
package codegen

import (
	"bytes"
	"fmt"
	"strconv"

	"golang.org/x/tools/imports"

	"github.com/mustermeiszer/ifc/internal/compiler"
)

const dispatchPkg = "github.com/mustermeiszer/ifc/pkg/dispatch"

// Generate renders the dispatch tables of defs into a single gofmt-formatted
// Go source file belonging to pkgName.
func Generate(defs []*compiler.Def, pkgName string) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "// Code generated by ifc. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", pkgName)
	fmt.Fprintf(&buf, "import %q\n\n", dispatchPkg)

	for _, def := range defs {
		writeTable(&buf, def)
	}

	src, err := imports.Process("ifc_generated.go", buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("formatting generated code: %w", err)
	}
	return src, nil
}

func writeTable(buf *bytes.Buffer, def *compiler.Def) {
	for _, doc := range def.Docs {
		fmt.Fprintf(buf, "// %s\n", doc)
	}
	fmt.Fprintf(buf, "var %s = dispatch.Table{\n", def.Name)
	fmt.Fprintf(buf, "\tName: %q,\n", def.Name)

	if def.Calls != nil && len(def.Calls.Calls) > 0 {
		fmt.Fprintf(buf, "\tCalls: []dispatch.CallMeta{\n")
		for i := range def.Calls.Calls {
			call := &def.Calls.Calls[i]
			fmt.Fprintf(buf, "\t\t{\n")
			fmt.Fprintf(buf, "\t\t\tIndex: %d,\n", call.CallIndex)
			fmt.Fprintf(buf, "\t\t\tName: %q,\n", call.Name)
			fmt.Fprintf(buf, "\t\t\tWeight: %q,\n", call.Weight)
			writeSelector(buf, call.Selector)
			writeArgs(buf, call.Args)
			writeDocs(buf, call.Docs)
			fmt.Fprintf(buf, "\t\t},\n")
		}
		fmt.Fprintf(buf, "\t},\n")
	}

	if def.Views != nil && len(def.Views.Views) > 0 {
		fmt.Fprintf(buf, "\tViews: []dispatch.ViewMeta{\n")
		for i := range def.Views.Views {
			view := &def.Views.Views[i]
			fmt.Fprintf(buf, "\t\t{\n")
			fmt.Fprintf(buf, "\t\t\tIndex: %d,\n", view.ViewIndex)
			fmt.Fprintf(buf, "\t\t\tName: %q,\n", view.Name)
			writeSelector(buf, view.Selector)
			writeArgs(buf, view.Args)
			writeDocs(buf, view.Docs)
			fmt.Fprintf(buf, "\t\t},\n")
		}
		fmt.Fprintf(buf, "\t},\n")
	}

	fmt.Fprintf(buf, "}\n\n")
}

func writeSelector(buf *bytes.Buffer, req compiler.SelectorReq) {
	switch req := req.(type) {
	case compiler.DefaultSelectorReq:
		fmt.Fprintf(buf, "\t\t\tSelector: &dispatch.SelectorMeta{Kind: dispatch.SelectorDefault, ReturnType: %q},\n",
			req.Return.String())
	case compiler.NamedSelectorReq:
		fmt.Fprintf(buf, "\t\t\tSelector: &dispatch.SelectorMeta{Kind: dispatch.SelectorNamed, Name: %q, ReturnType: %q},\n",
			req.Name, req.Return.String())
	}
}

func writeArgs(buf *bytes.Buffer, args []compiler.CallArg) {
	if len(args) == 0 {
		return
	}
	fmt.Fprintf(buf, "\t\t\tArgs: []dispatch.ArgMeta{\n")
	for _, arg := range args {
		fmt.Fprintf(buf, "\t\t\t\t{Name: %q, Type: %q, Compact: %s},\n",
			arg.Name, arg.Type.String(), strconv.FormatBool(arg.Compact))
	}
	fmt.Fprintf(buf, "\t\t\t},\n")
}

func writeDocs(buf *bytes.Buffer, docs []string) {
	if len(docs) == 0 {
		return
	}
	fmt.Fprintf(buf, "\t\t\tDocs: []string{\n")
	for _, doc := range docs {
		fmt.Fprintf(buf, "\t\t\t\t%q,\n", doc)
	}
	fmt.Fprintf(buf, "\t\t\t},\n")
}
