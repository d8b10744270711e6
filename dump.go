package weld

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	dumpScopeColor = color.New(color.FgCyan, color.Bold)
	dumpKeyColor   = color.New(color.FgGreen)
	dumpKindColor  = color.New(color.FgYellow)
)

// DumpScope writes an indented rendering of the resolved scope tree:
// per scope its bindings in insertion order, its member-injection
// requests, and its children. Meant for debugging and golden tests;
// disable color output via color.NoColor.
func DumpScope(w io.Writer, s *Scope) {
	dumpScope(w, s, 0)
}

func dumpScope(w io.Writer, s *Scope, depth int) {
	indent := strings.Repeat("  ", depth)

	fmt.Fprintf(w, "%s%s\n", indent, dumpScopeColor.Sprintf("scope %s", s.Name()))
	for _, key := range s.Keys() {
		entry, _ := s.Binding(key)
		fmt.Fprintf(w, "%s  %s -> %s (%s)\n",
			indent,
			dumpKeyColor.Sprint(key.String()),
			dumpKindColor.Sprint(entry.Binding.Kind().String()),
			entry.Context)
	}

	if requests := s.MemberInjectRequests(); len(requests) > 0 {
		names := make([]string, 0, len(requests))
		for _, key := range requests {
			names = append(names, key.String())
		}
		fmt.Fprintf(w, "%s  member-inject: %s\n", indent, strings.Join(names, ", "))
	}

	for _, child := range s.Children() {
		dumpScope(w, child, depth+1)
	}
}
