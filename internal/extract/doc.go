// Package extract turns program source and configuration text into the
// structured facts the graph builders consume.
//
// Java sources are parsed with tree-sitter; only declaration-level structure
// is extracted (package, imports, type declarations, annotations, fields,
// constructor and injected-setter parameters). No type resolution happens
// here: declared type names are passed through as written and the component
// builder applies its naming-convention resolution.
//
// Bean definition XML is decoded with the standard library's encoding/xml;
// any XML document whose root element is not <beans> is skipped.
//
// The Scanner walks a project tree, prunes configured directories, applies
// include/exclude globs and parses candidate files in parallel. Bad files
// become diagnostics, not failures.
package extract
