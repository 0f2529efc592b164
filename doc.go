// Package flattable converts the flat table notation into wiki tables.
//
// Writing wide tables in a row-oriented markup is error-prone. The flat
// notation lets an author write one block per record with one line per
// column, and the package transposes it into table markup:
//
//	<flattable key="Name" a="Column A" b="Column B"=n/a>
//	Row 1:
//	  @a: first value
//	  @b: a long value that
//	  continues on the next line
//	Row 2:
//	  @a: second value
//	</flattable>
//
// # Pipeline
//
// [ParseTag] tokenizes the opening tag into [Attr] values and [Resolve]
// folds them into [Options]: reserved names such as key, header, twidth,
// norender and sort set options, c=a,b declares legacy columns, and any
// other key declares a column with its heading and an optional default.
// [NewScanner] picks the body grammar from the options and yields one
// [Record] per key line. [Parse] runs all of it and returns a [Table];
// [Table.Markup] assembles the wiki markup.
//
// # Grammars
//
// With the key option set the body uses the flat grammar: a line ending in a
// colon starts a record, "@field: value" lines set fields, and lines sharing
// the indent of the last field line continue it. Without it the body uses
// the legacy item-table grammar: "_Key" lines start records, field=value
// lines set fields, and a <tablecell> ... </tablecell> span may run over
// several lines. Markers and the delimiter are options.
//
// # Output
//
// [Table.Prepare] applies the literal-source escape (norender) or the
// sortable wrapper, and [Table.Render] hands the markup to a [Renderer] and
// prepends the width marker. [PatchWidth] is the document-wide pass that
// moves width markers onto the following table tag.
//
// [Write] and [Marshal] write a table in any [Format]: Wiki, HTML,
// Markdown, Text, CSV, TSV, JSON, JSONL, YAML or [GoTemplate]. [WriteStream]
// writes row-independent formats while the body is being scanned.
//
// # Documents
//
// [Processor] expands every block of a whole document, and [MarkdownToHTML]
// renders a Markdown document and patches its widths.
//
// # Errors
//
// Parsing never fails. Writers return the sentinel errors
// [ErrUnsupportedFormat], [ErrInvalidTemplate] and [ErrRender], wrapped.
package flattable
