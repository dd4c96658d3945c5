package comment

import (
	"fmt"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
)

const (
	InfoHeader string = "EXPORT INFO"
	WarnHeader string = "EXPORT WARN"
)

// Info reports a message about a node to the console printer.
// The source code is left untouched.
func Info(pkg *decorator.Package, node dst.Node, message string, additionalInfo ...string) {
	printer.Add(pkg, node, InfoHeader, message, additionalInfo...)
}

// Warn prepends a warning comment to the node so it shows up in the generated diff,
// and reports it to the console printer. The message is the main comment, and
// additionalInfo is a list of optional comments that will be printed on new lines
// below the main comment.
func Warn(pkg *decorator.Package, node dst.Node, message string, additionalInfo ...string) {
	comments := []string{
		fmt.Sprintf("// %s: %s", WarnHeader, message),
	}
	for _, info := range additionalInfo {
		comments = append(comments, fmt.Sprintf("// %s", info))
	}

	decs := node.Decorations()
	if len(decs.Start) > 0 {
		comments = append(comments, "//")
	}

	decs.Start.Prepend(comments...)
	printer.Add(pkg, node, WarnHeader, message, additionalInfo...)
}
