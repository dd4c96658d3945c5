package comment

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"github.com/newrelic/go-easy-modifiers/internal/util"
)

// getPosition creates a human readable string representing the position of a node in an application.
// In order to improve readability, the filename will be localized to the root of the application.
// The format of the string is as follows based on the positional info available:
//
// Info 					|		Formatting
// ------------------------------------------------------------------
// filename, line, column	|	filename line:column
// filename, line			|	filename line
// filename					|	filename
// invalid or empty			|	""
func getPosition(pkg *decorator.Package, node dst.Node, appRoot string) string {
	pos := util.Position(node, pkg)
	if pos == nil || !pos.IsValid() {
		return ""
	}

	path := localize(pos.Filename, appRoot)
	if pos.Line != 0 {
		path += " " + strconv.Itoa(pos.Line)
		if pos.Column != 0 {
			path += ":" + strconv.Itoa(pos.Column)
		}
	}
	return path
}

// localize trims everything before appRoot from filename.
func localize(filename, appRoot string) string {
	split := strings.Split(filename, string(filepath.Separator))
	for i, segment := range split {
		if segment == appRoot {
			return strings.Join(split[i:], string(filepath.Separator))
		}
	}
	return filename
}
