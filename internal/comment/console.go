package comment

import (
	"path/filepath"

	"github.com/dave/dst"
	"github.com/dave/dst/decorator"
	"go.uber.org/zap"
)

type record struct {
	header         string
	position       string
	message        string
	additionalInfo []string
}

type ConsolePrinter struct {
	appRoot string
	logger  *zap.Logger
	records []record
}

// initialize this if you want to use it at the start of the program
var printer *ConsolePrinter

func EnableConsolePrinter(applicationPath string, logger *zap.Logger) {
	printer = &ConsolePrinter{
		appRoot: filepath.Base(applicationPath),
		logger:  logger,
	}
}

func WriteAll() {
	if printer != nil {
		printer.Flush()
	}
}

// Add records a message about a node that will be logged when the printer is flushed.
// The message is the main text, and additionalInfo is a list of optional details.
func (p *ConsolePrinter) Add(pkg *decorator.Package, node dst.Node, header, message string, additionalInfo ...string) {
	if p == nil {
		return
	}

	p.records = append(p.records, record{
		header:         header,
		position:       getPosition(pkg, node, p.appRoot),
		message:        message,
		additionalInfo: additionalInfo,
	})
}

// Flush logs all recorded messages and empties the printer.
func (p *ConsolePrinter) Flush() {
	if p == nil {
		return
	}

	logger := p.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, r := range p.records {
		fields := []zap.Field{zap.String("header", r.header)}
		if r.position != "" {
			fields = append(fields, zap.String("position", r.position))
		}
		if len(r.additionalInfo) > 0 {
			fields = append(fields, zap.Strings("details", r.additionalInfo))
		}

		if r.header == WarnHeader {
			logger.Warn(r.message, fields...)
		} else {
			logger.Info(r.message, fields...)
		}
	}
	p.records = nil
}
