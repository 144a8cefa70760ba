// Package parser builds the semantic model of a line-oriented API dump.
//
// A dump holds one declaration per line:
//
//	package org.mozilla.geckoview {
//	  public class GeckoSession {
//	    ctor public GeckoSession();
//	    method @UiThread public void close();
//	    field public static final int LOAD_FLAGS_NONE = 0;
//	  }
//	}
//
// Lines may be prefixed with version-control blame and may be mapped to
// their original source location through an APIMap.
package parser

import (
	"io"
	"regexp"
	"strings"

	apierrors "github.com/toyz/apilint/internal/errors"
	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/utils"
)

// DefaultFileName is the location file name used for dump lines the API map does not cover
const DefaultFileName = "api.txt"

var blamePattern = regexp.MustCompile(`^([a-z0-9]{7,}) \(<([^>]+)>.+?\) (.+?)$`)

// ClassFunc receives each class once all of its members have been read
type ClassFunc func(*models.Class)

// Option configures a Parser
type Option func(*Parser)

// WithFileName sets the fallback file name of locations
func WithFileName(name string) Option {
	return func(p *Parser) {
		p.fileName = name
	}
}

// WithAPIMap maps dump lines to source locations
func WithAPIMap(m APIMap) Option {
	return func(p *Parser) {
		p.apiMap = m
	}
}

// WithDiagnostics routes parser diagnostics to d
func WithDiagnostics(d *utils.DiagnosticSystem) Option {
	return func(p *Parser) {
		p.diagnostics = d
	}
}

// WithClassCallback invokes fn for every class in dump order
func WithClassCallback(fn ClassFunc) Option {
	return func(p *Parser) {
		p.onClass = fn
	}
}

// Parser reads API dumps. A Parser holds no per-dump state and can be reused.
type Parser struct {
	fileName    string
	apiMap      APIMap
	diagnostics *utils.DiagnosticSystem
	onClass     ClassFunc
	reader      *utils.FileReader
}

// NewParser creates a parser
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		fileName:    DefaultFileName,
		diagnostics: utils.NewSilentDiagnostics(),
		reader:      utils.NewFileReader(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile parses the dump at path
func (p *Parser) ParseFile(path string) (models.API, error) {
	rc, err := p.reader.Open(path)
	if err != nil {
		return nil, apierrors.WrapFileSystemError("open", path, err)
	}
	defer rc.Close()

	return p.Parse(rc)
}

// ParseString parses an in-memory dump
func (p *Parser) ParseString(dump string) (models.API, error) {
	return p.Parse(strings.NewReader(dump))
}

// Parse reads a dump from r. Declarations that cannot be parsed are
// reported as ParseErrors collected in a MultipleErrors; the class they
// belong to is dropped and the remaining classes are still returned.
func (p *Parser) Parse(r io.Reader) (models.API, error) {
	s := &stream{
		parser:  p,
		api:     models.API{},
		imports: models.Imports{},
		errs:    apierrors.NewMultipleErrors(),
	}

	scanner := utils.NewLineScanner(r)
	for scanner.Scan() {
		s.line++
		s.consume(scanner.Text())
	}
	s.flush()

	if err := scanner.Err(); err != nil {
		return s.api, apierrors.WrapFileSystemError("read", p.fileName, err)
	}

	p.diagnostics.Debug("parsed %d classes from %s", len(s.api), p.fileName)
	return s.api, s.errs.ErrorOrNil()
}

type stream struct {
	parser   *Parser
	api      models.API
	imports  models.Imports
	errs     *apierrors.MultipleErrors
	line     int
	pkg      *models.Package
	class    *models.Class
	skipping bool
}

func (s *stream) consume(text string) {
	raw := strings.TrimRight(text, " \t\r\n\v\f")

	var blame *models.Blame
	if match := blamePattern.FindStringSubmatch(raw); match != nil {
		blame = &models.Blame{Commit: match[1], Author: match[2]}
		raw = match[3]
	}

	origin := models.Origin{
		Location: s.parser.apiMap.Locate(s.parser.fileName, s.line),
		Blame:    blame,
	}

	switch {
	case strings.HasPrefix(raw, "import"):
		s.imports.Add(strings.TrimSuffix(strings.TrimSpace(strings.TrimPrefix(raw, "import")), ";"))

	case strings.HasPrefix(raw, "package"):
		pkg, err := newPackage(raw, origin)
		if err != nil {
			s.fail(err, origin)
			return
		}
		s.pkg = pkg

	case strings.HasPrefix(raw, "  ") && strings.HasSuffix(raw, "{"):
		s.flush()
		class, err := newClass(s.pkg, raw, origin, s.imports)
		if err != nil {
			s.fail(err, origin)
			s.skipping = true
			return
		}
		s.class, s.skipping = class, false
		s.api[class.FullName] = class

	case strings.HasPrefix(raw, "    ctor"):
		s.member(raw, origin, func(c *models.Class) *apierrors.ParseError {
			m, err := newMethod(c, raw, origin, s.imports, true, len(c.Ctors))
			if err == nil {
				c.Ctors = append(c.Ctors, m)
			}
			return err
		})

	case strings.HasPrefix(raw, "    method"):
		s.member(raw, origin, func(c *models.Class) *apierrors.ParseError {
			m, err := newMethod(c, raw, origin, s.imports, false, len(c.Methods))
			if err == nil {
				c.Methods = append(c.Methods, m)
			}
			return err
		})

	case strings.HasPrefix(raw, "    field"), strings.HasPrefix(raw, "    enum_constant"):
		s.member(raw, origin, func(c *models.Class) *apierrors.ParseError {
			f, err := newField(c, raw, origin, s.imports, len(c.Fields))
			if err == nil {
				c.Fields = append(c.Fields, f)
			}
			return err
		})
	}
}

func (s *stream) member(raw string, origin models.Origin, add func(*models.Class) *apierrors.ParseError) {
	if s.skipping {
		return
	}
	if s.class == nil {
		s.fail(apierrors.NewParseError("member declared outside of a class", raw), origin)
		return
	}

	if err := add(s.class); err != nil {
		s.fail(err.WithClass(s.class.FullName), origin)
		delete(s.api, s.class.FullName)
		s.class, s.skipping = nil, true
	}
}

// flush hands the class being built to the callback
func (s *stream) flush() {
	if s.class != nil && s.parser.onClass != nil {
		s.parser.onClass(s.class)
	}
	s.class = nil
}

func (s *stream) fail(err *apierrors.ParseError, origin models.Origin) {
	err.WithLocation(apierrors.SourceLocation{
		File:   origin.Location.File,
		Line:   origin.Location.Line,
		Column: origin.Location.Column,
	})
	s.parser.diagnostics.Warn("%s: %s", origin.Location, err.Message)
	s.errs.Add(err)
}
