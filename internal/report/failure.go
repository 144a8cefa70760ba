// Package report holds lint findings and renders them as JSON or terminal text.
package report

import (
	"fmt"
	"strings"

	"github.com/toyz/apilint/internal/models"
)

// Failure is one finding against a class or one of its declarations
type Failure struct {
	Signature string
	Error     bool
	Rule      string // empty for findings without a rule code
	Message   string
	Class     *models.Class
	Detail    models.Element // nil for class-level findings
	Location  models.Location
	Blame     *models.Blame
}

// NewFailure builds a finding. Its location and blame come from the detail
// when there is one, otherwise from the class.
func NewFailure(class *models.Class, detail models.Element, isError bool, rule, msg string) *Failure {
	f := &Failure{
		Signature: Signature(class, detail, msg),
		Error:     isError,
		Rule:      rule,
		Message:   msg,
		Class:     class,
		Detail:    detail,
		Location:  class.Location,
		Blame:     class.Blame,
	}
	if detail != nil {
		origin := detail.Where()
		f.Location, f.Blame = origin.Location, origin.Blame
	}
	return f
}

// Signature is the dedup key of a finding. Deprecating a declaration does
// not change the signature of findings against it.
func Signature(class *models.Class, detail models.Element, msg string) string {
	sig := fmt.Sprintf("%s-%s-%s", class.FullName, describe(detail), msg)
	return strings.ReplaceAll(sig, " deprecated ", " ")
}

// Head is the severity and rule prefix, e.g. "Error M6" or "Warning"
func (f *Failure) Head() string {
	head := "Warning"
	if f.Error {
		head = "Error"
	}
	if f.Rule != "" {
		head += " " + f.Rule
	}
	return head
}

// Chain returns the detail followed by the declarations enclosing it, up to
// but excluding the class: an argument annotation yields the annotation, the
// argument and then the method.
func (f *Failure) Chain() []models.Element {
	var chain []models.Element
	for detail := f.Detail; detail != nil; {
		chain = append(chain, detail)
		switch d := detail.(type) {
		case *models.Annotation:
			detail = f.enclosing(d.Owner)
		case *models.Argument:
			detail = f.enclosing(d.Owner)
		default:
			detail = nil
		}
	}
	return chain
}

func (f *Failure) enclosing(ref models.OwnerRef) models.Element {
	if ref.Kind == models.OwnerClass {
		return nil
	}
	return f.Class.Resolve(ref)
}

// PackageText is the raw package declaration of the failing class
func (f *Failure) PackageText() string {
	if f.Class.Package == nil {
		return ""
	}
	return f.Class.Package.String()
}

func describe(e models.Element) string {
	if e == nil {
		return ""
	}
	return e.String()
}
