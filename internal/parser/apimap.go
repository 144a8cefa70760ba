package parser

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/toyz/apilint/internal/models"
	"github.com/toyz/apilint/internal/utils"
)

// APIMap holds one source location per dump line, in the form
// "path/to/File.java:line:column". Line i of the map describes line i of the dump.
type APIMap []string

var locationPattern = regexp.MustCompile(`^(.*?):(\d+):(\d+)$`)

// ReadAPIMap reads a location map
func ReadAPIMap(r io.Reader) (APIMap, error) {
	lines, err := utils.ScanLines(r)
	if err != nil {
		return nil, err
	}
	return APIMap(lines), nil
}

// LoadAPIMap reads a location map from disk
func LoadAPIMap(reader *utils.FileReader, path string) (APIMap, error) {
	lines, err := reader.ReadLines(path)
	if err != nil {
		return nil, err
	}
	return APIMap(lines), nil
}

// Locate returns the source location of the 1-based dump line. Lines the map
// does not cover, or covers with an unparseable entry, resolve to
// fallback:line:0.
func (m APIMap) Locate(fallback string, line int) models.Location {
	loc := models.Location{File: fallback, Line: line}
	if line < 1 || line > len(m) {
		return loc
	}

	match := locationPattern.FindStringSubmatch(strings.TrimSpace(m[line-1]))
	if match == nil {
		return loc
	}

	l, errL := strconv.Atoi(match[2])
	c, errC := strconv.Atoi(match[3])
	if errL != nil || errC != nil {
		return loc
	}
	return models.Location{File: match[1], Line: l, Column: c}
}
