package join

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// DefectNameColumn and DefectDepthColumn are appended to every output row.
	DefectNameColumn  = "Defect_name"
	DefectDepthColumn = "Defect_depth"

	// NoDefect fills both annotation cells when no defect lies inside the tolerance.
	NoDefect = "0"
	// UnknownLabel is the Defect_name cell for a matched defect whose label is not in the code table.
	UnknownLabel = "unknown"
)

// defectCodes maps lower-cased defect labels, as written by the inspection
// software, to their numeric codes.
var defectCodes = map[string]int{
	"язва":               1, // ulcer
	"питтинг":            2, // pitting
	"поперечная канавка": 3, // transverse groove
}

// DefectCode is either a known numeric code or the unknown marker.
// The zero value is UnknownCode.
type DefectCode struct {
	code  int
	known bool
}

// UnknownCode is the code of any label outside the table.
var UnknownCode = DefectCode{}

// KnownCode wraps a numeric code from the table.
func KnownCode(code int) DefectCode {
	return DefectCode{code: code, known: true}
}

// Int returns the numeric code and whether it is known.
func (c DefectCode) Int() (int, bool) { return c.code, c.known }

// IsKnown reports whether c came from the code table.
func (c DefectCode) IsKnown() bool { return c.known }

func (c DefectCode) String() string {
	if !c.known {
		return UnknownLabel
	}
	return strconv.Itoa(c.code)
}

// ConvertLabel maps a raw defect label to its code. Matching is case-insensitive
// under Russian casing rules; anything outside the table yields UnknownCode.
func ConvertLabel(label string) DefectCode {
	if code, ok := defectCodes[cases.Lower(language.Russian).String(label)]; ok {
		return KnownCode(code)
	}
	return UnknownCode
}

// LabelCode is one entry of the code table.
type LabelCode struct {
	Label string `yaml:"label"`
	Code  int    `yaml:"code"`
}

// Codes returns the code table ordered by code.
func Codes() []LabelCode {
	out := make([]LabelCode, 0, len(defectCodes))
	for label, code := range defectCodes {
		out = append(out, LabelCode{Label: label, Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Annotation is the pair of cells appended to a value row.
type Annotation struct {
	Matched bool
	Code    DefectCode
	Depth   float64
}

// NameField returns the Defect_name cell.
func (a Annotation) NameField() string {
	if !a.Matched {
		return NoDefect
	}
	return a.Code.String()
}

// DepthField returns the Defect_depth cell.
func (a Annotation) DepthField() string {
	if !a.Matched {
		return NoDefect
	}
	return FormatDepth(a.Depth)
}

// FormatDepth renders a depth as the shortest decimal that round-trips, with a
// period separator. Integral values keep a ".0" suffix so "2.0" stays "2.0".
func FormatDepth(depth float64) string {
	s := strconv.FormatFloat(depth, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}
