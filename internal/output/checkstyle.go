package output

import (
	"encoding/xml"
	"io"
	"sort"

	"github.com/jokarl/banlist/internal/types"
)

// CheckstyleRenderer renders output in Checkstyle XML format
type CheckstyleRenderer struct{}

// checkstyleOutput is the root element for Checkstyle XML
type checkstyleOutput struct {
	XMLName xml.Name         `xml:"checkstyle"`
	Version string           `xml:"version,attr"`
	Files   []checkstyleFile `xml:"file"`
}

// checkstyleFile represents a file element in Checkstyle XML
type checkstyleFile struct {
	Name   string            `xml:"name,attr"`
	Errors []checkstyleError `xml:"error"`
}

// checkstyleError represents an error element in Checkstyle XML
type checkstyleError struct {
	Line     int    `xml:"line,attr"`
	Column   int    `xml:"column,attr"`
	Severity string `xml:"severity,attr"`
	Message  string `xml:"message,attr"`
	Source   string `xml:"source,attr"`
}

// Render writes the check result in Checkstyle XML format
func (r *CheckstyleRenderer) Render(w io.Writer, result *types.CheckResult) error {
	fileMap := make(map[string][]checkstyleError)

	for _, f := range result.Findings {
		if f.Ignored {
			continue
		}

		filename, line, col := position(f)
		fileMap[filename] = append(fileMap[filename], checkstyleError{
			Line:     line,
			Column:   col,
			Severity: mapToCheckstyleSeverity(f.Severity),
			Message:  f.Message,
			Source:   toolName + "." + f.ValidatorName,
		})
	}

	filenames := make([]string, 0, len(fileMap))
	for name := range fileMap {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)

	output := checkstyleOutput{
		Version: "1.0",
		Files:   make([]checkstyleFile, 0, len(fileMap)),
	}
	for _, name := range filenames {
		output.Files = append(output.Files, checkstyleFile{Name: name, Errors: fileMap[name]})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// mapToCheckstyleSeverity maps a banlist severity to a Checkstyle severity
func mapToCheckstyleSeverity(s types.Severity) string {
	switch s {
	case types.SeverityError:
		return "error"
	case types.SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}
