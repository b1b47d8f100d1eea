package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/jokarl/banlist/internal/types"
)

// JUnitRenderer renders output in JUnit XML format
type JUnitRenderer struct {
	// Now returns the suite timestamp; nil means time.Now
	Now func() time.Time
}

// junitTestSuites is the root element for JUnit XML
type junitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Errors     int              `xml:"errors,attr"`
	Time       float64          `xml:"time,attr"`
	TestSuites []junitTestSuite `xml:"testsuite"`
}

// junitTestSuite represents a testsuite element in JUnit XML
type junitTestSuite struct {
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Errors    int             `xml:"errors,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	Timestamp string          `xml:"timestamp,attr"`
	TestCases []junitTestCase `xml:"testcase"`
}

// junitTestCase represents a testcase element in JUnit XML
type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	Classname string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
	Skipped   *junitSkipped `xml:"skipped,omitempty"`
}

// junitFailure represents a failure element in JUnit XML
type junitFailure struct {
	Message string `xml:"message,attr"`
	Type    string `xml:"type,attr"`
	Content string `xml:",chardata"`
}

// junitSkipped represents a skipped element in JUnit XML
type junitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// Render writes the check result in JUnit XML format. Each validator is a
// test suite; each finding is a failed (or skipped, when ignored) test case.
func (r *JUnitRenderer) Render(w io.Writer, result *types.CheckResult) error {
	byValidator := make(map[string][]*types.Finding)
	for _, f := range result.Findings {
		byValidator[f.ValidatorName] = append(byValidator[f.ValidatorName], f)
	}

	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	timestamp := now().Format(time.RFC3339)

	names := make([]string, 0, len(byValidator))
	for name := range byValidator {
		names = append(names, name)
	}
	sort.Strings(names)

	var testSuites []junitTestSuite
	totalTests, totalFailures, totalErrors := 0, 0, 0

	for _, name := range names {
		suite := junitTestSuite{
			Name:      toolName + "." + name,
			Timestamp: timestamp,
		}

		for _, f := range byValidator[name] {
			tc := junitTestCase{
				Name:      testCaseName(f),
				Classname: toolName + "." + name,
			}

			if f.Ignored {
				tc.Skipped = &junitSkipped{Message: f.IgnoreReason}
				suite.Skipped++
			} else {
				tc.Failure = &junitFailure{
					Message: f.Message,
					Type:    f.Severity.String(),
					Content: failureContent(f),
				}
				if f.Severity == types.SeverityError {
					suite.Errors++
					totalErrors++
				} else {
					suite.Failures++
					totalFailures++
				}
			}

			suite.TestCases = append(suite.TestCases, tc)
			suite.Tests++
			totalTests++
		}

		testSuites = append(testSuites, suite)
	}

	// No findings is a single passing test
	if len(testSuites) == 0 {
		testSuites = append(testSuites, junitTestSuite{
			Name:      toolName,
			Tests:     1,
			Timestamp: timestamp,
			TestCases: []junitTestCase{{Name: "Banned word detection", Classname: toolName}},
		})
		totalTests = 1
	}

	output := junitTestSuites{
		Name:       toolName,
		Tests:      totalTests,
		Failures:   totalFailures,
		Errors:     totalErrors,
		TestSuites: testSuites,
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

func testCaseName(f *types.Finding) string {
	name := f.ValidatorName
	if f.Word != "" {
		name = fmt.Sprintf("%s '%s'", name, f.Word)
	}
	if f.Location != nil {
		return fmt.Sprintf("%s at %s:%d", name, f.Location.Filename, f.Location.Line)
	}
	return name
}

func failureContent(f *types.Finding) string {
	content := f.Message
	if f.Detail != "" {
		content += "\n\n" + f.Detail
	}
	return content
}
