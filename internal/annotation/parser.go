package annotation

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"
	"time"
)

// Regex patterns for parsing annotations
var (
	// Matches: banlist:ignore or banlist:ignore-file
	directiveRe = regexp.MustCompile(`banlist:(ignore-file|ignore)\b(.*)$`)

	// Matches metadata: key="value"
	metadataRe = regexp.MustCompile(`(\w+)="([^"]*)"`)

	// Closing delimiters of block comments that trail an annotation
	commentCloseRe = regexp.MustCompile(`\s*(-->|\*/)\s*$`)
)

// Parser parses annotations from text files
type Parser struct {
	resolver Resolver
}

// NewParser creates a new Parser with the given resolver. A nil resolver
// resolves against the default validator registry.
func NewParser(resolver Resolver) *Parser {
	if resolver == nil {
		resolver = NewRegistryResolver(nil)
	}
	return &Parser{resolver: resolver}
}

// ParseFile parses all annotations from a file, one per line at most
func (p *Parser) ParseFile(filename string, src []byte) []*Annotation {
	var annotations []*Annotation

	scanner := bufio.NewScanner(bytes.NewReader(src))
	scanner.Buffer(make([]byte, 0, 64*1024), len(src)+1)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if !strings.Contains(text, "banlist:") {
			continue
		}
		if ann := p.parseAnnotation(text, filename, line); ann != nil {
			annotations = append(annotations, ann)
		}
	}

	return annotations
}

// parseAnnotation parses a single annotation from a line
func (p *Parser) parseAnnotation(text, filename string, line int) *Annotation {
	matches := directiveRe.FindStringSubmatch(text)
	if matches == nil {
		return nil
	}

	ann := &Annotation{
		Filename: filename,
		Line:     line,
		Scope:    ScopeLine,
	}
	if matches[1] == "ignore-file" {
		ann.Scope = ScopeFile
	}

	rest := strings.TrimSpace(commentCloseRe.ReplaceAllString(matches[2], ""))
	if rest == "" {
		return ann
	}

	// A trailing "# reason" documents the annotation
	specPart, reasonPart, _ := strings.Cut(rest, "#")
	ann.Reason = strings.TrimSpace(reasonPart)

	for _, m := range metadataRe.FindAllStringSubmatch(specPart, -1) {
		switch m[1] {
		case "reason":
			ann.Reason = m[2]
		case "ticket":
			ann.Ticket = m[2]
		case "expires":
			if t, err := time.Parse("2006-01-02", m[2]); err == nil {
				ann.Expires = &t
			}
		}
	}

	ann.Validators = p.parseValidatorSpecs(metadataRe.ReplaceAllString(specPart, ""))
	return ann
}

// parseValidatorSpecs parses a comma separated list of validator names or
// IDs. "all" and an empty list both mean every validator; unknown names are
// dropped.
func (p *Parser) parseValidatorSpecs(input string) []string {
	var names []string
	for _, spec := range strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	}) {
		if spec == "all" {
			return nil
		}
		if name, ok := p.resolver.Resolve(spec); ok {
			names = append(names, name)
		}
	}
	return names
}
