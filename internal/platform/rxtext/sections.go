package rxtext

import (
	"regexp"
	"strings"
)

var (
	numberedItemRe = regexp.MustCompile(`\n\s*(\d+)\.\s*`)
	bulletItemRe   = regexp.MustCompile(`\n\s*[-*]\s*`)

	// A line consisting solely of an upper-case medication name, possibly
	// followed by strength or form tokens in the same register.
	capsNameLineRe = regexp.MustCompile(`(?m)^[ \t]*[A-Z][A-Z0-9/-]{3,}(?:[ \t]+[A-Za-z0-9/.-]+)*[ \t]*$`)
)

// SplitSections breaks prescription text into one chunk per medication
// entry. It tries numbered lists first, then bullet lists, then lines that
// look like an upper-case medication name. Text before the first marker
// (letterhead, patient details) is not part of any section. The splitter
// never fails; when no structure is recognized it returns no sections.
func SplitSections(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if sections := splitNumbered(text); len(sections) > 0 {
		return sections
	}
	if sections := splitBulleted(text); len(sections) > 0 {
		return sections
	}
	return splitByCapsNames(text)
}

// splitNumbered splits on "1.", "2." item markers, keeping the number with
// its section.
func splitNumbered(text string) []string {
	// A leading newline lets a list that starts at position 0 match too.
	padded := "\n" + text
	matches := numberedItemRe.FindAllStringSubmatchIndex(padded, -1)
	if len(matches) == 0 {
		return nil
	}

	var sections []string
	for i, m := range matches {
		start := m[1]
		end := len(padded)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(padded[start:end])
		if body == "" {
			continue
		}
		number := padded[m[2]:m[3]]
		sections = append(sections, number+". "+body)
	}
	return sections
}

// splitBulleted splits on "-" or "*" item markers.
func splitBulleted(text string) []string {
	padded := "\n" + text
	matches := bulletItemRe.FindAllStringIndex(padded, -1)
	if len(matches) == 0 {
		return nil
	}

	var sections []string
	for i, m := range matches {
		end := len(padded)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		body := strings.TrimSpace(padded[m[1]:end])
		if body != "" {
			sections = append(sections, body)
		}
	}
	return sections
}

// splitByCapsNames groups lines into sections, each opened by a line that
// is nothing but an upper-case medication name.
func splitByCapsNames(text string) []string {
	var sections []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			sections = append(sections, strings.Join(current, "\n"))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case capsNameLineRe.MatchString(line):
			flush()
			current = []string{trimmed}
		case len(current) > 0 && trimmed != "":
			current = append(current, trimmed)
		case len(current) > 0 && trimmed == "":
			// A blank line closes the running section.
			flush()
		}
	}
	flush()
	return sections
}
