// Package fieldpath parses and evaluates dotted document paths such as
// medicalPlans[0].planDesign.deductible. Paths address values inside the
// nested survey document and render as human-readable labels on findings.
package fieldpath

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Step is one path element: a named key or an array index.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path is a parsed field path.
type Path []Step

// Parse tokenizes a path string. Grammar: segment ("." segment | "[" int "]")*.
// Indices are zero-based and must be non-negative integers.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty field path")
	}
	var path Path
	i := 0
	expectKey := true
	for i < len(raw) {
		switch {
		case raw[i] == '.':
			if expectKey {
				return nil, fmt.Errorf("field path %q: unexpected '.' at position %d", raw, i)
			}
			i++
			expectKey = true
		case raw[i] == '[':
			if expectKey {
				return nil, fmt.Errorf("field path %q: unexpected '[' at position %d", raw, i)
			}
			end := strings.IndexByte(raw[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("field path %q: unclosed '[' at position %d", raw, i)
			}
			idx, err := strconv.Atoi(raw[i+1 : i+end])
			if err != nil || idx < 0 {
				return nil, fmt.Errorf("field path %q: invalid index %q", raw, raw[i+1:i+end])
			}
			path = append(path, Step{Index: idx, IsIndex: true})
			i += end + 1
		default:
			if !expectKey {
				return nil, fmt.Errorf("field path %q: expected '.' or '[' at position %d", raw, i)
			}
			end := i
			for end < len(raw) && raw[end] != '.' && raw[end] != '[' {
				end++
			}
			key := raw[i:end]
			if key == "" {
				return nil, fmt.Errorf("field path %q: empty segment at position %d", raw, i)
			}
			path = append(path, Step{Key: key})
			i = end
			expectKey = false
		}
	}
	if expectKey {
		return nil, fmt.Errorf("field path %q: trailing '.'", raw)
	}
	return path, nil
}

// String renders the path back to its canonical form.
func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.IsIndex {
			fmt.Fprintf(&b, "[%d]", s.Index)
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Key)
	}
	return b.String()
}

// Lookup resolves the path against a generic document. The second return is
// false when any step is missing, out of range, or traverses a non-container.
func Lookup(doc map[string]any, raw string) (any, bool) {
	path, err := Parse(raw)
	if err != nil {
		return nil, false
	}
	var cur any = doc
	for _, step := range path {
		if step.IsIndex {
			arr, ok := cur.([]any)
			if !ok || step.Index >= len(arr) {
				return nil, false
			}
			cur = arr[step.Index]
			continue
		}
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[step.Key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Humanize renders a path as a display label. Keys become title-cased words
// and zero-based indices become 1-based ordinals attached to the preceding
// key, so medicalPlans[0].planDesign.deductible reads
// "Medical Plans 1 - Plan Design - Deductible". Unparseable paths are
// returned unchanged.
func Humanize(raw string) string {
	path, err := Parse(raw)
	if err != nil {
		return raw
	}
	var labels []string
	for _, step := range path {
		if step.IsIndex {
			if len(labels) == 0 {
				labels = append(labels, strconv.Itoa(step.Index+1))
				continue
			}
			labels[len(labels)-1] += " " + strconv.Itoa(step.Index+1)
			continue
		}
		labels = append(labels, splitWords(step.Key))
	}
	return strings.Join(labels, " - ")
}

// splitWords turns a camelCase key into spaced title-cased words. Runs of
// capitals stay together so hsaCompatible reads "Hsa Compatible" and
// outOfPocketMax reads "Out Of Pocket Max".
func splitWords(key string) string {
	var b strings.Builder
	for i, r := range key {
		if i == 0 {
			b.WriteRune(unicode.ToUpper(r))
			continue
		}
		if unicode.IsUpper(r) {
			prev := rune(key[i-1])
			if !unicode.IsUpper(prev) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
