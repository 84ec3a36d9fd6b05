package question

import (
	"fmt"
	"strings"
)

// TemplateError reports a malformed template or a template/word-set mismatch.
// It is raised at construction time and is never retried.
type TemplateError struct {
	Detail string
}

// Error returns a readable message for the template problem.
func (e *TemplateError) Error() string {
	return "template error: " + e.Detail
}

// Render substitutes bindings into a template. Placeholders use the
// {name} form; doubled braces escape literal braces. A placeholder with no
// binding is a TemplateError.
func Render(template string, bindings map[string]string) (string, error) {
	return scanTemplate(template, func(name string) (string, error) {
		value, ok := bindings[name]
		if !ok {
			return "", &TemplateError{Detail: fmt.Sprintf("placeholder {%s} has no binding", name)}
		}
		return value, nil
	})
}

// Placeholders returns the distinct placeholder names in a template in
// first-appearance order.
func Placeholders(template string) ([]string, error) {
	var names []string
	seen := map[string]struct{}{}
	_, err := scanTemplate(template, func(name string) (string, error) {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
		return "", nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// scanTemplate walks a template, calling resolve for each placeholder and
// assembling the output from literals and resolved values.
func scanTemplate(template string, resolve func(name string) (string, error)) (string, error) {
	var out strings.Builder
	for i := 0; i < len(template); {
		switch template[i] {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				out.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return "", &TemplateError{Detail: fmt.Sprintf("unclosed placeholder at offset %d", i)}
			}
			name := template[i+1 : i+1+end]
			if err := checkPlaceholderName(name); err != nil {
				return "", err
			}
			value, err := resolve(name)
			if err != nil {
				return "", err
			}
			out.WriteString(value)
			i += end + 2
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				out.WriteByte('}')
				i += 2
				continue
			}
			return "", &TemplateError{Detail: fmt.Sprintf("unmatched '}' at offset %d", i)}
		default:
			out.WriteByte(template[i])
			i++
		}
	}
	return out.String(), nil
}

// checkPlaceholderName rejects names that cannot round-trip through configs
// and rendered text unambiguously.
func checkPlaceholderName(name string) error {
	if name == "" {
		return &TemplateError{Detail: "empty placeholder name"}
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_':
		default:
			return &TemplateError{Detail: fmt.Sprintf("invalid placeholder name %q", name)}
		}
	}
	return nil
}
