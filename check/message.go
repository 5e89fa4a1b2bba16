package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Render replaces %name% placeholders in template with vars[name].
// Unknown placeholders are left as they are, and %% renders a literal %.
func Render(template string, vars map[string]string) string {
	if !strings.Contains(template, "%") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 < len(template) && template[i+1] == '%' {
			b.WriteByte('%')
			i++
			continue
		}
		end := strings.IndexByte(template[i+1:], '%')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		name := template[i+1 : i+1+end]
		if v, ok := vars[name]; ok && isPlaceholderName(name) {
			b.WriteString(v)
			i += end + 1
			continue
		}
		b.WriteByte('%')
	}
	return b.String()
}

func isPlaceholderName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// Templates maps error keys to message templates.
type Templates map[string]string

// With returns a copy of t where every key in overrides replaces the default.
// Overriding a key t does not define is a configuration error.
func (t Templates) With(overrides map[string]string) (Templates, error) {
	result := make(Templates, len(t))
	for k, v := range t {
		result[k] = v
	}
	var unknown []string
	for k, v := range overrides {
		if _, ok := t[k]; !ok {
			unknown = append(unknown, k)
			continue
		}
		result[k] = v
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, errors.Wrapf(ErrInvalidArgument, "no message template for keys %s", strings.Join(unknown, ", "))
	}
	return result, nil
}

// MustWith is With that panics on unknown keys. Use it for package-level defaults.
func (t Templates) MustWith(overrides map[string]string) Templates {
	r, err := t.With(overrides)
	if err != nil {
		panic(err)
	}
	return r
}

// Fail returns an invalid outcome using the template for key.
func (t Templates) Fail(key string) Outcome {
	tmpl, ok := t[key]
	if !ok {
		panic(fmt.Sprintf("no message template for %q", key))
	}
	return Invalid(key, tmpl)
}

// ValueString renders value the way messages show %value%.
func ValueString(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}
