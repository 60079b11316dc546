package infer

import (
	"strings"
	"unicode"
)

// namePattern maps a field-name fragment to a canned description. Matching
// is case-insensitive and first-match-wins in declaration order.
type namePattern struct {
	match func(string) bool
	desc  string
}

func contains(frag string) func(string) bool {
	return func(name string) bool { return strings.Contains(name, frag) }
}

func suffix(frag string) func(string) bool {
	return func(name string) bool { return strings.HasSuffix(name, frag) }
}

func prefix(frag string) func(string) bool {
	return func(name string) bool { return strings.HasPrefix(name, frag) }
}

var namePatterns = []namePattern{
	{contains("email"), "Email address"},
	{func(n string) bool { return strings.HasSuffix(n, "_id") || n == "id" }, "Identifier"},
	{prefix("is_"), "Boolean flag"},
	{prefix("has_"), "Boolean flag"},
	{suffix("_at"), "Date/time value"},
	{contains("date"), "Date/time value"},
	{contains("url"), "URL/link"},
	{contains("link"), "URL/link"},
	{contains("phone"), "Phone number"},
	{contains("address"), "Address"},
	{contains("name"), "Name"},
	{contains("status"), "Status value"},
	{contains("count"), "Count"},
	{contains("price"), "Amount"},
	{contains("amount"), "Amount"},
	{contains("description"), "Description"},
}

// FieldDescription generates a short human-readable description for a field
// name: a dictionary of common fragments first, a humanized identifier as
// the fallback.
func FieldDescription(name string) string {
	lower := strings.ToLower(name)
	for _, p := range namePatterns {
		if p.match(lower) {
			return p.desc
		}
	}
	return humanize(name)
}

// humanize splits camelCase and snake_case identifiers into words and
// capitalizes the first letter: "firstName" -> "First name".
func humanize(name string) string {
	var words []string
	var cur strings.Builder

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}

	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			flush()
			cur.WriteRune(unicode.ToLower(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	if len(words) == 0 {
		return name
	}
	out := []rune(strings.Join(words, " "))
	out[0] = unicode.ToUpper(out[0])
	return string(out)
}
