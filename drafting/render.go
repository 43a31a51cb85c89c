package drafting

import (
	"strings"
	"time"
)

// Clause is a titled block of contract prose appended after the template body.
type Clause struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AppendClause appends c unless a clause with the same ID is already present.
// It reports whether c was added.
func AppendClause(list []Clause, c Clause) ([]Clause, bool) {
	for _, existing := range list {
		if existing.ID == c.ID {
			return list, false
		}
	}
	return append(list, c), true
}

// Renderer substitutes placeholders and appends clause blocks.
// Location, when set, is the zone instant-valued dates are shown in.
type Renderer struct {
	Location *time.Location
}

// Render renders body with the zero Renderer.
func Render(body string, fields FieldSet, clauses []Clause) string {
	return Renderer{}.Render(body, fields, clauses)
}

// Render replaces every vocabulary placeholder in body and in each clause
// body with its formatted value, then appends the clauses in order as
// "\n\nTITLE:\nbody" blocks. Placeholders outside the vocabulary are left
// as written.
func (r Renderer) Render(body string, fields FieldSet, clauses []Clause) string {
	replacer := newReplacer(r.Replacements(fields))

	var sb strings.Builder
	sb.WriteString(replacer.Replace(body))

	for _, c := range clauses {
		sb.WriteString("\n\n")
		sb.WriteString(strings.ToUpper(c.Title))
		sb.WriteString(":\n")
		sb.WriteString(replacer.Replace(c.Body))
	}

	return sb.String()
}

// Replacements builds the placeholder-to-value map for the full vocabulary,
// under both the "{key}" and "{@key}" spellings.
func (r Renderer) Replacements(fields FieldSet) map[string]string {
	out := make(map[string]string, len(Vocabulary)*2)
	for _, f := range Vocabulary {
		v := r.format(f, fields.Get(f.source()))
		out[f.Token()] = v
		out[f.EditorToken()] = v
	}
	return out
}

// Replacements builds the placeholder map with the zero Renderer.
func Replacements(fields FieldSet) map[string]string {
	return Renderer{}.Replacements(fields)
}

func (r Renderer) format(f Field, v string) string {
	switch f.Kind {
	case KindUpper:
		return strings.ToUpper(v)
	case KindLongDate:
		return FormatDate(v, true, r.Location)
	case KindDate:
		return FormatDate(v, false, r.Location)
	case KindAmount:
		return FormatAmount(ParseAmount(v))
	case KindWords:
		return strings.ToUpper(NumberToWords(ParseAmount(v)))
	default:
		return v
	}
}

// newReplacer performs a single left-to-right pass, so substituted values
// are never rescanned for placeholders.
func newReplacer(m map[string]string) *strings.Replacer {
	pairs := make([]string, 0, len(m)*2)
	for token, value := range m {
		pairs = append(pairs, token, value)
	}
	return strings.NewReplacer(pairs...)
}
