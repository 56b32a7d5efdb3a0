package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-site/models"
)

type fieldKind int

const (
	textField fieldKind = iota
	intField
	floatField
	// listField is entered comma separated and sent as a JSON array.
	listField
	// choiceField cycles through options with left, right or space.
	choiceField
)

type fieldSpec struct {
	key     string
	label   string
	kind    fieldKind
	value   string
	options []string
}

type formField struct {
	fieldSpec
	input textinput.Model
}

// form edits one record. id is uuid.Nil when creating.
type form struct {
	title  string
	tab    string
	id     uuid.UUID
	fields []formField
	focus  int
	err    string
}

func newForm(title, tab string, id uuid.UUID, specs []fieldSpec) *form {
	f := &form{title: title, tab: tab, id: id}
	for _, spec := range specs {
		input := textinput.New()
		input.Prompt = ""
		input.CharLimit = 2000
		input.Cursor.SetMode(cursor.CursorStatic)
		input.SetValue(spec.value)
		f.fields = append(f.fields, formField{fieldSpec: spec, input: input})
	}
	if len(f.fields) > 0 {
		f.fields[0].input.Focus()
	}
	return f
}

func (f *form) move(delta int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	if field := &f.fields[f.focus]; field.kind == choiceField {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "right", " ":
				field.cycle(1)
			case "left":
				field.cycle(-1)
			}
		}
		return nil
	}
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

// body converts the inputs to a JSON ready map.
func (f *form) body() (map[string]any, error) {
	out := make(map[string]any, len(f.fields))
	for _, field := range f.fields {
		raw := strings.TrimSpace(field.input.Value())
		switch field.kind {
		case intField:
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return nil, fmt.Errorf("%s must be a whole number", field.label)
			}
			out[field.key] = n
		case floatField:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("%s must be a number", field.label)
			}
			out[field.key] = n
		case choiceField:
			if !slices.Contains(field.options, raw) {
				return nil, fmt.Errorf("%s must be one of %s", field.label, strings.Join(field.options, ", "))
			}
			out[field.key] = raw
		case listField:
			list := models.SplitImages(raw)
			if list == nil {
				list = []string{}
			}
			out[field.key] = list
		default:
			out[field.key] = raw
		}
	}
	return out, nil
}

// cycle moves a choice field to the next or previous option. An unknown
// value starts over from the first option.
func (field *formField) cycle(delta int) {
	n := len(field.options)
	if n == 0 {
		return
	}
	i := slices.Index(field.options, field.input.Value())
	if i < 0 {
		field.input.SetValue(field.options[0])
		return
	}
	field.input.SetValue(field.options[(i+delta+n)%n])
}

func (f *form) view(t theme) string {
	var b strings.Builder
	b.WriteString(t.title.Render(f.title))
	b.WriteString("\n\n")
	for i, field := range f.fields {
		label := field.label
		if i == f.focus {
			label = "› " + label
		} else {
			label = "  " + label
		}
		b.WriteString(t.label.Render(label))
		if field.kind == choiceField {
			b.WriteString("‹ " + field.input.Value() + " ›")
		} else {
			b.WriteString(field.input.View())
		}
		b.WriteString("\n")
	}
	if f.err != "" {
		b.WriteString("\n")
		b.WriteString(t.errorText.Render(f.err))
		b.WriteString("\n")
	}
	return b.String()
}

func categoryFields(c models.Category) []fieldSpec {
	return []fieldSpec{
		{key: "key", label: "Key", value: c.Key},
		{key: "title", label: "Title", value: c.Title},
		{key: "description", label: "Description", value: c.Description},
	}
}

func clientFields(c models.Client) []fieldSpec {
	return []fieldSpec{
		{key: "name", label: "Name", value: c.Name},
		{key: "category_key", label: "Category key", value: c.CategoryKey},
		{key: "description", label: "Description", value: c.Description},
		{key: "logo_url", label: "Logo URL", value: c.LogoURL},
	}
}

func projectFields(p models.Project) []fieldSpec {
	return []fieldSpec{
		{key: "client_name", label: "Client name", value: p.ClientName},
		{key: "title", label: "Title", value: p.Title},
		{key: "tag", label: "Tag", value: p.Tag},
		{key: "description", label: "Description", value: p.Description},
		{key: "images", label: "Images (a, b, c)", kind: listField, value: strings.Join(p.Images, ", ")},
		{key: "link", label: "Link", value: p.Link},
	}
}

var statusOptions = []string{
	string(models.StatusApproved),
	string(models.StatusPending),
	string(models.StatusRejected),
}

func testimonialFields(t models.Testimonial) []fieldSpec {
	rating := models.DefaultRating
	status := models.StatusApproved
	if t.ID != uuid.Nil {
		rating = t.Rating
		status = t.Status
	}
	return []fieldSpec{
		{key: "name", label: "Name", value: t.Name},
		{key: "role", label: "Role", value: t.Role},
		{key: "company", label: "Company", value: t.Company},
		{key: "rating", label: "Rating (0-5)", kind: intField, value: strconv.Itoa(rating)},
		{key: "quote", label: "Quote", value: t.Quote},
		{key: "status", label: "Status", kind: choiceField, value: string(status), options: statusOptions},
		{key: "logo_url", label: "Logo URL", value: t.LogoURL},
	}
}

func settingsFields(s models.Settings) []fieldSpec {
	format := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []fieldSpec{
		{key: "marquee_a_seconds", label: "Marquee A (s)", kind: floatField, value: format(s.MarqueeASeconds)},
		{key: "marquee_b_seconds", label: "Marquee B (s)", kind: floatField, value: format(s.MarqueeBSeconds)},
		{key: "glow_intensity", label: "Glow (0-1)", kind: floatField, value: format(s.GlowIntensity)},
		{key: "parallax_intensity", label: "Parallax (0-40)", kind: floatField, value: format(s.ParallaxIntensity)},
	}
}

// settingsFromBody fills the editable settings fields from a settings form
// body. The form only produces float64 values for these keys.
func settingsFromBody(body map[string]any) models.Settings {
	s := models.DefaultSettings()
	s.MarqueeASeconds, _ = body["marquee_a_seconds"].(float64)
	s.MarqueeBSeconds, _ = body["marquee_b_seconds"].(float64)
	s.GlowIntensity, _ = body["glow_intensity"].(float64)
	s.ParallaxIntensity, _ = body["parallax_intensity"].(float64)
	return s
}
