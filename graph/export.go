package graph

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/c360/semkg/errors"
	"github.com/c360/semkg/vocabulary"
)

// Serialization format flags. Anything other than the two named formats
// falls back to the RDF/XML-like form on export.
const (
	FormatTurtle = "turtle"
	FormatJSONLD = "json-ld"
)

// Namespace prefixes used by the turtle-like form.
const (
	prefixEntity = "kg:"
	prefixVocab  = "vocab:"
)

// Export serializes the full statement set. "turtle" produces the canonical
// triple-per-line text form, "json-ld" the structured JSON form; any other
// flag falls back to an RDF/XML-like document. There is no partial or
// streaming export.
func (s *Store) Export(format string) string {
	switch format {
	case FormatTurtle:
		return s.exportTurtle()
	case FormatJSONLD:
		out, _ := s.exportJSON()
		return out
	default:
		return s.exportXML()
	}
}

// Save writes the statement set to path in the named format. Only the two
// round-trippable formats are accepted.
func (s *Store) Save(path, format string) error {
	var out string
	switch format {
	case FormatTurtle:
		out = s.exportTurtle()
	case FormatJSONLD:
		var err error
		out, err = s.exportJSON()
		if err != nil {
			return errors.Wrap(err, "Store", "Save", "serializing statements")
		}
	default:
		return errors.WrapInvalid(errors.ErrUnsupportedFormat,
			"Store", "Save", fmt.Sprintf("format %q", format))
	}

	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return errors.WrapTransient(err, "Store", "Save", "writing statement file")
	}

	s.logger.Info("store saved", "path", path, "format", format, "statements", s.Len())
	return nil
}

// Load reads a statement file written by Save and appends its statements to
// the store. The format is detected from the content: JSON documents start
// with '{', everything else parses as the turtle-like form.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapTransient(err, "Store", "Load", "reading statement file")
	}

	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "{") {
		err = s.loadJSON(data)
	} else {
		err = s.loadTurtle(trimmed)
	}
	if err != nil {
		return err
	}

	s.logger.Info("store loaded", "path", path, "statements", s.Len())
	return nil
}

// --- turtle-like form ---

func (s *Store) exportTurtle() string {
	var b strings.Builder
	fmt.Fprintf(&b, "@prefix %s <%s/> .\n", prefixEntity, vocabulary.EntityNamespace)
	fmt.Fprintf(&b, "@prefix %s <%s#> .\n\n", prefixVocab, vocabulary.VocabNamespace)

	for _, st := range s.statements {
		b.WriteString(prefixEntity)
		b.WriteString(st.Subject)
		b.WriteByte(' ')
		b.WriteString(prefixVocab)
		b.WriteString(st.Predicate)
		b.WriteByte(' ')
		if v, ok := st.Object.Value(); ok {
			fmt.Fprintf(&b, "%q^^%s", v.Lexical(), v.Datatype())
		} else {
			b.WriteString(prefixEntity)
			b.WriteString(st.Object.RefID())
		}
		b.WriteString(" .\n")
	}
	return b.String()
}

func (s *Store) loadTurtle(text string) error {
	for lineNo, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "@prefix") || strings.HasPrefix(line, "#") {
			continue
		}
		st, err := parseTurtleLine(line)
		if err != nil {
			return errors.WrapInvalid(err, "Store", "Load",
				fmt.Sprintf("parsing line %d", lineNo+1))
		}
		s.append(st)
	}
	return nil
}

func parseTurtleLine(line string) (Statement, error) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ".")
	line = strings.TrimSpace(line)

	subject, rest, ok := cutPrefixed(line, prefixEntity)
	if !ok {
		return Statement{}, fmt.Errorf("%w: missing subject", errors.ErrParsingFailed)
	}
	predicate, rest, ok := cutPrefixed(rest, prefixVocab)
	if !ok {
		return Statement{}, fmt.Errorf("%w: missing predicate", errors.ErrParsingFailed)
	}

	var object Object
	switch {
	case strings.HasPrefix(rest, `"`):
		lexical, datatype, err := parseQuotedLiteral(rest)
		if err != nil {
			return Statement{}, err
		}
		value, err := parseLexical(lexical, datatype)
		if err != nil {
			return Statement{}, err
		}
		object = Lit(value)
	case strings.HasPrefix(rest, prefixEntity):
		object = Ref(strings.TrimPrefix(rest, prefixEntity))
	default:
		return Statement{}, fmt.Errorf("%w: unrecognized object %q", errors.ErrParsingFailed, rest)
	}

	return Statement{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     "import",
		Timestamp:  time.Now().UTC(),
		Confidence: confidenceDirect,
	}, nil
}

// cutPrefixed consumes a whitespace-delimited token carrying the given
// namespace prefix and returns the bare name plus the remaining line.
func cutPrefixed(line, prefix string) (string, string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, prefix) {
		return "", "", false
	}
	token, rest, found := strings.Cut(line, " ")
	if !found {
		rest = ""
	}
	return strings.TrimPrefix(token, prefix), strings.TrimSpace(rest), true
}

// parseQuotedLiteral parses `"lexical"^^datatype` with %q-style escaping.
func parseQuotedLiteral(token string) (lexical, datatype string, err error) {
	end := -1
	for i := 1; i < len(token); i++ {
		if token[i] == '"' && token[i-1] != '\\' {
			end = i
			break
		}
	}
	if end < 0 {
		return "", "", fmt.Errorf("%w: unterminated literal", errors.ErrParsingFailed)
	}

	var unquoted string
	if _, scanErr := fmt.Sscanf(token[:end+1], "%q", &unquoted); scanErr != nil {
		return "", "", fmt.Errorf("%w: %v", errors.ErrParsingFailed, scanErr)
	}

	rest := token[end+1:]
	if strings.HasPrefix(rest, "^^") {
		datatype = strings.TrimSpace(strings.TrimPrefix(rest, "^^"))
	}
	return unquoted, datatype, nil
}

// --- structured JSON form ---

type jsonDocument struct {
	Format     string          `json:"format"`
	Version    int             `json:"version"`
	Statements []jsonStatement `json:"statements"`
}

type jsonStatement struct {
	Subject    string     `json:"subject"`
	Predicate  string     `json:"predicate"`
	Object     jsonObject `json:"object"`
	Source     string     `json:"source,omitempty"`
	Timestamp  time.Time  `json:"timestamp"`
	Confidence float64    `json:"confidence"`
}

type jsonObject struct {
	Ref      string `json:"ref,omitempty"`
	Value    string `json:"value,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

func (s *Store) exportJSON() (string, error) {
	doc := jsonDocument{
		Format:     "semkg-statements",
		Version:    1,
		Statements: make([]jsonStatement, 0, len(s.statements)),
	}
	for _, st := range s.statements {
		js := jsonStatement{
			Subject:    st.Subject,
			Predicate:  st.Predicate,
			Source:     st.Source,
			Timestamp:  st.Timestamp,
			Confidence: st.Confidence,
		}
		if v, ok := st.Object.Value(); ok {
			js.Object = jsonObject{Value: v.Lexical(), Datatype: v.Datatype()}
		} else {
			js.Object = jsonObject{Ref: st.Object.RefID()}
		}
		doc.Statements = append(doc.Statements, js)
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (s *Store) loadJSON(data []byte) error {
	var doc jsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return errors.WrapInvalid(err, "Store", "Load", "parsing JSON document")
	}

	for i, js := range doc.Statements {
		var object Object
		if js.Object.Ref != "" {
			object = Ref(js.Object.Ref)
		} else {
			value, err := parseLexical(js.Object.Value, js.Object.Datatype)
			if err != nil {
				return errors.WrapInvalid(err, "Store", "Load",
					fmt.Sprintf("parsing statement %d literal", i))
			}
			object = Lit(value)
		}

		source := js.Source
		if source == "" {
			source = "import"
		}
		timestamp := js.Timestamp
		if timestamp.IsZero() {
			timestamp = time.Now().UTC()
		}

		s.append(Statement{
			Subject:    js.Subject,
			Predicate:  js.Predicate,
			Object:     object,
			Source:     source,
			Timestamp:  timestamp,
			Confidence: js.Confidence,
		})
	}
	return nil
}

// --- RDF/XML-like fallback form (write-only) ---

func (s *Store) exportXML() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<rdf:RDF xmlns:rdf="http://www.w3.org/1999/02/22-rdf-syntax-ns#" xmlns:vocab="%s#">`+"\n",
		vocabulary.VocabNamespace)

	// Group statements by subject, subjects in first-seen order.
	var order []string
	bySubject := make(map[string][]Statement)
	for _, st := range s.statements {
		if _, seen := bySubject[st.Subject]; !seen {
			order = append(order, st.Subject)
		}
		bySubject[st.Subject] = append(bySubject[st.Subject], st)
	}

	for _, subject := range order {
		fmt.Fprintf(&b, "  <rdf:Description rdf:about=%q>\n", vocabulary.EntityIRI(subject))
		for _, st := range bySubject[subject] {
			if v, ok := st.Object.Value(); ok {
				fmt.Fprintf(&b, "    <vocab:%s rdf:datatype=%q>%s</vocab:%s>\n",
					st.Predicate, v.Datatype(), xmlEscape(v.Lexical()), st.Predicate)
			} else {
				fmt.Fprintf(&b, "    <vocab:%s rdf:resource=%q/>\n",
					st.Predicate, vocabulary.EntityIRI(st.Object.RefID()))
			}
		}
		b.WriteString("  </rdf:Description>\n")
	}

	b.WriteString("</rdf:RDF>\n")
	return b.String()
}

func xmlEscape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
