// Package message renders templated text for delivery to observers: token
// interpolation keyed to a point-of-view entity's pronouns, and
// category/visibility-filtered fan-out.
package message

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/udisondev/la2go/internal/model"
	"github.com/udisondev/la2go/internal/world"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TokenValue is either a literal string or a reference to an entity whose
// Description/Pronouns supply the rendered text.
type TokenValue struct {
	str    string
	entity world.EntityID
	isEnt  bool
}

// StringToken wraps a literal string value.
func StringToken(s string) TokenValue { return TokenValue{str: s} }

// EntityToken wraps an entity reference value.
func EntityToken(e world.EntityID) TokenValue { return TokenValue{entity: e, isEnt: true} }

// Tokens maps token names to their values for one interpolation call.
type Tokens map[string]TokenValue

// Format is a parsed message template. Places for tokens are written
// ${name}, ${name.type} (type one of name/they/them/their/theirs/
// themself), or ${name.plural/singular}.
type Format struct {
	chunks []chunk
}

type chunkKind int

const (
	chunkString chunkKind = iota
	chunkPlain
	chunkTyped
	chunkPluralSingular
)

type chunk struct {
	kind              chunkKind
	literal           string // chunkString
	name              string // chunkPlain, chunkTyped, chunkPluralSingular
	capitalize        bool
	tokenType         string // chunkTyped: name/they/them/their/theirs/themself
	plural, singular  string // chunkPluralSingular
}

var tokenPattern = regexp.MustCompile(`\$\{([A-Za-z0-9_]+)(?:\.([^}]+))?\}`)

var titleCaser = cases.Title(language.English)

// capitalizeFirst upper-cases only the first rune, leaving the rest alone
// (so "it hits" -> "It hits", not "IT hits").
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = []rune(titleCaser.String(string(r[0])))[0]
	return string(r)
}

// Parse compiles a template string into a Format. An error indicates a
// malformed token (e.g. an empty ${}).
func Parse(template string) (*Format, error) {
	var chunks []chunk
	last := 0
	for _, loc := range tokenPattern.FindAllStringSubmatchIndex(template, -1) {
		if loc[0] > last {
			chunks = append(chunks, chunk{kind: chunkString, literal: template[last:loc[0]]})
		}
		name := template[loc[2]:loc[3]]
		if name == "" {
			return nil, fmt.Errorf("message: empty token name at offset %d", loc[0])
		}

		hasSpec := loc[4] != -1
		if !hasSpec {
			chunks = append(chunks, chunk{kind: chunkPlain, name: name, capitalize: isUpperFirst(name)})
			last = loc[1]
			continue
		}

		spec := template[loc[4]:loc[5]]
		if slash := strings.Index(spec, "/"); slash >= 0 {
			chunks = append(chunks, chunk{
				kind:     chunkPluralSingular,
				name:     name,
				plural:   spec[:slash],
				singular: spec[slash+1:],
			})
			last = loc[1]
			continue
		}

		switch strings.ToLower(spec) {
		case "name", "they", "them", "their", "theirs", "themself":
			chunks = append(chunks, chunk{
				kind:       chunkTyped,
				name:       name,
				tokenType:  strings.ToLower(spec),
				capitalize: isUpperFirst(spec),
			})
		default:
			return nil, fmt.Errorf("message: unknown token type %q in ${%s.%s}", spec, name, spec)
		}
		last = loc[1]
	}
	if last < len(template) {
		chunks = append(chunks, chunk{kind: chunkString, literal: template[last:]})
	}
	return &Format{chunks: chunks}, nil
}

func isUpperFirst(s string) bool {
	return s != "" && s[0] >= 'A' && s[0] <= 'Z'
}

// MustParse is Parse but panics on error, for compile-time-constant
// templates defined in Go source.
func MustParse(template string) *Format {
	f, err := Parse(template)
	if err != nil {
		panic(err)
	}
	return f
}

// Interpolate renders the format for povEntity's point of view: if a typed
// token refers to povEntity itself, "you"/"your"/"yourself" are used
// instead of third-person pronouns.
func Interpolate(s *world.Store, povEntity world.EntityID, tokens Tokens, f *Format) (string, error) {
	var b strings.Builder
	for _, c := range f.chunks {
		switch c.kind {
		case chunkString:
			b.WriteString(c.literal)
		case chunkPlain:
			v, ok := tokens[c.name]
			if !ok {
				return "", fmt.Errorf("message: missing token %q", c.name)
			}
			if v.isEnt {
				return "", fmt.Errorf("message: token %q is an entity, want a string for plain interpolation", c.name)
			}
			text := v.str
			if c.capitalize {
				text = capitalizeFirst(text)
			}
			b.WriteString(text)
		case chunkTyped:
			v, ok := tokens[c.name]
			if !ok {
				return "", fmt.Errorf("message: missing token %q", c.name)
			}
			if !v.isEnt {
				return "", fmt.Errorf("message: token %q is a string, want an entity for .%s", c.name, c.tokenType)
			}
			text := renderTyped(s, v.entity, povEntity, c.tokenType)
			if c.capitalize {
				text = capitalizeFirst(text)
			}
			b.WriteString(text)
		case chunkPluralSingular:
			v, ok := tokens[c.name]
			if !ok {
				return "", fmt.Errorf("message: missing token %q", c.name)
			}
			if !v.isEnt {
				return "", fmt.Errorf("message: token %q is a string, want an entity for plural/singular form", c.name)
			}
			if v.entity == povEntity || isPlural(s, v.entity) {
				b.WriteString(c.plural)
			} else {
				b.WriteString(c.singular)
			}
		}
	}
	return b.String(), nil
}

func isPlural(s *world.Store, e world.EntityID) bool {
	p, ok := world.Get[model.Pronouns](s, e)
	return ok && p.Subject == model.Plural
}

func renderTyped(s *world.Store, entity, povEntity world.EntityID, tokenType string) string {
	if entity == povEntity {
		switch tokenType {
		case "name", "they":
			return "you"
		case "them":
			return "you"
		case "their":
			return "your"
		case "theirs":
			return "yours"
		case "themself":
			return "yourself"
		}
	}

	switch tokenType {
	case "name":
		if d, ok := world.Get[model.Description](s, entity); ok {
			return d.Name
		}
		return "something"
	}

	pronouns, ok := world.Get[model.Pronouns](s, entity)
	if !ok {
		pronouns = model.Neuter
	}
	switch tokenType {
	case "they":
		return pronouns.They
	case "them":
		return pronouns.Them
	case "their":
		return pronouns.Their
	case "theirs":
		return pronouns.Theirs
	case "themself":
		return pronouns.Themself
	default:
		return ""
	}
}
