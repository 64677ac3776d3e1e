package pwgen

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Class is a character class a password can draw from.
type Class int

const (
	Lowercase Class = iota
	Uppercase
	Digits
	Custom

	numClasses
)

var classInfo = [numClasses]struct {
	name     string
	alphabet string
}{
	Lowercase: {"lowercase", "abcdefghijklmnopqrstuvwxyz"},
	Uppercase: {"uppercase", "ABCDEFGHIJKLMNOPQRSTUVWXYZ"},
	Digits:    {"digits", "0123456789"},
	Custom:    {"custom", ""},
}

var classAliases = map[string]Class{
	"lower":     Lowercase,
	"lowercase": Lowercase,
	"upper":     Uppercase,
	"uppercase": Uppercase,
	"digits":    Digits,
	"numbers":   Digits,
	"custom":    Custom,
	"symbols":   Custom,
}

// Alphabet returns the fixed alphabet of c. Custom has none; its characters
// come from the user.
func (c Class) Alphabet() string {
	if c < 0 || c >= numClasses {
		return ""
	}
	return classInfo[c].alphabet
}

func (c Class) String() string {
	if c < 0 || c >= numClasses {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classInfo[c].name
}

// ParseClass returns the class named by name, accepting a few common aliases.
func ParseClass(name string) (Class, error) {
	c, ok := classAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown character class %q", name)
	}
	return c, nil
}

// ClassSet is a set of character classes.
type ClassSet uint8

// NewClassSet returns the set containing classes.
func NewClassSet(classes ...Class) ClassSet {
	var s ClassSet
	for _, c := range classes {
		s = s.With(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s ClassSet) Has(c Class) bool {
	return c >= 0 && c < numClasses && s&(1<<uint(c)) != 0
}

// With returns the set with c added.
func (s ClassSet) With(c Class) ClassSet {
	if c < 0 || c >= numClasses {
		return s
	}
	return s | 1<<uint(c)
}

// Without returns the set with c removed.
func (s ClassSet) Without(c Class) ClassSet {
	if c < 0 || c >= numClasses {
		return s
	}
	return s &^ (1 << uint(c))
}

// Classes lists the members in the order Lowercase, Uppercase, Digits, Custom.
func (s ClassSet) Classes() []Class {
	var classes []Class
	for c := Lowercase; c < numClasses; c++ {
		if s.Has(c) {
			classes = append(classes, c)
		}
	}
	return classes
}

func (s ClassSet) String() string {
	names := make([]string, 0, numClasses)
	for _, c := range s.Classes() {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}

// Dedup returns the code points of s with duplicates removed, keeping the
// first occurrence of each.
func Dedup(s string) []rune {
	seen := make(map[rune]struct{}, len(s))
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Charset is the working alphabet of a request together with the characters
// every password built from it must contain.
type Charset struct {
	Alphabet []rune
	Seeds    []rune
}

// Build assembles the alphabet for the enabled classes and draws one seed from
// each class's own alphabet. Digits get a second seed once length reaches
// longPassword. An enabled Custom class with an empty alphabet contributes
// nothing.
func Build(classes ClassSet, custom string, length int, s *Sampler) (Charset, error) {
	var cs Charset
	for _, c := range classes.Classes() {
		var alphabet []rune
		if c == Custom {
			alphabet = Dedup(custom)
		} else {
			alphabet = []rune(c.Alphabet())
		}
		if len(alphabet) == 0 {
			continue
		}
		cs.Alphabet = append(cs.Alphabet, alphabet...)
		if len(cs.Alphabet) > maxSample {
			return Charset{}, ErrAlphabetTooLarge
		}

		seeds := 1
		if c == Digits && length >= longPassword {
			seeds = 2
		}
		for i := 0; i < seeds; i++ {
			idx, err := s.Sample(len(alphabet))
			if err != nil {
				return Charset{}, err
			}
			cs.Seeds = append(cs.Seeds, alphabet[idx])
		}
	}
	if len(cs.Alphabet) == 0 {
		return Charset{}, ErrNoClassSelected
	}
	return cs, nil
}
