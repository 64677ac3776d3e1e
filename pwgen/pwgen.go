// Package pwgen generates random passwords that contain at least one character
// from each requested character class.
package pwgen

import (
	"io"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// MinLength and MaxLength bound the length of a generated password.
	MinLength = 8
	MaxLength = 128

	// MaxAttempts is the number of passwords assembled for one request before
	// the last one is accepted even if HasForbiddenRun rejects it.
	MaxAttempts = 10

	// longPassword is the length from which two digit seeds are drawn.
	longPassword = 12
)

var (
	// ErrInvalidArgument is matched by every input validation error returned
	// from this package.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoClassSelected is returned when the enabled classes contribute no
	// characters.
	ErrNoClassSelected error = argError("Please select at least one option")

	// ErrLengthOutOfRange is returned for lengths outside [MinLength, MaxLength].
	ErrLengthOutOfRange error = argError("Length must be between 8 and 128")

	// ErrAlphabetTooLarge is returned when the combined alphabet holds more
	// characters than the sampler can index with a single byte.
	ErrAlphabetTooLarge error = argError("Too many characters selected, at most 256 are supported")

	// ErrTooManySeeds is returned from Assemble when the password is too short
	// to hold one character of every enabled class.
	ErrTooManySeeds error = argError("Length is too short for the selected options")
)

type argError string

func (e argError) Error() string { return string(e) }

func (e argError) Is(target error) bool { return target == ErrInvalidArgument }

// Request describes the password to generate.
type Request struct {
	Length      int
	Classes     ClassSet
	CustomChars string
}

// Validate checks the request without drawing any randomness.
func (r Request) Validate() error {
	empty := true
	for _, c := range r.Classes.Classes() {
		if c != Custom || r.CustomChars != "" {
			empty = false
			break
		}
	}
	if empty {
		return ErrNoClassSelected
	}
	if r.Length < MinLength || r.Length > MaxLength {
		return ErrLengthOutOfRange
	}
	return nil
}

// Generator produces passwords. The zero value is not usable; call New.
type Generator struct {
	sampler *Sampler
	log     *zap.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithEntropy sets the source of random bytes. It defaults to
// crypto/rand.Reader and must only be replaced in tests.
func WithEntropy(r io.Reader) Option {
	return func(g *Generator) {
		g.sampler = NewSampler(r)
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New returns a Generator drawing from crypto/rand unless configured
// otherwise.
func New(opts ...Option) *Generator {
	g := &Generator{
		sampler: NewSampler(nil),
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a password satisfying req. Passwords rejected by
// HasForbiddenRun are reassembled from the same seeds, up to MaxAttempts
// times; after that the last one is returned anyway.
func (g *Generator) Generate(req Request) (string, error) {
	password, _, err := g.generate(req)
	return password, err
}

func (g *Generator) generate(req Request) (string, int, error) {
	if err := req.Validate(); err != nil {
		return "", 0, err
	}
	cs, err := Build(req.Classes, req.CustomChars, req.Length, g.sampler)
	if err != nil {
		return "", 0, err
	}

	var password string
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		buf, err := Assemble(cs, req.Length, g.sampler)
		if err != nil {
			return "", attempt, err
		}
		password = string(buf)
		if !HasForbiddenRun(password) {
			return password, attempt, nil
		}
	}

	g.log.Debug("Accepting password with repeated characters",
		zap.Int("attempts", MaxAttempts),
		zap.Int("length", req.Length),
		zap.Stringer("classes", req.Classes),
	)
	return password, MaxAttempts, nil
}

var defaultGenerator = New()

// Generate returns a password for req using crypto/rand.
func Generate(req Request) (string, error) {
	return defaultGenerator.Generate(req)
}
