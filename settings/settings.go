// Package settings persists the last-used custom alphabet and password length.
package settings

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/avahowell/genpass/pwgen"
	"github.com/pkg/errors"
)

const (
	// DefaultCustomChars is the custom alphabet used until the user picks one.
	DefaultCustomChars = `-<>*()=?{}[]."~|;:_+,/`

	// DefaultLength is the password length used until the user picks one.
	DefaultLength = 20
)

// Settings is what survives between runs.
type Settings struct {
	CustomChars string `json:"customChars"`
	Length      int    `json:"lengthValue"`
}

// Default returns the settings used on first run.
func Default() Settings {
	return Settings{
		CustomChars: DefaultCustomChars,
		Length:      DefaultLength,
	}
}

// Validate reports whether s can be used for generation as is.
func (s Settings) Validate() error {
	if s.Length < pwgen.MinLength || s.Length > pwgen.MaxLength {
		return errors.Wrapf(pwgen.ErrLengthOutOfRange, "stored length %d", s.Length)
	}
	return nil
}

// UnmarshalJSON accepts lengthValue as a number or as a numeric string, the
// form written by older clients. Absent fields keep their current value.
func (s *Settings) UnmarshalJSON(data []byte) error {
	var raw struct {
		CustomChars *string         `json:"customChars"`
		Length      json.RawMessage `json:"lengthValue"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.CustomChars != nil {
		s.CustomChars = *raw.CustomChars
	}
	if len(raw.Length) == 0 || string(raw.Length) == "null" {
		return nil
	}

	text := string(raw.Length)
	if strings.HasPrefix(text, `"`) {
		if err := json.Unmarshal(raw.Length, &text); err != nil {
			return err
		}
	}
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return errors.Errorf("lengthValue %s is not an integer", raw.Length)
	}
	s.Length = n
	return nil
}
