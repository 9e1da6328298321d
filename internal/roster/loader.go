package roster

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Load parses a roster document from r. The document must be a JSON array
// of character records; anything else is a contract violation and returns
// an error rather than an empty roster.
func Load(r io.Reader) ([]Character, error) {
	var chars []Character
	if err := json.NewDecoder(r).Decode(&chars); err != nil {
		return nil, fmt.Errorf("parsing roster: %w", err)
	}
	return chars, nil
}

// LoadFile reads and parses a roster file.
func LoadFile(path string) ([]Character, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster file: %w", err)
	}
	defer f.Close()

	chars, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("loading roster from %s: %w", path, err)
	}
	return chars, nil
}
