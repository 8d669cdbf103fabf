package vocab

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file is the on-disk layout of a vocabulary:
//
//	entries:
//	  - label: 勤務地
//	    literals: [勤務場所, 就業場所]
//	  - label: 給与詳細
//	    literals: [給与]
//	    field: salary
type file struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads a YAML vocabulary from path.
func Load(path string) (*Vocabulary, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}
	return Parse(b)
}

// Parse decodes a YAML vocabulary document.
func Parse(data []byte) (*Vocabulary, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("%w: no entries", ErrInvalid)
	}
	return New(f.Entries)
}

// Marshal encodes v in the layout accepted by Parse.
func Marshal(v *Vocabulary) ([]byte, error) {
	return yaml.Marshal(file{Entries: v.Entries()})
}
