package extract

import (
	"bufio"
	_ "embed"
	"io"
	"strings"
	"sync"
	"unicode"
)

//go:embed assets/first_names.txt
var firstNames string

// Names is a set of known first names.
type Names map[string]struct{}

// ParseNames reads one name per line. Blank lines and lines starting with #
// are skipped.
func ParseNames(r io.Reader) (Names, error) {
	names := make(Names)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names[line] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

var defaultNames = sync.OnceValue(func() Names {
	names, err := ParseNames(strings.NewReader(firstNames))
	if err != nil {
		panic(err)
	}
	return names
})

// DefaultNames returns the embedded first-name list.
func DefaultNames() Names {
	return defaultNames()
}

func separator(r rune) bool {
	return unicode.IsSpace(r) || r == '.' || r == '_'
}

// RealName reports whether any token of display is a known first name.
// Tokens are split on whitespace, dots and underscores and matched
// case-sensitively.
func (n Names) RealName(display string) bool {
	for _, token := range strings.FieldsFunc(display, separator) {
		if _, ok := n[token]; ok {
			return true
		}
	}
	return false
}
