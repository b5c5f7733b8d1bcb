package vocab

import (
	"bufio"
	"os"
	"strings"

	"go.uber.org/zap"
)

const commentPrefix = "#"

// Vocabulary is the ordered list of approved tags loaded for a run.
type Vocabulary struct {
	tags  []string
	index map[string]string
}

// New builds a Vocabulary from tags as given. Order is preserved and entries are not de-duplicated.
func New(tags []string) *Vocabulary {
	v := &Vocabulary{
		tags:  make([]string, len(tags)),
		index: make(map[string]string, len(tags)),
	}
	copy(v.tags, tags)
	for _, t := range v.tags {
		key := strings.ToLower(t)
		if _, ok := v.index[key]; !ok {
			v.index[key] = t
		}
	}
	return v
}

// Load reads a newline-delimited tag file. A missing or unreadable file yields an
// empty vocabulary, which disables suggestions without failing the run.
func Load(path string, logger *zap.Logger) *Vocabulary {
	logger = logger.With(zap.String("component", "vocab"), zap.String("path", path))

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		logger.Error("Tags file not found")
		return New(nil)
	}
	if err != nil {
		logger.Error("Open tags file", zap.Error(err))
		return New(nil)
	}
	defer f.Close()

	var tags []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if tag, ok := parseLine(scanner.Text()); ok {
			tags = append(tags, tag)
		}
	}
	if err := scanner.Err(); err != nil {
		logger.Error("Read tags file", zap.Error(err), zap.Int("read", len(tags)))
	}

	logger.Debug("Loaded tags", zap.Strings("tags", tags))
	return New(tags)
}

func parseLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, commentPrefix) {
		return "", false
	}
	return line, true
}

// Tags returns a copy of the approved tags in file order.
func (v *Vocabulary) Tags() []string {
	out := make([]string, len(v.tags))
	copy(out, v.tags)
	return out
}

func (v *Vocabulary) Len() int {
	return len(v.tags)
}

// Lookup matches candidate case-insensitively and returns the tag as it was loaded.
func (v *Vocabulary) Lookup(candidate string) (string, bool) {
	t, ok := v.index[strings.ToLower(candidate)]
	return t, ok
}

func (v *Vocabulary) Contains(tag string) bool {
	_, ok := v.Lookup(tag)
	return ok
}
