package history

import (
	"strings"

	"github.com/chmouel/gitbash/internal/models"
)

// DefaultLimit caps the number of remembered lines.
const DefaultLimit = 100

// Store keeps history as one newline-joined value under models.HistoryKey.
type Store struct {
	kv    KV
	limit int
}

// NewStore wraps kv. A non-positive limit falls back to DefaultLimit.
func NewStore(kv KV, limit int) *Store {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Store{kv: kv, limit: limit}
}

// Lines returns the stored lines, oldest first.
func (s *Store) Lines() ([]string, error) {
	if s == nil || s.kv == nil {
		return nil, nil
	}
	raw, ok, err := s.kv.Get(models.HistoryKey)
	if err != nil || !ok {
		return nil, err
	}
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// Append records line, dropping the oldest entries beyond the limit.
func (s *Store) Append(line string) error {
	line = strings.TrimSpace(line)
	if s == nil || s.kv == nil || line == "" {
		return nil
	}
	lines, err := s.Lines()
	if err != nil {
		return err
	}
	lines = append(lines, line)
	if len(lines) > s.limit {
		lines = lines[len(lines)-s.limit:]
	}
	return s.kv.Set(models.HistoryKey, strings.Join(lines, "\n"))
}
