package scores

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// History appends per-round totals to a comma-separated file.
type History struct {
	Path string
}

func (h History) Append(total int) error {
	data, err := os.ReadFile(h.Path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("scores: read history %s: %w", h.Path, err)
	}
	text := strings.TrimSpace(string(data))
	if text != "" {
		text += ","
	}
	text += strconv.Itoa(total)
	if err := os.WriteFile(h.Path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("scores: write history %s: %w", h.Path, err)
	}
	return nil
}

// Load returns every recorded total; unparsable entries are skipped.
func (h History) Load() ([]int, error) {
	data, err := os.ReadFile(h.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scores: read history %s: %w", h.Path, err)
	}
	var out []int
	for _, part := range strings.Split(strings.TrimSpace(string(data)), ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
