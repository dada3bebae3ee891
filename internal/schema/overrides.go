package schema

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vantage-sim/vantage/internal/view"
)

// Overrides maps user-declared schema ids to view kinds.
type Overrides map[string]view.Kind

// ParseOverrides reads a newline-delimited override table:
//
//	# comment
//	sim.population = graph
//	sim.terrain    = space2d
//
// Lines with an unknown view kind are ignored with a warning; the rest
// of the table still applies. Later lines win over earlier duplicates.
func ParseOverrides(r io.Reader) (Overrides, error) {
	out := Overrides{}
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		id, target, ok := strings.Cut(text, "=")
		if !ok {
			slog.Warn("override line has no '='", "line", line, "text", text)
			continue
		}
		id = strings.TrimSpace(id)
		target = strings.TrimSpace(target)
		if id == "" {
			slog.Warn("override line has empty schema id", "line", line)
			continue
		}
		kind := view.KindFromString(target)
		if kind == view.KindNone {
			slog.Warn("override targets unknown view kind", "line", line, "schema", id, "target", target)
			continue
		}
		out[id] = kind
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read override table: %w", err)
	}
	return out, nil
}
