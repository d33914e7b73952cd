package clearloop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// ComponentKey is the attribute key that names the emitting component.
const ComponentKey = "component"

// LevelOff disables a component entirely.
const LevelOff = slog.Level(1 << 10)

// DefaultFilterSpec keeps graphics backend chatter at warn while the rest of
// the program logs at info.
const DefaultFilterSpec = "info,backend=warn"

// ErrInvalidFilterSpec is returned by ParseFilterSpec for malformed input.
var ErrInvalidFilterSpec = errors.New("clearloop: invalid log filter spec")

// FilterSpec holds the default level and per-component overrides.
type FilterSpec struct {
	Default    slog.Level
	Components map[string]slog.Level
}

// ParseFilterSpec parses a comma separated list of directives. A bare level
// ("debug", "info", "warn", "error", "off") sets the default; "name=level"
// sets the level for one component. Later directives win. An empty spec
// yields info with no overrides.
func ParseFilterSpec(spec string) (FilterSpec, error) {
	fs := FilterSpec{Default: slog.LevelInfo, Components: map[string]slog.Level{}}
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, levelText, scoped := strings.Cut(part, "=")
		if !scoped {
			lvl, err := parseLevel(name)
			if err != nil {
				return FilterSpec{}, err
			}
			fs.Default = lvl
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			return FilterSpec{}, fmt.Errorf("%w: empty component in %q", ErrInvalidFilterSpec, part)
		}
		lvl, err := parseLevel(levelText)
		if err != nil {
			return FilterSpec{}, err
		}
		fs.Components[name] = lvl
	}
	return fs, nil
}

func parseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "off") {
		return LevelOff, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: level %q", ErrInvalidFilterSpec, s)
	}
	return lvl, nil
}

// LevelFor returns the minimum level enabled for component.
func (fs FilterSpec) LevelFor(component string) slog.Level {
	if lvl, ok := fs.Components[component]; ok {
		return lvl
	}
	return fs.Default
}

// MinLevel returns the lowest level any component can emit. The wrapped
// handler must be at least this permissive.
func (fs FilterSpec) MinLevel() slog.Level {
	lowest := fs.Default
	for _, lvl := range fs.Components {
		if lvl < lowest {
			lowest = lvl
		}
	}
	return lowest
}

// String renders the spec back into its textual form.
func (fs FilterSpec) String() string {
	parts := []string{levelName(fs.Default)}
	names := make([]string, 0, len(fs.Components))
	for name := range fs.Components {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		parts = append(parts, name+"="+levelName(fs.Components[name]))
	}
	return strings.Join(parts, ",")
}

func levelName(l slog.Level) string {
	if l >= LevelOff {
		return "off"
	}
	return strings.ToLower(l.String())
}

// FilterHandler drops records below the level configured for their
// component. The component is taken from a ComponentKey attribute, either
// bound with Logger.With or passed on the record itself.
type FilterHandler struct {
	next      slog.Handler
	spec      FilterSpec
	component string
}

// NewFilterHandler wraps next with per-component level filtering.
func NewFilterHandler(next slog.Handler, spec FilterSpec) *FilterHandler {
	return &FilterHandler{next: next, spec: spec}
}

// Enabled reports whether the bound component may log at level. Records that
// name their component inline are re-checked in Handle.
func (h *FilterHandler) Enabled(ctx context.Context, level slog.Level) bool {
	lowest := h.spec.LevelFor(h.component)
	if h.component == "" {
		lowest = h.spec.MinLevel()
	}
	return level >= lowest && h.next.Enabled(ctx, level)
}

// Handle forwards r if its component's level allows it.
func (h *FilterHandler) Handle(ctx context.Context, r slog.Record) error {
	component := h.component
	if component == "" {
		r.Attrs(func(a slog.Attr) bool {
			if a.Key == ComponentKey {
				component = a.Value.String()
				return false
			}
			return true
		})
	}
	if r.Level < h.spec.LevelFor(component) {
		return nil
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs binds attrs, capturing the component if one is present.
func (h *FilterHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	component := h.component
	for _, a := range attrs {
		if a.Key == ComponentKey {
			component = a.Value.String()
		}
	}
	return &FilterHandler{next: h.next.WithAttrs(attrs), spec: h.spec, component: component}
}

// WithGroup opens a group on the wrapped handler.
func (h *FilterHandler) WithGroup(name string) slog.Handler {
	return &FilterHandler{next: h.next.WithGroup(name), spec: h.spec, component: h.component}
}
