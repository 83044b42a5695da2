// Package narrative renders the small templating language used to turn
// generated data into prose.
//
// Token forms, all delimited by braces:
//
//	{$a|b|c}             uniform choice among top-level options
//	{?cond:yes|no}       conditional; cond is a path, path === 'x', or path.includes('x')
//	{@name}              render another named template
//	{#north.name}        look up a field of the neighbor in that direction
//	{settlement.name}    dotted variable path
//
// A token without a closing brace is emitted as literal text.
package narrative

import (
	"sort"
	"strings"
	"sync"

	"github.com/lawnchairsociety/procworld/internal/logger"
	"github.com/lawnchairsociety/procworld/internal/rng"
)

// DefaultMaxDepth is the reference nesting limit.
const DefaultMaxDepth = 10

// DepthExceeded is emitted in place of a reference that nests too deeply.
const DepthExceeded = "[...]"

// NeighborsKey is the context key holding direction -> neighbor data for {#dir.path}.
const NeighborsKey = "neighbors"

// Context is the data a template is rendered against.
type Context map[string]any

// Engine holds named templates and renders them.
type Engine struct {
	mu        sync.RWMutex
	templates map[string]string
	maxDepth  int
}

// NewEngine creates an engine preloaded with templates.
func NewEngine(templates map[string]string) *Engine {
	e := &Engine{
		templates: make(map[string]string, len(templates)),
		maxDepth:  DefaultMaxDepth,
	}
	for name, tpl := range templates {
		e.templates[name] = tpl
	}
	return e
}

// SetMaxDepth changes the reference nesting limit. Values below 1 are ignored.
func (e *Engine) SetMaxDepth(depth int) {
	if depth < 1 {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maxDepth = depth
}

// Register adds or replaces a named template.
func (e *Engine) Register(name, tpl string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.templates[name] = tpl
}

// Has reports whether a named template exists.
func (e *Engine) Has(name string) bool {
	_, ok := e.lookupTemplate(name)
	return ok
}

// Names returns the registered template names in sorted order.
func (e *Engine) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) lookupTemplate(name string) (string, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	tpl, ok := e.templates[name]
	return tpl, ok
}

func (e *Engine) depthLimit() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.maxDepth
}

// Render renders tpl against ctx. The same template, context and seed
// always produce the same string.
func (e *Engine) Render(tpl string, ctx Context, seed uint32) string {
	r := e.newRenderer(ctx, seed, 0)
	return r.render(tpl)
}

// RenderNamed renders the named template. An unknown name yields a
// placeholder token and a warning.
func (e *Engine) RenderNamed(name string, ctx Context, seed uint32) string {
	tpl, ok := e.lookupTemplate(name)
	if !ok {
		logger.Warning("Template not found", "template", name)
		return missingTemplate(name)
	}
	return e.Render(tpl, ctx, seed)
}

func missingTemplate(name string) string {
	return "[missing:@" + name + "]"
}

func unknownNeighbor(path string) string {
	return "[unknown:" + path + "]"
}

// renderer is the state of one render frame. Each {@ref} gets a fresh
// frame with its own seed so sibling references do not share a stream.
type renderer struct {
	engine *Engine
	ctx    Context
	seed   uint32
	rand   *rng.Rand
	depth  int
	limit  int
}

func (e *Engine) newRenderer(ctx Context, seed uint32, depth int) *renderer {
	if ctx == nil {
		ctx = Context{}
	}
	return &renderer{
		engine: e,
		ctx:    ctx,
		seed:   seed,
		rand:   rng.New(rng.NewMulberry32(seed)),
		depth:  depth,
		limit:  e.depthLimit(),
	}
}

func (r *renderer) render(tpl string) string {
	var b strings.Builder
	for i := 0; i < len(tpl); {
		if tpl[i] != '{' {
			b.WriteByte(tpl[i])
			i++
			continue
		}
		end := matchingBrace(tpl, i)
		if end < 0 {
			b.WriteString(tpl[i:])
			break
		}
		b.WriteString(r.token(tpl[i+1 : end]))
		i = end + 1
	}
	return b.String()
}

func (r *renderer) token(body string) string {
	if body == "" {
		return ""
	}
	switch body[0] {
	case '$':
		return r.choice(body[1:])
	case '?':
		return r.conditional(body[1:])
	case '@':
		return r.reference(strings.TrimSpace(body[1:]))
	case '#':
		return r.neighbor(strings.TrimSpace(body[1:]))
	default:
		v, _ := lookupPath(r.ctx, strings.TrimSpace(body))
		return formatValue(v)
	}
}

func (r *renderer) choice(body string) string {
	options := splitTopLevel(body, '|')
	picked := rng.Pick(r.rand, options)
	return r.render(picked)
}

func (r *renderer) conditional(body string) string {
	colon := conditionEnd(body)
	if colon < 0 {
		// Malformed: no branches, so the token stays literal
		return "{?" + body + "}"
	}
	cond := strings.TrimSpace(body[:colon])
	branches := splitTopLevel(body[colon+1:], '|')

	if evaluate(r.ctx, cond) {
		return r.render(branches[0])
	}
	if len(branches) > 1 {
		return r.render(strings.Join(branches[1:], "|"))
	}
	return ""
}

func (r *renderer) reference(name string) string {
	if r.depth+1 > r.limit {
		logger.Warning("Template recursion depth exceeded", "template", name, "depth", r.depth+1)
		return DepthExceeded
	}
	tpl, ok := r.engine.lookupTemplate(name)
	if !ok {
		logger.Warning("Template reference not found", "template", name)
		return missingTemplate(name)
	}
	child := r.engine.newRenderer(r.ctx, r.seed+rng.Hash(name), r.depth+1)
	return child.render(tpl)
}

func (r *renderer) neighbor(path string) string {
	dir, rest, _ := strings.Cut(path, ".")
	neighbors, ok := r.ctx[NeighborsKey]
	if !ok {
		logger.Warning("No neighbor context for directional lookup", "path", path)
		return unknownNeighbor(path)
	}
	entry, ok := lookupPath(neighbors, dir)
	if !ok || entry == nil {
		logger.Warning("No neighbor in direction", "path", path)
		return unknownNeighbor(path)
	}
	if rest == "" {
		return formatValue(entry)
	}
	v, ok := lookupPath(entry, rest)
	if !ok {
		logger.Warning("Neighbor field not found", "path", path)
		return unknownNeighbor(path)
	}
	return formatValue(v)
}

// matchingBrace returns the index of the brace closing the one at open, or -1.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitTopLevel splits s on sep, ignoring separators inside nested braces.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// conditionEnd finds the colon ending a condition, skipping quoted literals
// and nested tokens.
func conditionEnd(s string) int {
	var quote byte
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '{':
			depth++
		case c == '}':
			if depth > 0 {
				depth--
			}
		case c == ':' && depth == 0:
			return i
		}
	}
	return -1
}
