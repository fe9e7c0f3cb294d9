package resolver

import (
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-report/helpers"
	"github.com/goliatone/go-report/payload"
	"github.com/goliatone/go-report/report"
)

// DefaultMaxIterations bounds the total number of loop expansions per template.
const DefaultMaxIterations = 10000

// Resolver merges data into markup using directive syntax.
//
// Evaluation order follows the directive families: conditionals, indexed
// iteration, plain iteration, helper calls and plain substitution, then
// cleanup of whatever is left unresolved. Plain iteration bodies substitute
// element fields only; helper calls inside them resolve their key against the
// top-level data. Indexed iteration bodies resolve helpers and fields against
// the element first and the top-level data second.
type Resolver struct {
	helpers       *helpers.Registry
	strict        bool
	maxIterations int
	logger        report.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrict makes unresolved directives a template fault instead of being
// removed from the output.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// WithMaxIterations sets the loop expansion budget. Zero or less disables it.
func WithMaxIterations(n int) Option {
	return func(r *Resolver) {
		r.maxIterations = n
	}
}

// WithLogger sets the resolver logger.
func WithLogger(logger report.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver backed by registry. A nil registry uses helpers.Default().
func New(registry *helpers.Registry, opts ...Option) *Resolver {
	if registry == nil {
		registry = helpers.Default()
	}
	r := &Resolver{
		helpers:       registry,
		maxIterations: DefaultMaxIterations,
		logger:        report.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Resolve never fails: a template fault is rendered as an inline HTML error
// fragment that includes a dump of data.
func (r *Resolver) Resolve(markup string, data *payload.Map) string {
	out, err := r.Evaluate(markup, data)
	if err != nil {
		r.logger.Errorf("template resolution failed: %v", err)
		return ErrorFragment(err, data)
	}
	return out
}

// Evaluate resolves markup and reports template faults as errors of kind
// report.KindTemplate.
func (r *Resolver) Evaluate(markup string, data *payload.Map) (out string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			out = ""
			err = report.NewError(report.KindTemplate, fmt.Sprintf("template evaluation panicked: %v", rec), nil)
		}
	}()

	if data == nil {
		data = payload.NewMap()
	}

	ev := &evaluator{resolver: r}
	ev.render(Parse(Tokenize(markup)), &scope{values: data}, modeRoot)
	if ev.err != nil {
		return "", ev.err
	}

	if len(ev.unresolved) > 0 {
		if r.strict {
			return "", report.NewError(report.KindTemplate, "unresolved directives: "+strings.Join(ev.unresolved, ", "), nil)
		}
		r.logger.Debugf("template: removed %d unresolved directives", len(ev.unresolved))
	}
	return ev.out.String(), nil
}

// ErrorFragment renders a template fault as visible markup with a data dump.
func ErrorFragment(err error, data *payload.Map) string {
	message := "unknown error"
	if err != nil {
		message = err.Error()
	}
	dump := "{}"
	if data != nil {
		dump = payload.PrettyJSON(data)
	}

	var b strings.Builder
	b.WriteString(`<div class="template-error" style="color: red; padding: 20px; border: 1px solid red;">`)
	b.WriteString("<h3>Template error</h3>")
	b.WriteString("<p>" + html.EscapeString(message) + "</p>")
	b.WriteString("<p>Check the directive syntax of your template.</p>")
	b.WriteString(`<pre style="color: #333; white-space: pre-wrap;">` + html.EscapeString(dump) + "</pre>")
	b.WriteString("</div>")
	return b.String()
}

type mode int

const (
	modeRoot mode = iota
	modeEach
	modeEachWithIndex
)

type scope struct {
	values *payload.Map
	parent *scope
}

// lookup walks from the innermost scope outwards. local reports whether the
// value came from a loop scope rather than the top-level data.
func (s *scope) lookup(name string) (value any, local bool, found bool) {
	for current := s; current != nil; current = current.parent {
		if v, ok := current.values.Get(name); ok {
			return v, current.parent != nil, true
		}
	}
	return nil, false, false
}

func (s *scope) root() *scope {
	current := s
	for current.parent != nil {
		current = current.parent
	}
	return current
}

func (s *scope) child(values *payload.Map) *scope {
	return &scope{values: values, parent: s}
}

type evaluator struct {
	resolver   *Resolver
	out        strings.Builder
	unresolved []string
	iterations int
	err        error
}

func (ev *evaluator) render(nodes []Node, sc *scope, m mode) {
	for _, n := range nodes {
		if ev.err != nil {
			return
		}
		switch node := n.(type) {
		case TextNode:
			ev.out.WriteString(node.Text)
		case VariableNode:
			ev.variable(node, sc)
		case HelperNode:
			ev.helper(node, sc, m)
		case BlockNode:
			ev.block(node, sc, m)
		case InvalidNode:
			ev.unresolve(node.Raw)
		}
	}
}

func (ev *evaluator) variable(node VariableNode, sc *scope) {
	value, local, ok := sc.lookup(node.Name)
	if ok && (local || payload.IsScalar(value)) {
		ev.out.WriteString(payload.String(value))
		return
	}
	ev.unresolve(node.Raw)
}

func (ev *evaluator) helper(node HelperNode, sc *scope, m mode) {
	fn, ok := ev.resolver.helpers.Lookup(node.Name)
	if !ok || len(node.Args) == 0 || node.Args[0].IsLiteral {
		ev.unresolve(node.Raw)
		return
	}

	keyScope := sc
	if m == modeEach {
		keyScope = sc.root()
	}
	value, _, found := keyScope.lookup(node.Args[0].Name)
	if !found {
		ev.unresolve(node.Raw)
		return
	}

	args := make([]any, 0, len(node.Args))
	args = append(args, value)
	for _, a := range node.Args[1:] {
		args = append(args, argValue(a, keyScope))
	}
	ev.out.WriteString(helperOutput(fn(args...)))
}

func (ev *evaluator) block(node BlockNode, sc *scope, m mode) {
	switch node.Kind {
	case BlockIf, BlockUnless:
		cond := false
		if len(node.Args) > 0 {
			cond = payload.Truthy(argValue(node.Args[0], sc))
		}
		if node.Kind == BlockUnless {
			cond = !cond
		}
		ev.branch(node, cond, sc, m)

	case BlockCompare:
		fn, ok := ev.resolver.helpers.Lookup("compare")
		if !ok || len(node.Args) < 3 {
			ev.unresolve(node.Raw)
			return
		}
		left := argValue(node.Args[0], sc)
		op := payload.String(argValue(node.Args[1], sc))
		right := argValue(node.Args[2], sc)
		ev.branch(node, payload.Truthy(fn(left, op, right)), sc, m)

	case BlockEach:
		var list []any
		if len(node.Args) > 0 {
			list, _ = argValue(node.Args[0], sc).([]any)
		}
		if len(list) == 0 {
			ev.render(node.Else, sc, m)
			return
		}
		for _, item := range list {
			if !ev.tick() {
				return
			}
			ev.render(node.Body, sc.child(elementScope(item)), modeEach)
		}

	case BlockEachWithIndex:
		fn, ok := ev.resolver.helpers.Lookup("eachWithIndex")
		if !ok || len(node.Args) == 0 {
			ev.unresolve(node.Raw)
			return
		}
		scopes, _ := fn(argValue(node.Args[0], sc)).([]*payload.Map)
		if len(scopes) == 0 {
			ev.render(node.Else, sc, m)
			return
		}
		for _, values := range scopes {
			if !ev.tick() {
				return
			}
			ev.render(node.Body, sc.child(values), modeEachWithIndex)
		}

	default:
		ev.unresolve(node.Raw)
	}
}

func (ev *evaluator) branch(node BlockNode, cond bool, sc *scope, m mode) {
	if cond {
		ev.render(node.Body, sc, m)
		return
	}
	ev.render(node.Else, sc, m)
}

func (ev *evaluator) tick() bool {
	ev.iterations++
	limit := ev.resolver.maxIterations
	if limit > 0 && ev.iterations > limit {
		ev.err = report.NewError(report.KindTemplate, fmt.Sprintf("template exceeded %d loop iterations", limit), nil)
		return false
	}
	return true
}

func (ev *evaluator) unresolve(raw string) {
	if raw == "" {
		return
	}
	ev.unresolved = append(ev.unresolved, raw)
}

func argValue(a Arg, sc *scope) any {
	if a.IsLiteral {
		return a.Literal
	}
	value, _, _ := sc.lookup(a.Name)
	return value
}

func elementScope(item any) *payload.Map {
	if m, ok := item.(*payload.Map); ok && m != nil {
		return m
	}
	values := payload.NewMap()
	values.Set("this", item)
	return values
}

func helperOutput(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []*payload.Map:
		return ""
	default:
		return payload.String(v)
	}
}
