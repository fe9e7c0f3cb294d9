package helpers

import (
	"sort"
	"sync"

	"github.com/goliatone/go-report/report"
)

// Func is a helper callable from a template directive. The first argument is
// the value named by the directive; the rest are literal or resolved extras.
type Func func(args ...any) any

// Registry is an immutable set of named helpers. It is safe for concurrent use.
type Registry struct {
	funcs  map[string]Func
	locale Locale
	logger report.Logger
}

// Option configures a Registry at construction time.
type Option func(*Registry)

// WithLocale sets the locale used by formatting helpers.
func WithLocale(locale Locale) Option {
	return func(r *Registry) {
		r.locale = locale
	}
}

// WithLogger sets the logger used by the debug helper.
func WithLogger(logger report.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry builds a registry with every built-in helper.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		locale: DefaultLocale(),
		logger: report.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	r.funcs = builtins(r.locale, r.logger)
	return r
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry()
})

// Default returns the process-wide registry built with the default locale.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup returns the helper registered under name.
func (r *Registry) Lookup(name string) (Func, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Lookup(name)
	return ok
}

// Names returns registered helper names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Locale returns the registry's locale.
func (r *Registry) Locale() Locale {
	if r == nil {
		return DefaultLocale()
	}
	return r.locale
}

// With returns a copy of the registry with fn registered under name,
// replacing any existing helper of that name. The receiver is not modified.
func (r *Registry) With(name string, fn Func) *Registry {
	if r == nil {
		r = NewRegistry()
	}
	next := &Registry{
		funcs:  make(map[string]Func, len(r.funcs)+1),
		locale: r.locale,
		logger: r.logger,
	}
	for key, value := range r.funcs {
		next.funcs[key] = value
	}
	if fn != nil {
		next.funcs[name] = fn
	}
	return next
}

// Call invokes the named helper. Missing helpers report false.
func (r *Registry) Call(name string, args ...any) (any, bool) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, false
	}
	return fn(args...), true
}
