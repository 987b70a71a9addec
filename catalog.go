package texcalc

import (
	"errors"
	"slices"
	"sync"

	"github.com/tliron/commonlog"
)

var logger = commonlog.GetLogger("texcalc")

// Catalog is a set of functions available to expressions. Every catalog
// contains the built-in functions; other functions can be registered at any
// time, including while expressions are being evaluated with the catalog. A
// Catalog is safe for concurrent use.
//
// Registrations are never removed or replaced. Looking up a name finds the
// built-in function of that name if there is one, and otherwise the first
// function registered under it.
type Catalog struct {
	mu sync.RWMutex
	// first maps each registered name to its first registration.
	first map[string]Func
	// names is the registered names in order, without duplicates.
	names []string
}

// NewCatalog creates a catalog with only the built-in functions.
func NewCatalog() *Catalog {
	return &Catalog{first: make(map[string]Func)}
}

var defaultCatalog = NewCatalog()

// DefaultCatalog returns the process-wide catalog used by evaluators that
// are not given one.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

// Register adds a function to the default catalog.
func Register(name string, fn Func) error {
	return defaultCatalog.Register(name, fn)
}

// Register adds a function to the catalog. A registration under the name of a
// built-in or an already registered function is accepted but never found.
func (c *Catalog) Register(name string, fn Func) error {
	if name == "" {
		return errors.New("texcalc: cannot register a function with no name")
	}
	if fn == nil {
		return errors.New(`texcalc: cannot register nil function \` + name)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := builtins[name]; ok {
		logger.Warningf("\\%s is built in; the registered function will not be used", name)
		return nil
	}
	if _, ok := c.first[name]; ok {
		logger.Warningf("\\%s is already registered; the new function will not be used", name)
		return nil
	}
	c.first[name] = fn
	c.names = append(c.names, name)
	logger.Debugf("registered \\%s", name)
	return nil
}

// Lookup finds a function by name. If there is no such function, the error is
// a *FuncError.
func (c *Catalog) Lookup(name string) (Func, error) {
	if fn := builtins[name]; fn != nil {
		return fn, nil
	}
	c.mu.RLock()
	fn := c.first[name]
	c.mu.RUnlock()
	if fn == nil {
		return nil, &FuncError{Name: name}
	}
	return fn, nil
}

// Names returns the names of the functions in the catalog: the built-ins in
// sorted order followed by registered functions in the order they were added.
func (c *Catalog) Names() []string {
	r := Builtins()
	c.mu.RLock()
	r = append(r, c.names...)
	c.mu.RUnlock()
	return r
}

// Builtins returns the sorted names of the built-in functions.
func Builtins() []string {
	r := make([]string, 0, len(builtins))
	for k := range builtins {
		r = append(r, k)
	}
	slices.Sort(r)
	return r
}
