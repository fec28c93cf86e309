package latex

import (
	"errors"
	"sync"
)

// NodeFunc is a plugin operation mounted on Model nodes. The parser never
// calls these; it only guarantees that every node it constructs can be
// dispatched through the registry.
type NodeFunc func(m *Model, n *Node, args ...interface{}) (interface{}, error)

// fnRegistry holds the process-wide plugin operations.
var (
	fnMu       sync.RWMutex
	fnRegistry = map[string]NodeFunc{}
)

// RegisterFn mounts a plugin operation under name, replacing any previous
// registration.
func RegisterFn(name string, f NodeFunc) {
	fnMu.Lock()
	defer fnMu.Unlock()
	fnRegistry[name] = f
}

// Model owns a parse configuration, an intern pool and an environment
// stack. The pool grows monotonically for the life of the instance.
type Model struct {
	opts     *Options
	pool     *Pool
	envStack []Env
}

// NewModel creates a Model with the given options (nil for defaults) and an
// empty root environment.
func NewModel(opts *Options) *Model {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Model{
		opts:     opts,
		pool:     NewPool(),
		envStack: []Env{nil},
	}
}

// Options returns the model's parse configuration.
func (m *Model) Options() *Options { return m.opts }

// PushEnv makes e the active environment for subsequent parses.
func (m *Model) PushEnv(e Env) {
	m.envStack = append(m.envStack, e)
}

// PopEnv restores the previously active environment. The root environment
// is never popped.
func (m *Model) PopEnv() {
	if len(m.envStack) > 1 {
		m.envStack = m.envStack[:len(m.envStack)-1]
	}
}

// Env returns the active environment.
func (m *Model) Env() Env {
	return m.envStack[len(m.envStack)-1]
}

// WithEnv runs f with e active, guaranteeing the pop on every exit path.
func (m *Model) WithEnv(e Env, f func() error) error {
	m.PushEnv(e)
	defer m.PopEnv()
	return f()
}

// Create builds a node from a source string, an existing node (deep copy),
// or a slice of either (yielding a COMMA of the parts). The optional
// location tags every produced root.
func (m *Model) Create(v interface{}, location string) (*Node, error) {
	n, err := m.create(v)
	if err != nil {
		return nil, err
	}
	if location != "" {
		n.Location = location
	}
	return n, nil
}

func (m *Model) create(v interface{}) (*Node, error) {
	switch x := v.(type) {
	case string:
		return Parse(m.opts, x, m.Env())
	case *Node:
		return x.Copy(), nil
	case []interface{}:
		args := make([]*Node, 0, len(x))
		for _, item := range x {
			n, err := m.create(item)
			if err != nil {
				return nil, err
			}
			args = append(args, n)
		}
		return &Node{Op: OP_COMMA, Args: args}, nil
	case []*Node:
		args := make([]*Node, 0, len(x))
		for _, item := range x {
			args = append(args, item.Copy())
		}
		return &Node{Op: OP_COMMA, Args: args}, nil
	}
	return nil, errors.New("latex: cannot create a node from this value")
}

// FromLaTeX parses a source string under the active environment.
func (m *Model) FromLaTeX(src string) (*Node, error) {
	return Parse(m.opts, src, m.Env())
}

// Intern stores a tree in the model's pool and returns its id.
func (m *Model) Intern(n *Node) int {
	return m.pool.Intern(n)
}

// NodeByID reconstructs a fresh tree for an interned id, or nil for an
// unknown id.
func (m *Model) NodeByID(id int) *Node {
	return m.pool.Node(id)
}

// PoolLen returns the number of interned nodes.
func (m *Model) PoolLen() int {
	return m.pool.Len()
}

// Invoke dispatches a registered plugin operation on a node.
func (m *Model) Invoke(name string, n *Node, args ...interface{}) (interface{}, error) {
	fnMu.RLock()
	f, ok := fnRegistry[name]
	fnMu.RUnlock()
	if !ok {
		return nil, errors.New("latex: no operation named " + name)
	}
	return f(m, n, args...)
}

// Create is the static entry point: parse or copy v under opts without
// retaining a Model.
func Create(opts *Options, v interface{}, location string) (*Node, error) {
	return NewModel(opts).Create(v, location)
}

// FromLaTeX is a convenience alias for Create with a source string.
func FromLaTeX(opts *Options, src string) (*Node, error) {
	return Parse(opts, src, nil)
}
