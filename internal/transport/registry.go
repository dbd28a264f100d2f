package transport

import "sync"

// Registry hands out one lazily created Client per host key.
// It is safe for concurrent use, including concurrent first access to a key.
type Registry struct {
	mu      sync.Mutex
	opts    Options
	clients map[string]*Client
	newFn   func(Options) *Client
}

// NewRegistry creates a registry whose clients share opts.
func NewRegistry(opts Options) *Registry {
	return &Registry{
		opts:    opts,
		clients: make(map[string]*Client),
		newFn:   NewClient,
	}
}

// Client returns the client for key, creating it on first use.
func (r *Registry) Client(key string) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.clients[key]; ok {
		return c
	}
	c := r.newFn(r.opts)
	r.clients[key] = c
	return c
}
