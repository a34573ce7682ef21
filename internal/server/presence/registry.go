// Package presence tracks which usernames are online. A Registry is scoped
// to a single serving context: the server creates one per connection,
// mirroring the original process-per-connection design, so it never reflects
// other connections' state. That scope is part of the contract — widening it
// to a shared registry would be a behavior change, not a fix.
package presence

import (
	"sync"

	"github.com/mkuznecovs/engdir/internal/server/accounts"
)

type entry struct {
	role   accounts.Role
	online bool
}

// Registry is a username -> online-status map. It is mutex-guarded so the
// type stays safe even if a future caller does share one across goroutines.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// SetOnline records username as online with the given role.
func (r *Registry) SetOnline(username string, role accounts.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[username] = entry{role: role, online: true}
}

// SetOffline marks username offline. Unknown usernames are a no-op.
func (r *Registry) SetOffline(username string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[username]; ok {
		e.online = false
		r.entries[username] = e
	}
}

// Online reports whether username is currently marked online. Absent
// usernames default to offline.
func (r *Registry) Online(username string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.entries[username].online
}
