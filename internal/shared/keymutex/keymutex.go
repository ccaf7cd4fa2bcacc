package keymutex

import "sync"

// KeyMutex serializes operations per string key so a read-validate-write
// sequence cannot race against itself for the same key.
type KeyMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New() *KeyMutex {
	return &KeyMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()
	l.Lock()
}

func (k *KeyMutex) Unlock(key string) {
	k.mu.Lock()
	l := k.locks[key]
	k.mu.Unlock()
	if l != nil {
		l.Unlock()
	}
}
