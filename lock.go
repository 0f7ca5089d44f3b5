package giac

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
)

// engineMu is the process-wide serialization lock. The native library has
// global mutable state and is not reentrant, so every call into it from any
// context goes through this one lock. It is reentrant on a single goroutine
// because composed operations (solve calling simplify, tier-3 dispatch
// stringifying handle arguments) re-lock on the way down.
var engineMu recursiveMutex

// recursiveMutex is a mutex that may be re-acquired by the goroutine that
// already holds it. Unlock must be called once per Lock.
type recursiveMutex struct {
	mu    sync.Mutex
	owner atomic.Int64
	depth int
}

func (m *recursiveMutex) Lock() {
	id := goroutineID()
	if m.owner.Load() == id {
		m.depth++
		return
	}
	m.mu.Lock()
	m.owner.Store(id)
	m.depth = 1
}

func (m *recursiveMutex) Unlock() {
	if m.owner.Load() != goroutineID() {
		panic("giac: unlock of lock not held by this goroutine")
	}
	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// goroutineID parses the current goroutine id from the runtime stack
// header ("goroutine N [running]: ..."). The runtime offers no cheaper
// stable identifier; this is only paid on native-call boundaries, which
// are dominated by the native work itself.
func goroutineID() int64 {
	var buf [32]byte
	n := runtime.Stack(buf[:], false)
	s := buf[:n]
	s = bytes.TrimPrefix(s, []byte("goroutine "))
	if i := bytes.IndexByte(s, ' '); i > 0 {
		s = s[:i]
	}
	id, _ := strconv.ParseInt(string(s), 10, 64)
	return id
}
