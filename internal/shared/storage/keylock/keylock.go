// Package keylock 按 key 粒度的进程内互斥锁
//
// 用于底层存储不提供条件写入时，保证同一 ID 的“检查-写入”串行执行。
// 只在单进程内有效，多实例部署需要依赖存储自身的原子操作。
package keylock

import "sync"

// Locker 按 key 加锁，无人持有的 key 会被回收
type Locker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// New 创建 Locker
func New[K comparable]() *Locker[K] {
	return &Locker[K]{locks: make(map[K]*entry)}
}

// Lock 锁定 key，返回解锁函数
func (l *Locker[K]) Lock(key K) (unlock func()) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

// Len 当前被持有或等待中的 key 数量
func (l *Locker[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
