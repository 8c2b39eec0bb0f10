package builder

import (
	"fmt"
)

type disposer struct {
	owner string
	fn    func() error
}

// OnDispose schedules fn to run when the builder is disposed.
func (b *Builder) OnDispose(fn func() error) {
	b.onDispose("", fn)
}

func (b *Builder) onDispose(owner string, fn func() error) {
	if fn == nil || b.disposed {
		return
	}
	b.disposers = append(b.disposers, disposer{owner: owner, fn: fn})
}

// Dispose runs every cleanup callback in the order they were added and then
// clears all registries. A failing callback is logged and does not stop the rest.
// A disposed builder is spent: Use, UseAsync and Build return ErrBuilderDisposed.
func (b *Builder) Dispose() {
	for _, d := range b.disposers {
		if err := runDisposer(d.fn); err != nil {
			b.log.ForPlugin(d.owner).Error(err, "dispose callback failed")
		}
	}
	b.reset()
	b.disposed = true
}

func runDisposer(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
