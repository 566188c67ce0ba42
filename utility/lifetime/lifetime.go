// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package lifetime keeps native handles in an ownership tree. A handle
// that lends itself to others is a parent, and it is only released after
// every child it has lent itself to. Children are released in the reverse
// order they were adopted in, so a resource created later, and possibly
// depending on an earlier sibling, goes first.
package lifetime

import "sync"

// New creates a root Owner. The release function may be nil
// for grouping nodes that hold no handle of their own.
func New(name string, release func()) *Owner {
	return &Owner{
		name:    name,
		release: release,
	}
}

// Owner is a node of the ownership tree.
type Owner struct {
	name    string
	release func()

	mutex    sync.Mutex
	parent   *Owner
	children []*Owner
	released bool
}

// Adopt attaches a new child to o and returns it. Adopting into
// a released Owner panics, it means a handle outlived its parent.
func (o *Owner) Adopt(name string, release func()) *Owner {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	if o.released {
		panic("lifetime: adopt " + name + " into released " + o.Path())
	}
	child := New(name, release)
	child.parent = o
	o.children = append(o.children, child)
	return child
}

// Name returns the name given on creation.
func (o *Owner) Name() string {
	return o.name
}

// Path returns the names from the root down to o, joined by slashes.
func (o *Owner) Path() string {
	if o.parent == nil {
		return o.name
	}
	return o.parent.Path() + "/" + o.name
}

// Released reports whether Release has already run.
func (o *Owner) Released() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.released
}

// Release releases all children, last adopted first, then o itself.
// Calling it more than once is a no-op.
func (o *Owner) Release() {
	o.mutex.Lock()
	if o.released {
		o.mutex.Unlock()
		return
	}
	o.released = true
	children := o.children
	o.children = nil
	o.mutex.Unlock()

	for idx := len(children) - 1; idx >= 0; idx-- {
		children[idx].Release()
	}
	if o.release != nil {
		o.release()
	}
}

// Walk visits o and its unreleased descendants depth first,
// in adoption order.
func (o *Owner) Walk(fn func(depth int, o *Owner)) {
	o.walk(0, fn)
}

func (o *Owner) walk(depth int, fn func(int, *Owner)) {
	o.mutex.Lock()
	children := append([]*Owner(nil), o.children...)
	o.mutex.Unlock()

	fn(depth, o)
	for _, c := range children {
		if !c.Released() {
			c.walk(depth+1, fn)
		}
	}
}
