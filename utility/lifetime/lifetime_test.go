// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package lifetime_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkboot/utility/lifetime"
)

func recorder(order *[]string, name string) func() {
	return func() {
		*order = append(*order, name)
	}
}

func TestReleaseOrder(t *testing.T) {
	c := qt.New(t)
	var order []string

	instance := lifetime.New("instance", recorder(&order, "instance"))
	instance.Adopt("debug", recorder(&order, "debug"))
	instance.Adopt("surface", recorder(&order, "surface"))
	device := instance.Adopt("device", recorder(&order, "device"))
	device.Adopt("swapchain", recorder(&order, "swapchain"))

	instance.Release()
	c.Assert(order, qt.DeepEquals, []string{"swapchain", "device", "surface", "debug", "instance"})
}

func TestReleaseIsIdempotent(t *testing.T) {
	c := qt.New(t)
	var order []string

	root := lifetime.New("root", recorder(&order, "root"))
	child := root.Adopt("child", recorder(&order, "child"))

	child.Release()
	root.Release()
	root.Release()
	c.Assert(order, qt.DeepEquals, []string{"child", "root"})
	c.Assert(child.Released(), qt.IsTrue)
	c.Assert(root.Released(), qt.IsTrue)
}

func TestGroupingNode(t *testing.T) {
	c := qt.New(t)
	var order []string

	root := lifetime.New("root", nil)
	root.Adopt("a", recorder(&order, "a"))
	root.Adopt("b", recorder(&order, "b"))
	root.Release()
	c.Assert(order, qt.DeepEquals, []string{"b", "a"})
}

func TestAdoptIntoReleased(t *testing.T) {
	c := qt.New(t)
	root := lifetime.New("root", nil)
	root.Release()
	c.Assert(func() { root.Adopt("late", nil) }, qt.PanicMatches, "lifetime: adopt late into released root")
}

func TestPath(t *testing.T) {
	c := qt.New(t)
	root := lifetime.New("instance", nil)
	dev := root.Adopt("device", nil)
	swapchain := dev.Adopt("swapchain", nil)
	c.Assert(root.Path(), qt.Equals, "instance")
	c.Assert(swapchain.Path(), qt.Equals, "instance/device/swapchain")

	dev.Release()
	c.Assert(func() { dev.Adopt("late", nil) }, qt.PanicMatches, "lifetime: adopt late into released instance/device")
}

func TestWalk(t *testing.T) {
	c := qt.New(t)
	root := lifetime.New("instance", nil)
	root.Adopt("surface", nil)
	dev := root.Adopt("device", nil)
	dev.Adopt("swapchain", nil)
	gone := root.Adopt("gone", nil)
	gone.Release()

	var visited []string
	var depths []int
	root.Walk(func(depth int, o *lifetime.Owner) {
		visited = append(visited, o.Name())
		depths = append(depths, depth)
	})
	c.Assert(visited, qt.DeepEquals, []string{"instance", "surface", "device", "swapchain"})
	c.Assert(depths, qt.DeepEquals, []int{0, 1, 1, 2})
}
