package core

import (
	"unsafe"

	"github.com/devblok/vkboot/utility/lifetime"
)

// Destroyable is anything holding native handles that has to be released
type Destroyable interface {
	// Destroy releases the handles, along with everything
	// that was created from them
	Destroy()
}

// Owned is a Destroyable that is part of the ownership tree
type Owned interface {
	Destroyable

	// Owner returns the node in the ownership tree,
	// resources created from this one are adopted by it
	Owner() *lifetime.Owner
}

// SurfaceCreator is a window that can create a Vulkan surface
// for the given instance. *sdl.Window satisfies it.
type SurfaceCreator interface {
	VulkanCreateSurface(instance interface{}) (unsafe.Pointer, error)
}
