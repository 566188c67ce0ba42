package renderer

import (
	"math"

	vk "github.com/vulkan-go/vulkan"
)

// PreferredSurfaceFormat is picked whenever a surface offers it
var PreferredSurfaceFormat = vk.SurfaceFormat{
	Format:     vk.FormatB8g8r8a8Srgb,
	ColorSpace: vk.ColorSpaceSrgbNonlinear,
}

// currentExtentUndefined is the surface telling us to pick the extent
const currentExtentUndefined = math.MaxUint32

// ChooseSurfaceFormat returns PreferredSurfaceFormat if available
// and the first format reported otherwise. formats must not be empty.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, f := range formats {
		if f.Format == PreferredSurfaceFormat.Format && f.ColorSpace == PreferredSurfaceFormat.ColorSpace {
			return f
		}
	}
	return formats[0]
}

// ChoosePresentMode prefers mailbox, FIFO is always available
func ChoosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, m := range modes {
		if m == vk.PresentModeMailbox {
			return m
		}
	}
	return vk.PresentModeFifo
}

// ChooseExtent returns the current extent of the surface, unless the surface
// lets the application decide, then the window size is clamped between the
// minimum and maximum image extents.
func ChooseExtent(capabilities vk.SurfaceCapabilities, window vk.Extent2D) vk.Extent2D {
	if capabilities.CurrentExtent.Width != currentExtentUndefined {
		return capabilities.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clamp(window.Width, capabilities.MinImageExtent.Width, capabilities.MaxImageExtent.Width),
		Height: clamp(window.Height, capabilities.MinImageExtent.Height, capabilities.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for one image more than the minimum.
// A maximum of 0 means there is no limit.
func ChooseImageCount(capabilities vk.SurfaceCapabilities) uint32 {
	count := capabilities.MinImageCount + 1
	if capabilities.MaxImageCount > 0 && count > capabilities.MaxImageCount {
		count = capabilities.MaxImageCount
	}
	return count
}

// ChooseSharing always picks exclusive sharing. Both families are passed
// along when graphics and present differ, the driver ignores them in
// exclusive mode.
func ChooseSharing(graphics, present uint32) (vk.SharingMode, []uint32) {
	if graphics != present {
		return vk.SharingModeExclusive, []uint32{graphics, present}
	}
	return vk.SharingModeExclusive, nil
}

func clamp(v, min, max uint32) uint32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
