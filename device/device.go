package device

import (
	"strings"

	vk "github.com/vulkan-go/vulkan"
)

// PhysicalDeviceInfo describes available physical properties of a rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Type          vk.PhysicalDeviceType
	Extensions    []string
	Memory        uint
}

// TypeName returns a readable name of the device type
func (p PhysicalDeviceInfo) TypeName() string {
	return TypeName(p.Type)
}

// HasExtensions reports whether every one of exts is
// reported by the device. Names are compared exactly.
func (p PhysicalDeviceInfo) HasExtensions(exts []string) bool {
	available := make(map[string]struct{}, len(p.Extensions))
	for _, e := range p.Extensions {
		available[e] = struct{}{}
	}
	for _, e := range exts {
		if _, ok := available[strings.TrimSuffix(e, "\x00")]; !ok {
			return false
		}
	}
	return true
}

// SurfaceSupport is a snapshot of what a device can do with a surface.
type SurfaceSupport struct {
	Capabilities vk.SurfaceCapabilities
	Formats      []vk.SurfaceFormat
	PresentModes []vk.PresentMode
}

// Adequate is true when at least one format and one present mode is supported
func (s SurfaceSupport) Adequate() bool {
	return len(s.Formats) > 0 && len(s.PresentModes) > 0
}

// Candidate is a physical device that is queried while being selected.
// Queries that can fail in the driver return an error, which
// aborts selection altogether.
type Candidate interface {
	// Handle returns the underlying physical device
	Handle() vk.PhysicalDevice

	// Info returns general properties and extensions of the device
	Info() (PhysicalDeviceInfo, error)

	// SurfaceSupport returns the capabilities the device has
	// with the surface being selected for
	SurfaceSupport() (SurfaceSupport, error)

	// QueueFamilies returns queue family properties in index order
	QueueFamilies() ([]vk.QueueFamilyProperties, error)

	// PresentSupport reports if the family can present to the surface
	PresentSupport(family uint32) (bool, error)
}

// TypePredicate decides which device types may be selected
type TypePredicate func(vk.PhysicalDeviceType) bool

// DiscreteOnly accepts discrete GPUs only
func DiscreteOnly(t vk.PhysicalDeviceType) bool {
	return t == vk.PhysicalDeviceTypeDiscreteGpu
}

// AnyOf accepts only the listed device types
func AnyOf(types ...vk.PhysicalDeviceType) TypePredicate {
	return func(t vk.PhysicalDeviceType) bool {
		for _, accepted := range types {
			if t == accepted {
				return true
			}
		}
		return false
	}
}

// Requirements is what a device needs to be selected
type Requirements struct {
	// Extensions that have to be supported by the device
	Extensions []string

	// Accept filters on device type, nil means DiscreteOnly
	Accept TypePredicate
}

var typeNames = map[vk.PhysicalDeviceType]string{
	vk.PhysicalDeviceTypeOther:         "other",
	vk.PhysicalDeviceTypeIntegratedGpu: "integrated",
	vk.PhysicalDeviceTypeDiscreteGpu:   "discrete",
	vk.PhysicalDeviceTypeVirtualGpu:    "virtual",
	vk.PhysicalDeviceTypeCpu:           "cpu",
}

// TypeName returns a short name for a device type, as accepted by ParseType
func TypeName(t vk.PhysicalDeviceType) string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// ParseType is the reverse of TypeName
func ParseType(name string) (vk.PhysicalDeviceType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for t, n := range typeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}
