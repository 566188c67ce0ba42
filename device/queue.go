package device

import vk "github.com/vulkan-go/vulkan"

// QueueFamilyIndices holds the queue families picked for a device.
// An index is only meaningful when its Has flag is set.
type QueueFamilyIndices struct {
	Graphics    uint32
	HasGraphics bool

	Present    uint32
	HasPresent bool
}

// IsComplete is true when both families have been found
func (q QueueFamilyIndices) IsComplete() bool {
	return q.HasGraphics && q.HasPresent
}

// Shared is true when a single family does both graphics and presentation
func (q QueueFamilyIndices) Shared() bool {
	return q.IsComplete() && q.Graphics == q.Present
}

// Unique returns the distinct families found, graphics first
func (q QueueFamilyIndices) Unique() []uint32 {
	var families []uint32
	if q.HasGraphics {
		families = append(families, q.Graphics)
	}
	if q.HasPresent && !(q.HasGraphics && q.Present == q.Graphics) {
		families = append(families, q.Present)
	}
	return families
}

// FindQueueFamilies scans families in index order for the first family with
// graphics capability and the first that can present, as reported by
// presentSupport. Families without queues are skipped. Scanning stops as
// soon as both are known, the result may be incomplete.
func FindQueueFamilies(families []vk.QueueFamilyProperties, presentSupport func(uint32) (bool, error)) (QueueFamilyIndices, error) {
	var indices QueueFamilyIndices
	for i := range families {
		family := families[i]
		if family.QueueCount == 0 {
			continue
		}
		idx := uint32(i)

		if !indices.HasGraphics && family.QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0 {
			indices.Graphics = idx
			indices.HasGraphics = true
		}

		if !indices.HasPresent {
			supported, err := presentSupport(idx)
			if err != nil {
				return indices, err
			}
			if supported {
				indices.Present = idx
				indices.HasPresent = true
			}
		}

		if indices.IsComplete() {
			break
		}
	}
	return indices, nil
}
