package device

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// EnumeratePhysicalDevices returns all physical devices exposed by the instance
func EnumeratePhysicalDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, errors.Wrap(err, "vk.EnumeratePhysicalDevices(count)")
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, errors.Wrap(err, "vk.EnumeratePhysicalDevices(devices)")
	}
	return availableDevices[:deviceCount], nil
}

// NewVulkanCandidates wraps every physical device for selection against surface
func NewVulkanCandidates(devices []vk.PhysicalDevice, surface vk.Surface) []Candidate {
	candidates := make([]Candidate, len(devices))
	for idx, pd := range devices {
		candidates[idx] = &VulkanCandidate{
			device:  pd,
			surface: surface,
		}
	}
	return candidates
}

// VulkanCandidate queries a physical device through the driver
type VulkanCandidate struct {
	device  vk.PhysicalDevice
	surface vk.Surface
}

// Handle implements interface
func (v *VulkanCandidate) Handle() vk.PhysicalDevice {
	return v.device
}

// Info implements interface
func (v *VulkanCandidate) Info() (PhysicalDeviceInfo, error) {
	return Describe(v.device)
}

// Describe collects the PhysicalDeviceInfo of a device
func Describe(pd vk.PhysicalDevice) (PhysicalDeviceInfo, error) {
	var info PhysicalDeviceInfo

	// Get extension info
	var numDeviceExtensions uint32
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, nil)); err != nil {
		return info, errors.Wrap(err, "vk.EnumerateDeviceExtensionProperties(count)")
	}
	deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
	if err := vk.Error(vk.EnumerateDeviceExtensionProperties(pd, "", &numDeviceExtensions, deviceExt)); err != nil {
		return info, errors.Wrap(err, "vk.EnumerateDeviceExtensionProperties(extensions)")
	}
	for _, ext := range deviceExt[:numDeviceExtensions] {
		ext.Deref()
		info.Extensions = append(info.Extensions, vk.ToString(ext.ExtensionName[:]))
	}

	// Get memory info
	var memoryProperties vk.PhysicalDeviceMemoryProperties
	vk.GetPhysicalDeviceMemoryProperties(pd, &memoryProperties)
	memoryProperties.Deref()
	for iMem := uint32(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
		memoryProperties.MemoryHeaps[iMem].Deref()
		info.Memory += uint(memoryProperties.MemoryHeaps[iMem].Size)
	}

	// Get general device info
	var physicalDeviceProperties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(pd, &physicalDeviceProperties)
	physicalDeviceProperties.Deref()
	info.ID = int(physicalDeviceProperties.DeviceID)
	info.VendorID = int(physicalDeviceProperties.VendorID)
	info.Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
	info.DriverVersion = int(physicalDeviceProperties.DriverVersion)
	info.Type = physicalDeviceProperties.DeviceType
	return info, nil
}

// SurfaceSupport implements interface
func (v *VulkanCandidate) SurfaceSupport() (SurfaceSupport, error) {
	var support SurfaceSupport

	var capabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(v.device, v.surface, &capabilities)); err != nil {
		return support, errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceCapabilities()")
	}
	capabilities.Deref()
	capabilities.CurrentExtent.Deref()
	capabilities.MinImageExtent.Deref()
	capabilities.MaxImageExtent.Deref()
	support.Capabilities = capabilities

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(v.device, v.surface, &formatCount, nil)); err != nil {
		return support, errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceFormats(count)")
	}
	if formatCount > 0 {
		formats := make([]vk.SurfaceFormat, formatCount)
		if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(v.device, v.surface, &formatCount, formats)); err != nil {
			return support, errors.Wrap(err, "vk.GetPhysicalDeviceSurfaceFormats(formats)")
		}
		for idx := range formats[:formatCount] {
			formats[idx].Deref()
		}
		support.Formats = formats[:formatCount]
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(v.device, v.surface, &modeCount, nil)); err != nil {
		return support, errors.Wrap(err, "vk.GetPhysicalDeviceSurfacePresentModes(count)")
	}
	if modeCount > 0 {
		modes := make([]vk.PresentMode, modeCount)
		if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(v.device, v.surface, &modeCount, modes)); err != nil {
			return support, errors.Wrap(err, "vk.GetPhysicalDeviceSurfacePresentModes(modes)")
		}
		support.PresentModes = modes[:modeCount]
	}
	return support, nil
}

// QueueFamilies implements interface
func (v *VulkanCandidate) QueueFamilies() ([]vk.QueueFamilyProperties, error) {
	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(v.device, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(v.device, &queueFamilyCount, queueFamilies)
	for idx := range queueFamilies {
		queueFamilies[idx].Deref()
	}
	return queueFamilies, nil
}

// PresentSupport implements interface
func (v *VulkanCandidate) PresentSupport(family uint32) (bool, error) {
	var supported vk.Bool32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceSupport(v.device, family, v.surface, &supported)); err != nil {
		return false, errors.Wrapf(err, "vk.GetPhysicalDeviceSurfaceSupport(%d)", family)
	}
	return supported.B(), nil
}
