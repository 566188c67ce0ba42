package core

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/vkboot/device"
	"github.com/devblok/vkboot/utility/lifetime"
)

// queueCreateInfos requests one queue from every distinct family
func queueCreateInfos(families device.QueueFamilyIndices) []vk.DeviceQueueCreateInfo {
	var infos []vk.DeviceQueueCreateInfo
	for _, family := range families.Unique() {
		infos = append(infos, vk.DeviceQueueCreateInfo{
			SType:            vk.StructureTypeDeviceQueueCreateInfo,
			QueueFamilyIndex: family,
			QueueCount:       1,
			PQueuePriorities: []float32{1.0},
		})
	}
	return infos
}

// NewLogicalDevice creates a logical device for the selected physical device,
// with queues for graphics and presentation and the given extensions enabled.
// The device is adopted by the instance.
func NewLogicalDevice(instance *VulkanInstance, sel device.Selection, extensions []string) (*LogicalDevice, error) {
	if !sel.Families.IsComplete() {
		return nil, errors.New("core.NewLogicalDevice(): queue family selection incomplete")
	}

	queueInfos := queueCreateInfos(sel.Families)
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: safeStrings(extensions),
	}

	var vkDevice vk.Device
	if err := vk.Error(vk.CreateDevice(sel.Device, &dci, nil, &vkDevice)); err != nil {
		return nil, errors.Wrap(err, "vk.CreateDevice()")
	}

	ld := &LogicalDevice{
		device:   vkDevice,
		families: sel.Families,
	}
	vk.GetDeviceQueue(vkDevice, sel.Families.Graphics, 0, &ld.graphicsQueue)
	vk.GetDeviceQueue(vkDevice, sel.Families.Present, 0, &ld.presentQueue)
	ld.owner = instance.Owner().Adopt("device", ld.destroy)

	instance.log.WithFields(logrus.Fields{
		"device":   sel.Info.Name,
		"graphics": sel.Families.Graphics,
		"present":  sel.Families.Present,
		"queues":   len(queueInfos),
	}).Info("Logical device created")
	return ld, nil
}

// LogicalDevice is a created device together with its queues
type LogicalDevice struct {
	owner *lifetime.Owner

	device        vk.Device
	families      device.QueueFamilyIndices
	graphicsQueue vk.Queue
	presentQueue  vk.Queue
}

// Handle returns internal vk.Device
func (l *LogicalDevice) Handle() vk.Device {
	return l.device
}

// Families returns the queue families the device was created with
func (l *LogicalDevice) Families() device.QueueFamilyIndices {
	return l.families
}

// GraphicsQueue returns the first queue of the graphics family
func (l *LogicalDevice) GraphicsQueue() vk.Queue {
	return l.graphicsQueue
}

// PresentQueue returns the first queue of the present family
func (l *LogicalDevice) PresentQueue() vk.Queue {
	return l.presentQueue
}

// Owner implements interface
func (l *LogicalDevice) Owner() *lifetime.Owner {
	return l.owner
}

// Destroy implements interface
func (l *LogicalDevice) Destroy() {
	l.owner.Release()
}

func (l *LogicalDevice) destroy() {
	vk.DeviceWaitIdle(l.device)
	vk.DestroyDevice(l.device, nil)
}
