package device

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// ErrNoSuitableDevice is returned when enumeration finished
// but no candidate passed every suitability check.
var ErrNoSuitableDevice = errors.New("no suitable physical device")

// Selection is the outcome of picking a physical device.
type Selection struct {
	Index    int
	Device   vk.PhysicalDevice
	Info     PhysicalDeviceInfo
	Support  SurfaceSupport
	Families QueueFamilyIndices
}

// Evaluate checks a candidate against the requirements. When the device is
// unsuitable the returned string holds the reason and the Selection is partial.
// An error means the driver could not be queried.
func Evaluate(c Candidate, req Requirements) (Selection, string, error) {
	accept := req.Accept
	if accept == nil {
		accept = DiscreteOnly
	}

	var sel Selection
	sel.Device = c.Handle()

	info, err := c.Info()
	if err != nil {
		return sel, "", err
	}
	sel.Info = info

	if !accept(info.Type) {
		return sel, "device type " + info.TypeName() + " not accepted", nil
	}

	if !info.HasExtensions(req.Extensions) {
		return sel, "required device extensions missing", nil
	}

	support, err := c.SurfaceSupport()
	if err != nil {
		return sel, "", err
	}
	sel.Support = support
	if !support.Adequate() {
		return sel, "no surface formats or present modes", nil
	}

	families, err := c.QueueFamilies()
	if err != nil {
		return sel, "", err
	}
	indices, err := FindQueueFamilies(families, c.PresentSupport)
	if err != nil {
		return sel, "", err
	}
	sel.Families = indices
	if !indices.IsComplete() {
		return sel, "no graphics and present queue families", nil
	}

	return sel, "", nil
}

// Select returns the first suitable candidate in enumeration order. There
// is no ranking, given the same candidates the outcome is always the same.
func Select(candidates []Candidate, req Requirements, log logrus.FieldLogger) (Selection, error) {
	for idx, c := range candidates {
		sel, reason, err := Evaluate(c, req)
		if err != nil {
			return Selection{}, errors.Wrapf(err, "device.Evaluate(%d)", idx)
		}
		entry := log.WithFields(logrus.Fields{
			"index": idx,
			"name":  sel.Info.Name,
			"type":  sel.Info.TypeName(),
		})
		if reason != "" {
			entry.WithField("reason", reason).Debug("Physical device rejected")
			continue
		}
		entry.Info("Physical device selected")
		sel.Index = idx
		return sel, nil
	}
	return Selection{}, ErrNoSuitableDevice
}
