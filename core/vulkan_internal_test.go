package core

import (
	"io"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/devblok/vkboot/device"
)

var platformExtensions = []string{"VK_KHR_surface", "VK_KHR_xlib_surface"}

func debugInstanceConfiguration() InstanceConfiguration {
	return InstanceConfiguration{
		ApplicationName: "test",
		DebugMode:       true,
		Layers:          []string{KhronosValidationLayer},
		Extensions:      platformExtensions,
	}
}

func TestResolveInstanceWithoutLayers(t *testing.T) {
	c := qt.New(t)
	logger, hook := test.NewNullLogger()

	plan := resolveInstance(debugInstanceConfiguration(), nil, logger)
	c.Assert(plan.debug, qt.IsFalse)
	c.Assert(plan.layers, qt.HasLen, 0)
	c.Assert(plan.extensions, qt.DeepEquals, platformExtensions)

	c.Assert(hook.AllEntries(), qt.HasLen, 1)
	c.Assert(hook.LastEntry().Level, qt.Equals, logrus.WarnLevel)
	c.Assert(hook.LastEntry().Message, qt.Equals, "Validation layers requested, but not available")
}

func TestResolveInstanceMissingLayer(t *testing.T) {
	c := qt.New(t)
	logger, hook := test.NewNullLogger()

	plan := resolveInstance(debugInstanceConfiguration(), []string{"VK_LAYER_MESA_overlay"}, logger)
	c.Assert(plan.debug, qt.IsFalse)
	c.Assert(plan.layers, qt.HasLen, 0)
	c.Assert(plan.extensions, qt.DeepEquals, platformExtensions)
	c.Assert(hook.LastEntry().Level, qt.Equals, logrus.WarnLevel)
}

func TestResolveInstanceWithLayers(t *testing.T) {
	c := qt.New(t)
	logger, hook := test.NewNullLogger()

	plan := resolveInstance(debugInstanceConfiguration(), []string{"VK_LAYER_MESA_overlay", KhronosValidationLayer}, logger)
	c.Assert(plan.debug, qt.IsTrue)
	c.Assert(plan.layers, qt.DeepEquals, []string{KhronosValidationLayer})
	c.Assert(plan.extensions, qt.DeepEquals, []string{"VK_KHR_surface", "VK_KHR_xlib_surface", DebugReportExtension})
	c.Assert(hook.AllEntries(), qt.HasLen, 0)
}

func TestResolveInstanceDebugExtensionOnce(t *testing.T) {
	c := qt.New(t)
	logger, _ := test.NewNullLogger()

	cfg := debugInstanceConfiguration()
	cfg.Extensions = []string{"VK_KHR_surface", DebugReportExtension + "\x00"}
	plan := resolveInstance(cfg, []string{KhronosValidationLayer}, logger)
	c.Assert(plan.extensions, qt.DeepEquals, []string{"VK_KHR_surface", DebugReportExtension + "\x00"})
}

func TestResolveInstanceDebugModeOff(t *testing.T) {
	c := qt.New(t)
	logger, hook := test.NewNullLogger()

	cfg := debugInstanceConfiguration()
	cfg.DebugMode = false
	plan := resolveInstance(cfg, []string{KhronosValidationLayer}, logger)
	c.Assert(plan.debug, qt.IsFalse)
	c.Assert(plan.layers, qt.HasLen, 0)
	c.Assert(plan.extensions, qt.DeepEquals, platformExtensions)
	c.Assert(hook.AllEntries(), qt.HasLen, 0)
}

func TestInstanceCreateInfoChainsDebugInfo(t *testing.T) {
	c := qt.New(t)
	logger, _ := test.NewNullLogger()

	plan := resolveInstance(debugInstanceConfiguration(), []string{KhronosValidationLayer}, logger)
	info, debugInfo := newInstanceCreateInfo(NewApplicationInfo("test"), plan, io.Discard)
	c.Assert(debugInfo, qt.Not(qt.IsNil))
	defer debugInfo.Free()

	c.Assert(info.PNext != nil, qt.IsTrue)
	c.Assert(info.PpEnabledLayerNames, qt.DeepEquals, []string{KhronosValidationLayer + "\x00"})
	c.Assert(info.EnabledLayerCount, qt.Equals, uint32(1))
	c.Assert(info.PpEnabledExtensionNames, qt.DeepEquals, []string{"VK_KHR_surface\x00", "VK_KHR_xlib_surface\x00", DebugReportExtension + "\x00"})
	c.Assert(info.EnabledExtensionCount, qt.Equals, uint32(3))
}

func TestInstanceCreateInfoWithoutLayers(t *testing.T) {
	c := qt.New(t)
	logger, _ := test.NewNullLogger()

	plan := resolveInstance(debugInstanceConfiguration(), nil, logger)
	info, debugInfo := newInstanceCreateInfo(NewApplicationInfo("test"), plan, io.Discard)
	c.Assert(debugInfo, qt.IsNil)
	c.Assert(info.PNext == nil, qt.IsTrue)
	c.Assert(info.EnabledLayerCount, qt.Equals, uint32(0))
	c.Assert(info.PpEnabledLayerNames, qt.HasLen, 0)
	c.Assert(info.PpEnabledExtensionNames, qt.DeepEquals, []string{"VK_KHR_surface\x00", "VK_KHR_xlib_surface\x00"})
}

func TestQueueCreateInfos(t *testing.T) {
	c := qt.New(t)

	shared := queueCreateInfos(device.QueueFamilyIndices{
		Graphics: 1, HasGraphics: true,
		Present: 1, HasPresent: true,
	})
	c.Assert(shared, qt.HasLen, 1)
	c.Assert(shared[0].QueueFamilyIndex, qt.Equals, uint32(1))
	c.Assert(shared[0].QueueCount, qt.Equals, uint32(1))
	c.Assert(shared[0].PQueuePriorities, qt.DeepEquals, []float32{1.0})

	separate := queueCreateInfos(device.QueueFamilyIndices{
		Graphics: 0, HasGraphics: true,
		Present: 2, HasPresent: true,
	})
	c.Assert(separate, qt.HasLen, 2)
	c.Assert(separate[0].QueueFamilyIndex, qt.Equals, uint32(0))
	c.Assert(separate[1].QueueFamilyIndex, qt.Equals, uint32(2))
	for _, info := range separate {
		c.Assert(info.QueueCount, qt.Equals, uint32(1))
		c.Assert(info.PQueuePriorities, qt.DeepEquals, []float32{1.0})
	}
}

func TestSafeStrings(t *testing.T) {
	c := qt.New(t)
	c.Assert(safeStrings([]string{"a", "b\x00"}), qt.DeepEquals, []string{"a\x00", "b\x00"})
	c.Assert(safeStrings(nil), qt.HasLen, 0)
	c.Assert(appendUnique([]string{"a"}, "a\x00", "b", "b"), qt.DeepEquals, []string{"a", "b"})
}
