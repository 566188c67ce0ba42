package core

import (
	"io"
	"os"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/vkboot/device"
	"github.com/devblok/vkboot/utility/lifetime"
)

// ErrSurfaceBound is returned when a second surface is bound to an instance
var ErrSurfaceBound = errors.New("instance already has a surface")

// ErrNoSurface is returned when an operation needs a surface that isn't bound
var ErrNoSurface = errors.New("instance has no surface")

// NewApplicationInfo describes a Vulkan application with the given name
func NewApplicationInfo(name string) *vk.ApplicationInfo {
	return &vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         vk.MakeVersion(1, 0, 0),
		ApplicationVersion: vk.MakeVersion(1, 0, 0),
		EngineVersion:      vk.MakeVersion(1, 0, 0),
		PApplicationName:   safeString(name),
		PEngineName:        safeString("vkboot"),
	}
}

// instancePlan is what gets enabled on the instance
type instancePlan struct {
	layers     []string
	extensions []string
	debug      bool
}

// resolveInstance decides on layers and extensions given the layers
// offered by the loader. Missing validation layers are not fatal,
// the instance is then created without any debugging facilities.
func resolveInstance(cfg InstanceConfiguration, offered []string, log logrus.FieldLogger) instancePlan {
	plan := instancePlan{
		extensions: appendUnique(nil, cfg.Extensions...),
	}
	if !cfg.DebugMode {
		return plan
	}

	if !LayersSupported(offered, cfg.Layers) {
		log.WithFields(logrus.Fields{
			"requested": cfg.Layers,
			"offered":   offered,
		}).Warn("Validation layers requested, but not available")
		return plan
	}

	plan.debug = true
	plan.layers = append([]string(nil), cfg.Layers...)
	plan.extensions = appendUnique(plan.extensions, DebugReportExtension)
	return plan
}

// newInstanceCreateInfo builds the instance create info for plan. With
// debugging on, the returned debug info is already passed to C and chained
// into PNext, so instance creation itself is reported on. It has to be
// kept until the instance is created, then freed.
func newInstanceCreateInfo(appInfo *vk.ApplicationInfo, plan instancePlan, out io.Writer) (vk.InstanceCreateInfo, *vk.DebugReportCallbackCreateInfo) {
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(plan.extensions)),
		PpEnabledExtensionNames: safeStrings(plan.extensions),
		EnabledLayerCount:       uint32(len(plan.layers)),
		PpEnabledLayerNames:     safeStrings(plan.layers),
	}
	if !plan.debug {
		return instanceInfo, nil
	}

	debugInfo := newDebugReportCreateInfo(out)
	ref, _ := debugInfo.PassRef()
	instanceInfo.PNext = unsafe.Pointer(ref)
	return instanceInfo, debugInfo
}

// NewVulkanInstance creates a Vulkan instance. When procAddr is nil
// the default loader is used, otherwise the one it points to.
func NewVulkanInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration, log logrus.FieldLogger) (*VulkanInstance, error) {
	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, errors.Wrap(err, "vk.SetDefaultGetInstanceProcAddr()")
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, errors.Wrap(err, "vk.Init()")
	}

	var offered []string
	if cfg.DebugMode {
		layers, err := InstanceLayers()
		if err != nil {
			return nil, errors.Wrap(err, "core.InstanceLayers()")
		}
		offered = layers
	}
	plan := resolveInstance(cfg, offered, log)

	out := cfg.DebugOutput
	if out == nil {
		out = os.Stderr
	}
	instanceInfo, debugInfo := newInstanceCreateInfo(appInfo, plan, out)

	var instance vk.Instance
	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		if debugInfo != nil {
			debugInfo.Free()
		}
		return nil, errors.Wrap(err, "vk.CreateInstance()")
	}
	if err := vk.InitInstance(instance); err != nil {
		if debugInfo != nil {
			debugInfo.Free()
		}
		vk.DestroyInstance(instance, nil)
		return nil, errors.Wrap(err, "vk.InitInstance()")
	}

	v := &VulkanInstance{
		log:        log,
		instance:   instance,
		layers:     plan.layers,
		extensions: plan.extensions,
	}
	v.owner = lifetime.New("instance", v.destroy)

	if plan.debug {
		var callback vk.DebugReportCallback
		err := vk.Error(vk.CreateDebugReportCallback(instance, debugInfo, nil, &callback))
		debugInfo.Free()
		if err != nil {
			v.Destroy()
			return nil, errors.Wrap(err, "vk.CreateDebugReportCallback()")
		}
		v.owner.Adopt("debug callback", func() {
			vk.DestroyDebugReportCallback(instance, callback, nil)
		})
	}

	log.WithFields(logrus.Fields{
		"layers":     plan.layers,
		"extensions": plan.extensions,
		"debug":      plan.debug,
	}).Info("Vulkan instance created")
	return v, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	log   logrus.FieldLogger
	owner *lifetime.Owner

	instance   vk.Instance
	surface    vk.Surface
	layers     []string
	extensions []string
}

// BindSurface creates the surface of window and binds it to the instance.
// The surface is released along with the instance.
func (v *VulkanInstance) BindSurface(window SurfaceCreator) (vk.Surface, error) {
	if v.surface != vk.NullSurface {
		return vk.NullSurface, ErrSurfaceBound
	}

	pSurface, err := window.VulkanCreateSurface(v.instance)
	if err != nil {
		return vk.NullSurface, errors.Wrap(err, "VulkanCreateSurface()")
	}

	surface := vk.SurfaceFromPointer(uintptr(pSurface))
	v.surface = surface
	v.owner.Adopt("surface", func() {
		vk.DestroySurface(v.instance, surface, nil)
		v.surface = vk.NullSurface
	})
	return surface, nil
}

// Surface returns the bound surface, or vk.NullSurface
func (v *VulkanInstance) Surface() vk.Surface {
	return v.surface
}

// SelectDevice picks the first physical device that meets req
// and can present to the bound surface.
func (v *VulkanInstance) SelectDevice(req device.Requirements) (device.Selection, error) {
	if v.surface == vk.NullSurface {
		return device.Selection{}, ErrNoSurface
	}

	physicalDevices, err := device.EnumeratePhysicalDevices(v.instance)
	if err != nil {
		return device.Selection{}, err
	}
	return device.Select(device.NewVulkanCandidates(physicalDevices, v.surface), req, v.log)
}

// PhysicalDevicesInfo returns a struct for each Physical Device
// along with info about those devices
func (v *VulkanInstance) PhysicalDevicesInfo() ([]device.PhysicalDeviceInfo, error) {
	physicalDevices, err := device.EnumeratePhysicalDevices(v.instance)
	if err != nil {
		return nil, err
	}

	pdi := make([]device.PhysicalDeviceInfo, 0, len(physicalDevices))
	for idx, pd := range physicalDevices {
		info, err := device.Describe(pd)
		if err != nil {
			return nil, errors.Wrapf(err, "device.Describe(%d)", idx)
		}
		pdi = append(pdi, info)
	}
	return pdi, nil
}

// Inner returns internal vk.Instance
func (v *VulkanInstance) Inner() vk.Instance {
	return v.instance
}

// Layers returns the enabled instance layers
func (v *VulkanInstance) Layers() []string {
	return v.layers
}

// Extensions returns the enabled instance extensions
func (v *VulkanInstance) Extensions() []string {
	return v.extensions
}

// Owner implements interface
func (v *VulkanInstance) Owner() *lifetime.Owner {
	return v.owner
}

// Destroy implements interface
func (v *VulkanInstance) Destroy() {
	if v == nil {
		return
	}
	v.owner.Release()
}

func (v *VulkanInstance) destroy() {
	vk.DestroyInstance(v.instance, nil)
}
