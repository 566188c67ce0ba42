package main

import (
	"runtime"

	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/vkboot/core"
	"github.com/devblok/vkboot/core/renderer"
	"github.com/devblok/vkboot/utility/lifetime"
)

func init() {
	runtime.LockOSThread()
}

func newWindow(cfg core.WindowConfiguration) (*sdl.Window, error) {
	return sdl.CreateWindow(cfg.Title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width),
		int32(cfg.Height),
		sdl.WINDOW_VULKAN|sdl.WINDOW_SHOWN)
}

func main() {
	cfg, err := core.LoadConfiguration()
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}
}

func run(cfg core.Configuration) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		return err
	}
	defer sdl.VulkanUnloadLibrary()

	window, err := newWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	cfg.Instance.Extensions = window.VulkanGetInstanceExtensions()
	vkInstance, err := core.NewVulkanInstance(
		core.NewApplicationInfo(cfg.Instance.ApplicationName),
		sdl.VulkanGetVkGetInstanceProcAddr(),
		cfg.Instance,
		log.StandardLogger())
	if err != nil {
		return err
	}
	defer teardown(vkInstance)

	surface, err := vkInstance.BindSurface(window)
	if err != nil {
		return err
	}

	sel, err := vkInstance.SelectDevice(cfg.Device.Requirements())
	if err != nil {
		return err
	}

	logicalDevice, err := core.NewLogicalDevice(vkInstance, sel, cfg.Device.Extensions)
	if err != nil {
		return err
	}

	swapchain, err := renderer.NewSwapchain(logicalDevice.Owner(), logicalDevice.Handle(), surface, sel, cfg.RendererConfiguration())
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"format":      swapchain.Format().Format,
		"presentMode": swapchain.PresentMode(),
		"width":       swapchain.Extent().Width,
		"height":      swapchain.Extent().Height,
		"images":      len(swapchain.Images()),
	}).Info("Swapchain ready")

	time := core.NewTime(cfg.Time)
	defer time.Stop()

EventLoop:
	for range time.EventTicker().C {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			if _, ok := event.(*sdl.QuitEvent); ok {
				log.Info("Event loop exited")
				break EventLoop
			}
		}
	}
	return nil
}

// teardown lists the live ownership tree, then releases it children first
func teardown(instance core.Owned) {
	if log.IsLevelEnabled(log.DebugLevel) {
		instance.Owner().Walk(func(depth int, o *lifetime.Owner) {
			log.WithField("depth", depth).Debug("Live " + o.Path())
		})
	}
	instance.Destroy()
}
