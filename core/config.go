package core

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"
	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/vkboot/core/renderer"
	"github.com/devblok/vkboot/device"
)

// Configuration keys read from the environment
const (
	EnvWindowTitle      = "KORU_WINDOW_TITLE"
	EnvWindowWidth      = "KORU_WINDOW_WIDTH"
	EnvWindowHeight     = "KORU_WINDOW_HEIGHT"
	EnvDiagnostics      = "KORU_DIAGNOSTICS"
	EnvValidationLayers = "KORU_VALIDATION_LAYERS"
	EnvDeviceTypes      = "KORU_DEVICE_TYPES"
	EnvEventPollDelay   = "KORU_EVENT_POLL_MS"
	EnvLogLevel         = "KORU_LOG_LEVEL"
)

// Validation layer and device extension names known in advance
const (
	KhronosValidationLayer = "VK_LAYER_KHRONOS_validation"
	SwapchainExtension     = "VK_KHR_swapchain"
	DebugReportExtension   = "VK_EXT_debug_report"
)

// resources holds files bundled with the binary
var resources = packr.NewBox("./resources")

// Configuration defines a global engine configuration setting
type Configuration struct {
	Window   WindowConfiguration
	Instance InstanceConfiguration
	Device   DeviceConfiguration
	Time     TimeConfiguration

	LogLevel logrus.Level
}

// WindowConfiguration describes the window that is presented to
type WindowConfiguration struct {
	Title  string
	Width  uint32
	Height uint32
}

// InstanceConfiguration is used to create the Vulkan instance
type InstanceConfiguration struct {
	ApplicationName string

	// DebugMode requests validation Layers and the debug report callback.
	// When the layers are missing the instance is created without either.
	DebugMode bool
	Layers    []string

	// Extensions required by the platform, usually
	// reported by the windowing system
	Extensions []string

	// DebugOutput receives debug report messages
	DebugOutput io.Writer
}

// DeviceConfiguration is used to select and create a device
type DeviceConfiguration struct {
	Extensions []string

	// Types of physical devices that may be selected
	Types []vk.PhysicalDeviceType
}

// Requirements builds the selection requirements from the configuration
func (d DeviceConfiguration) Requirements() device.Requirements {
	return device.Requirements{
		Extensions: d.Extensions,
		Accept:     device.AnyOf(d.Types...),
	}
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// EventPollDelay is the delay between window event polls, in milliseconds
	EventPollDelay int
}

// RendererConfiguration derives the renderer configuration from the window
func (c Configuration) RendererConfiguration() renderer.Configuration {
	return renderer.Configuration{
		ScreenWidth:  c.Window.Width,
		ScreenHeight: c.Window.Height,
	}
}

// DefaultConfiguration returns the built in configuration
func DefaultConfiguration() Configuration {
	return Configuration{
		Window: WindowConfiguration{
			Title:  "vkboot",
			Width:  800,
			Height: 600,
		},
		Instance: InstanceConfiguration{
			ApplicationName: "vkboot",
			DebugMode:       true,
			Layers:          []string{KhronosValidationLayer},
			DebugOutput:     os.Stderr,
		},
		Device: DeviceConfiguration{
			Extensions: []string{SwapchainExtension},
			Types:      []vk.PhysicalDeviceType{vk.PhysicalDeviceTypeDiscreteGpu},
		},
		Time: TimeConfiguration{
			EventPollDelay: 16,
		},
		LogLevel: logrus.InfoLevel,
	}
}

// LoadConfiguration starts from DefaultConfiguration and applies the bundled
// defaults.env, then the environment, including a .env file in the
// working directory.
func LoadConfiguration() (Configuration, error) {
	cfg := DefaultConfiguration()

	bundled, err := resources.FindString("defaults.env")
	if err != nil {
		return cfg, errors.Wrap(err, "core.LoadConfiguration(defaults.env)")
	}
	defaults, err := godotenv.Unmarshal(bundled)
	if err != nil {
		return cfg, errors.Wrap(err, "godotenv.Unmarshal(defaults.env)")
	}
	if err := cfg.Apply(MapLookup(defaults)); err != nil {
		return cfg, errors.Wrap(err, "defaults.env")
	}

	if err := cfg.Apply(EnvLookup); err != nil {
		return cfg, errors.Wrap(err, "environment")
	}
	return cfg, nil
}

// Lookup returns a configuration value and whether it was set
type Lookup func(key string) (string, bool)

// EnvLookup looks up keys through envy
func EnvLookup(key string) (string, bool) {
	value, err := envy.MustGet(key)
	return value, err == nil
}

// MapLookup looks up keys in a map, as returned by godotenv
func MapLookup(values map[string]string) Lookup {
	return func(key string) (string, bool) {
		value, ok := values[key]
		return value, ok
	}
}

// Apply overrides configuration with every key found with lookup
func (c *Configuration) Apply(lookup Lookup) error {
	if title, ok := lookup(EnvWindowTitle); ok {
		c.Window.Title = title
	}
	if err := lookupUint32(lookup, EnvWindowWidth, &c.Window.Width); err != nil {
		return err
	}
	if err := lookupUint32(lookup, EnvWindowHeight, &c.Window.Height); err != nil {
		return err
	}

	if value, ok := lookup(EnvDiagnostics); ok {
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvDiagnostics)
		}
		c.Instance.DebugMode = enabled
	}
	if value, ok := lookup(EnvValidationLayers); ok {
		c.Instance.Layers = splitList(value)
	}

	if value, ok := lookup(EnvDeviceTypes); ok {
		var types []vk.PhysicalDeviceType
		for _, name := range splitList(value) {
			t, ok := device.ParseType(name)
			if !ok {
				return errors.Errorf("%s: unknown device type %q", EnvDeviceTypes, name)
			}
			types = append(types, t)
		}
		if len(types) == 0 {
			return errors.Errorf("%s: no device types", EnvDeviceTypes)
		}
		c.Device.Types = types
	}

	if value, ok := lookup(EnvEventPollDelay); ok {
		delay, err := strconv.Atoi(value)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvEventPollDelay)
		}
		if delay <= 0 {
			return errors.Errorf("%s: delay must be positive, got %d", EnvEventPollDelay, delay)
		}
		c.Time.EventPollDelay = delay
	}

	if value, ok := lookup(EnvLogLevel); ok {
		level, err := logrus.ParseLevel(value)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvLogLevel)
		}
		c.LogLevel = level
	}
	return nil
}

func lookupUint32(lookup Lookup, key string, dst *uint32) error {
	value, ok := lookup(key)
	if !ok {
		return nil
	}
	parsed, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		return errors.Wrapf(err, "%s", key)
	}
	if parsed == 0 {
		return errors.Errorf("%s: must not be zero", key)
	}
	*dst = uint32(parsed)
	return nil
}

func splitList(value string) []string {
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
