package core

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"
)

// InstanceLayers returns the names of all instance layers the loader offers
func InstanceLayers() ([]string, error) {
	var layerCount uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&layerCount, nil)); err != nil {
		return nil, errors.Wrap(err, "vk.EnumerateInstanceLayerProperties(count)")
	}
	layers := make([]vk.LayerProperties, layerCount)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&layerCount, layers)); err != nil {
		return nil, errors.Wrap(err, "vk.EnumerateInstanceLayerProperties(layers)")
	}

	names := make([]string, 0, layerCount)
	for _, layer := range layers[:layerCount] {
		layer.Deref()
		names = append(names, vk.ToString(layer.LayerName[:]))
	}
	return names, nil
}

// SupportsLayers checks whether every requested layer is offered by the loader.
// vk.Init has to be called beforehand.
func SupportsLayers(requested []string) (bool, error) {
	offered, err := InstanceLayers()
	if err != nil {
		return false, err
	}
	return LayersSupported(offered, requested), nil
}

// LayersSupported is false when nothing is offered, otherwise it's true when
// each requested name is found in offered verbatim.
func LayersSupported(offered, requested []string) bool {
	if len(offered) == 0 {
		return false
	}
	available := make(map[string]struct{}, len(offered))
	for _, name := range offered {
		available[unsafeString(name)] = struct{}{}
	}
	for _, name := range requested {
		if _, ok := available[unsafeString(name)]; !ok {
			return false
		}
	}
	return true
}
