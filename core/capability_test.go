package core_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/devblok/vkboot/core"
)

func TestLayersSupported(t *testing.T) {
	offered := []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_MESA_overlay"}

	tests := []struct {
		name      string
		offered   []string
		requested []string
		want      bool
	}{
		{"all present", offered, []string{"VK_LAYER_KHRONOS_validation"}, true},
		{"every offered", offered, offered, true},
		{"empty request", offered, nil, true},
		{"nothing offered", nil, []string{"VK_LAYER_KHRONOS_validation"}, false},
		{"nothing offered, nothing requested", nil, nil, false},
		{"one missing", offered, []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_LUNARG_api_dump"}, false},
		{"case differs", offered, []string{"vk_layer_khronos_validation"}, false},
		{"prefix only", offered, []string{"VK_LAYER_KHRONOS"}, false},
		{"null terminated", offered, []string{"VK_LAYER_KHRONOS_validation\x00"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			qt.Assert(t, core.LayersSupported(tc.offered, tc.requested), qt.Equals, tc.want)
		})
	}
}
