package core

import (
	"fmt"
	"io"
	"strings"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

const allDebugReportFlags = vk.DebugReportInformationBit |
	vk.DebugReportWarningBit |
	vk.DebugReportPerformanceWarningBit |
	vk.DebugReportErrorBit |
	vk.DebugReportDebugBit

func hasFlag(flags vk.DebugReportFlags, bit vk.DebugReportFlagBits) bool {
	return flags&vk.DebugReportFlags(bit) != 0
}

// debugSeverity picks the most severe bit set
func debugSeverity(flags vk.DebugReportFlags) string {
	switch {
	case hasFlag(flags, vk.DebugReportErrorBit):
		return "[Error]"
	case hasFlag(flags, vk.DebugReportWarningBit), hasFlag(flags, vk.DebugReportPerformanceWarningBit):
		return "[Warning]"
	case hasFlag(flags, vk.DebugReportInformationBit):
		return "[Info]"
	case hasFlag(flags, vk.DebugReportDebugBit):
		return "[Verbose]"
	}
	return "[Unknown]"
}

func debugCategory(flags vk.DebugReportFlags, layerPrefix string) string {
	switch {
	case hasFlag(flags, vk.DebugReportPerformanceWarningBit):
		return "[Performance]"
	case strings.Contains(strings.ToLower(layerPrefix), "validation"):
		return "[Validation]"
	}
	return "[General]"
}

// FormatDebugMessage formats a debug report message for the diagnostic stream
func FormatDebugMessage(flags vk.DebugReportFlags, layerPrefix, message string) string {
	return "[Debug]" + debugSeverity(flags) + debugCategory(flags, layerPrefix) + message
}

// newDebugReportCreateInfo creates callback info that writes every message to out
func newDebugReportCreateInfo(out io.Writer) *vk.DebugReportCallbackCreateInfo {
	return &vk.DebugReportCallbackCreateInfo{
		SType: vk.StructureTypeDebugReportCallbackCreateInfo,
		Flags: vk.DebugReportFlags(allDebugReportFlags),
		PfnCallback: func(flags vk.DebugReportFlags, objectType vk.DebugReportObjectType,
			object uint64, location uint, messageCode int32, pLayerPrefix string,
			pMessage string, pUserData unsafe.Pointer) vk.Bool32 {
			fmt.Fprintln(out, FormatDebugMessage(flags, pLayerPrefix, pMessage))
			return vk.False
		},
	}
}
