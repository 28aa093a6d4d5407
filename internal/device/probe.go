package device

import (
	"runtime"

	"github.com/ebitengine/purego"
)

// candidateLoaders lists the platform-specific shared library names for the
// system Vulkan loader, checked in order.
func candidateLoaders() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{"vulkan-1.dll"}
	case "darwin":
		return []string{"libvulkan.dylib", "libMoltenVK.dylib"}
	default:
		return []string{"libvulkan.so.1", "libvulkan.so"}
	}
}

// ProbeVulkanLoader dlopen-probes the system Vulkan loader without linking
// against it, the same technique the rest of this stack uses to locate a
// native engine library at runtime. It reports presence only; it never
// creates an instance or enumerates devices, since that lifecycle is
// explicitly out of scope for this engine.
func ProbeVulkanLoader() (found bool, library string) {
	for _, name := range candidateLoaders() {
		handle, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err != nil {
			continue
		}

		_ = purego.Dlclose(handle)

		return true, name
	}

	return false, ""
}
