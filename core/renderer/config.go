package renderer

// Configuration describes the renderer configuration
type Configuration struct {
	// ScreenWidth and ScreenHeight are used for the swapchain extent
	// when the surface leaves the choice to the application
	ScreenWidth  uint32
	ScreenHeight uint32
}
