package renderer

import (
	"github.com/pkg/errors"
	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/vkboot/device"
	"github.com/devblok/vkboot/utility/lifetime"
)

// Swapchain is a created presentation chain, along with everything
// negotiated for it. It's never changed after creation, when surface
// capabilities change a new one has to be made.
type Swapchain struct {
	owner  *lifetime.Owner
	device vk.Device

	swapchain   vk.Swapchain
	format      vk.SurfaceFormat
	presentMode vk.PresentMode
	extent      vk.Extent2D
	images      []vk.Image
}

// NewSwapchain negotiates and creates a swapchain for the selected device,
// using the surface support snapshot taken during selection. The swapchain
// is adopted by owner, which should be the owner of dev.
func NewSwapchain(owner *lifetime.Owner, dev vk.Device, surface vk.Surface, sel device.Selection, cfg Configuration) (*Swapchain, error) {
	if !sel.Families.IsComplete() {
		return nil, errors.New("renderer.NewSwapchain(): queue family selection incomplete")
	}
	if len(sel.Support.Formats) == 0 {
		return nil, errors.New("renderer.NewSwapchain(): surface reports no formats")
	}

	capabilities := sel.Support.Capabilities
	format := ChooseSurfaceFormat(sel.Support.Formats)
	presentMode := ChoosePresentMode(sel.Support.PresentModes)
	extent := ChooseExtent(capabilities, vk.Extent2D{
		Width:  cfg.ScreenWidth,
		Height: cfg.ScreenHeight,
	})
	sharingMode, familyIndices := ChooseSharing(sel.Families.Graphics, sel.Families.Present)

	scci := vk.SwapchainCreateInfo{
		SType:                 vk.StructureTypeSwapchainCreateInfo,
		Surface:               surface,
		MinImageCount:         ChooseImageCount(capabilities),
		ImageFormat:           format.Format,
		ImageColorSpace:       format.ColorSpace,
		ImageExtent:           extent,
		ImageArrayLayers:      1,
		ImageUsage:            vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageSharingMode:      sharingMode,
		QueueFamilyIndexCount: uint32(len(familyIndices)),
		PQueueFamilyIndices:   familyIndices,
		PreTransform:          capabilities.CurrentTransform,
		CompositeAlpha:        vk.CompositeAlphaOpaqueBit,
		PresentMode:           presentMode,
		Clipped:               vk.True,
	}

	var swapchain vk.Swapchain
	if err := vk.Error(vk.CreateSwapchain(dev, &scci, nil, &swapchain)); err != nil {
		return nil, errors.Wrap(err, "vk.CreateSwapchain()")
	}

	sc := &Swapchain{
		device:      dev,
		swapchain:   swapchain,
		format:      format,
		presentMode: presentMode,
		extent:      extent,
	}
	sc.owner = owner.Adopt("swapchain", sc.destroy)

	var numImages uint32
	if err := vk.Error(vk.GetSwapchainImages(dev, swapchain, &numImages, nil)); err != nil {
		sc.Destroy()
		return nil, errors.Wrap(err, "vk.GetSwapchainImages(num)")
	}
	images := make([]vk.Image, numImages)
	if err := vk.Error(vk.GetSwapchainImages(dev, swapchain, &numImages, images)); err != nil {
		sc.Destroy()
		return nil, errors.Wrap(err, "vk.GetSwapchainImages(images)")
	}
	sc.images = images[:numImages]

	return sc, nil
}

// Handle returns the internal vk.Swapchain
func (s *Swapchain) Handle() vk.Swapchain {
	return s.swapchain
}

// Format returns the negotiated surface format
func (s *Swapchain) Format() vk.SurfaceFormat {
	return s.format
}

// PresentMode returns the negotiated present mode
func (s *Swapchain) PresentMode() vk.PresentMode {
	return s.presentMode
}

// Extent returns the negotiated image extent
func (s *Swapchain) Extent() vk.Extent2D {
	return s.extent
}

// Images returns the swapchain images in order. They belong to
// the swapchain and must not be destroyed on their own.
func (s *Swapchain) Images() []vk.Image {
	return s.images
}

// Destroy releases the swapchain and, with it, its images
func (s *Swapchain) Destroy() {
	s.owner.Release()
}

func (s *Swapchain) destroy() {
	vk.DestroySwapchain(s.device, s.swapchain, nil)
	s.images = nil
}
