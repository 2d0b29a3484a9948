package format

import "github.com/gogpu/gputypes"

// TextureFormat returns the WebGPU texture format that views a linear
// buffer of base format f, or TextureFormatUndefined when no texture
// format matches the memory layout.
func TextureFormat(f BaseFormat) gputypes.TextureFormat {
	switch f {
	case RGBA8888, RGBX8888:
		return gputypes.TextureFormatRGBA8Unorm
	case BGRA8888:
		return gputypes.TextureFormatBGRA8Unorm
	case RGBA1010102:
		return gputypes.TextureFormatRGB10A2Unorm
	case RGBA16161616:
		return gputypes.TextureFormatRGBA16Float
	case Y8:
		return gputypes.TextureFormatR8Unorm
	case Depth16:
		return gputypes.TextureFormatDepth16Unorm
	case Depth24:
		return gputypes.TextureFormatDepth24Plus
	case Depth24Stencil8:
		return gputypes.TextureFormatDepth24PlusStencil8
	case Depth32F:
		return gputypes.TextureFormatDepth32Float
	case Depth32FStencil8:
		return gputypes.TextureFormatDepth32FloatStencil8
	case Stencil8:
		return gputypes.TextureFormatStencil8
	default:
		return gputypes.TextureFormatUndefined
	}
}
