package raster

import "errors"

// Sentinel errors returned by the core driver. Callers should compare
// against these with errors.Is rather than matching error strings.
var (
	// ErrZeroDimension is returned by New and Resize when either
	// dimension is zero or negative.
	ErrZeroDimension = errors.New("raster: width and height must be positive")

	// ErrTextureNotFound names a TextureHandle that the Uniforms view
	// does not hold. No function in this package returns it:
	// Uniforms.Texture reports an unknown handle through its ok result.
	ErrTextureNotFound = errors.New("raster: texture handle not found")

	// ErrIndexOutOfRange is returned by LoadTexture when the supplied
	// byte slice does not match width*height*4.
	ErrIndexOutOfRange = errors.New("raster: texture data length does not match width*height*4")

	// ErrPresentRejected is returned by Present when the configured
	// Surface rejects the color buffer.
	ErrPresentRejected = errors.New("raster: surface rejected the frame")

	// ErrNoSurface is returned by Present when the Core holds no
	// Surface. New installs NullSurface when Config.Surface is nil, so
	// a Core built by New never returns it.
	ErrNoSurface = errors.New("raster: no surface configured")
)
