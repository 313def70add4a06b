// Package imagecodec decodes, scales and encodes PNG rasters.
//
// Scaling is always a direct stretch to the requested width and height; the
// source aspect ratio is never preserved. Scaling kernels come from
// golang.org/x/image/draw, with imaging's Lanczos filter available as the
// highest-quality option. Decoding and encoding go through imaging so the PNG
// compression level is configurable.
package imagecodec
