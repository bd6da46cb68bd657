/*
NAME
  ycbcr.go

DESCRIPTION
  ycbcr.go implements the YCbCr<->RGB (ITU-R BT.601) and CMYK<->RGB color
  transforms used by the conversion engine, expressed as gonum matrix/
  vector operations rather than hand-unrolled arithmetic (SPEC_FULL.md
  §E.2: the BT.601 coefficient matrix is data, not code), grounded on
  original_source/src/libsail-manip/cmyk.c and spec.md §4.5's coefficient
  table.

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package convert

import "gonum.org/v1/gonum/mat"

// bt601YCbCrToRGB is the inverse BT.601 matrix: RGB = M * (Y, Cb-128, Cr-128).
var bt601YCbCrToRGB = mat.NewDense(3, 3, []float64{
	1, 0, 1.402,
	1, -0.344136, -0.714136,
	1, 1.772, 0,
})

// bt601RGBToYCbCr is the forward BT.601 matrix: (Y, Cb-128, Cr-128) = M * RGB.
var bt601RGBToYCbCr = mat.NewDense(3, 3, []float64{
	0.299, 0.587, 0.114,
	-0.168736, -0.331264, 0.5,
	0.5, -0.418688, -0.081312,
})

func clamp255(v float64) byte {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return byte(v + 0.5)
	}
}

// ycbcrToRGB converts one BT.601 YCbCr triplet to RGB, clamped to [0,255]
// (spec.md §4.5).
func ycbcrToRGB(y, cb, cr byte) (r, g, b byte) {
	in := mat.NewVecDense(3, []float64{float64(y), float64(cb) - 128, float64(cr) - 128})
	var out mat.VecDense
	out.MulVec(bt601YCbCrToRGB, in)
	return clamp255(out.AtVec(0)), clamp255(out.AtVec(1)), clamp255(out.AtVec(2))
}

// rgbToYCbCr is ycbcrToRGB's inverse.
func rgbToYCbCr(r, g, b byte) (y, cb, cr byte) {
	in := mat.NewVecDense(3, []float64{float64(r), float64(g), float64(b)})
	var out mat.VecDense
	out.MulVec(bt601RGBToYCbCr, in)
	return clamp255(out.AtVec(0)), clamp255(out.AtVec(1) + 128), clamp255(out.AtVec(2) + 128)
}

// cmykToRGB converts one CMYK pixel (0-255 per channel) to RGB as
// R,G,B = C,M,Y·K/255, the exact (non-complement) relation cmyk.c
// actually implements -- the commented-out "proper" (1-C)(1-K) formula
// was never enabled there, and spec.md §4.5 carries the shipped behavior
// forward, flagged as inexact rather than "corrected".
func cmykToRGB(c, m, yy, k byte) (r, g, b byte) {
	cmy := mat.NewVecDense(3, []float64{float64(c), float64(m), float64(yy)})
	cmy.ScaleVec(float64(k)/255, cmy)
	return clamp255(cmy.AtVec(0)), clamp255(cmy.AtVec(1)), clamp255(cmy.AtVec(2))
}

// rgbToCMYK converts RGB to CMYK using the standard under-color-removal
// formula (k = 1 - max(r,g,b)/255; c,m,y = (1-channel/255-k)/(1-k), or 0
// when k == 1). It is not an exact inverse of cmykToRGB: for example RGB
// (255,0,0) becomes CMYK (0,255,255,0), which cmykToRGB maps to black.
func rgbToCMYK(r, g, b byte) (c, m, y, k byte) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	kf := 1 - max3(rf, gf, bf)
	if kf >= 1 {
		return 0, 0, 0, 255
	}
	channels := mat.NewVecDense(3, []float64{
		1 - rf - kf,
		1 - gf - kf,
		1 - bf - kf,
	})
	channels.ScaleVec(1/(1-kf), channels)
	return clamp255(channels.AtVec(0) * 255), clamp255(channels.AtVec(1) * 255), clamp255(channels.AtVec(2) * 255), clamp255(kf * 255)
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
