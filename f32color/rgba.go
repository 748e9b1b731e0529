// SPDX-License-Identifier: Unlicense OR MIT

package f32color

import "image/color"

// MulAlpha scales the color's alpha by alpha, which is clamped to [0, 1].
func MulAlpha(c color.NRGBA, alpha float32) color.NRGBA {
	c.A = uint8(float32(c.A)*clamp01(alpha) + 0.5)
	return c
}

// Mix mixes c1 and c2 weighted by (1 - a) and a respectively.
func Mix(c1, c2 color.NRGBA, a float32) color.NRGBA {
	a = clamp01(a)
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x)*(1-a) + float32(y)*a + 0.5)
	}
	return color.NRGBA{
		R: mix(c1.R, c2.R),
		G: mix(c1.G, c2.G),
		B: mix(c1.B, c2.B),
		A: mix(c1.A, c2.A),
	}
}

func clamp01(v float32) float32 {
	return min(max(v, 0), 1)
}
