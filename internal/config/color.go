// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"encoding/hex"
	"image/color"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/colornames"
)

// Palette is the resolved set of colors used to draw the figure.
type Palette struct {
	Bar       color.Color
	Highlight color.Color
	Caption   color.Color
}

// Palette resolves the configured color names.
func (c Config) Palette() (Palette, error) {
	var p Palette
	var err error
	if p.Bar, err = ParseColor(c.BarColor); err != nil {
		return Palette{}, errors.Wrap(err, "bar_color")
	}
	if p.Highlight, err = ParseColor(c.HighlightColor); err != nil {
		return Palette{}, errors.Wrap(err, "highlight_color")
	}
	if p.Caption, err = ParseColor(c.CaptionColor); err != nil {
		return Palette{}, errors.Wrap(err, "caption_color")
	}
	return p, nil
}

// ParseColor accepts an SVG color name, e.g. "green", or a hex color in
// #rgb, #rrggbb or #rrggbbaa form.
func ParseColor(s string) (color.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		if c, ok := colornames.Map[strings.ToLower(s)]; ok {
			return c, nil
		}
		return nil, errors.Errorf("unknown color name %q", s)
	}
	digits := s[1:]
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	if len(digits) != 8 {
		return nil, errors.Errorf("invalid hex color %q", s)
	}
	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex color %q", s)
	}
	return color.NRGBA{R: b[0], G: b[1], B: b[2], A: b[3]}, nil
}
