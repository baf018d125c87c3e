package xmls

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// HairFrame is the decoded hair placement for one frame.
type HairFrame struct {
	HasHair   bool
	DX, DY    int
	HairFrame int
}

// ParseHair decodes a hair attribute: frames separated by "|", each either "x"
// (no hair) or "dx,dy" optionally followed by ":frame".
func ParseHair(s string) ([]HairFrame, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, "|")
	frames := make([]HairFrame, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "x" || part == "" {
			frames = append(frames, HairFrame{})
			continue
		}
		hf := HairFrame{HasHair: true}
		if i := strings.Index(part, ":"); i >= 0 {
			n, err := strconv.Atoi(part[i+1:])
			if err != nil {
				return nil, errors.Wrapf(err, "hair %q: frame in %q", s, part)
			}
			hf.HairFrame = n
			part = part[:i]
		}
		xy := strings.SplitN(part, ",", 2)
		if len(xy) != 2 {
			return nil, errors.Errorf("hair %q: want dx,dy in %q", s, part)
		}
		var err error
		if hf.DX, err = strconv.Atoi(strings.TrimSpace(xy[0])); err != nil {
			return nil, errors.Wrapf(err, "hair %q", s)
		}
		if hf.DY, err = strconv.Atoi(strings.TrimSpace(xy[1])); err != nil {
			return nil, errors.Wrapf(err, "hair %q", s)
		}
		frames = append(frames, hf)
	}
	return frames, nil
}

// ParseCarry decodes a comma separated list of per-frame carry offsets.
func ParseCarry(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	var offsets []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, errors.Wrapf(err, "carry %q", s)
		}
		offsets = append(offsets, n)
	}
	return offsets, nil
}
