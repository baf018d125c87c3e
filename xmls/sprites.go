// Package xmls decodes the XML sprite bank descriptions (Sprites.xml,
// Portraits.xml) into plain structures. Resolving textures and building
// playable sprites is left to package sprites.
package xmls

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/bradfitz/iter"
	"github.com/pkg/errors"
)

// Bank is a whole sprite bank description. Each child element of the root is
// one sprite, named by the element.
type Bank struct {
	XMLName xml.Name
	Entries []Entry `xml:",any"`
}

// Entry describes a single sprite.
type Entry struct {
	XMLName  xml.Name
	Path     string  `xml:"path,attr"`
	Start    string  `xml:"start,attr"`
	Copy     string  `xml:"copy,attr"`
	Children []Child `xml:",any"`
}

// Child is any element inside a sprite entry: Anim, Loop, Justify, Metadata.
type Child struct {
	XMLName xml.Name
	ID      string `xml:"id,attr"`
	Path    string `xml:"path,attr"`
	Delay   string `xml:"delay,attr"`
	Goto    string `xml:"goto,attr"`
	Frames  string `xml:"frames,attr"`
	X       string `xml:"x,attr"`
	Y       string `xml:"y,attr"`

	MetaFrames []MetaFrames `xml:"Frames"`
}

// MetaFrames is a Metadata/Frames element carrying per-frame hair and carry
// offsets for the frames found at Path.
type MetaFrames struct {
	Path  string `xml:"path,attr"`
	Hair  string `xml:"hair,attr"`
	Carry string `xml:"carry,attr"`
}

// AnimDef is a decoded Anim or Loop element.
type AnimDef struct {
	ID    string
	Path  string
	Delay float64
	Goto  string
	Loop  bool

	// Frames lists subtexture indices; nil means every subtexture in order.
	Frames []int
}

// ID returns the sprite id, i.e. the element name.
func (e Entry) ID() string {
	return e.XMLName.Local
}

// Anims returns the decoded Anim and Loop children in document order.
func (e Entry) Anims() ([]AnimDef, error) {
	var defs []AnimDef
	for _, c := range e.Children {
		if c.XMLName.Local != "Anim" && c.XMLName.Local != "Loop" {
			continue
		}
		if c.ID == "" {
			return nil, errors.Errorf("sprite %q: %s without id", e.ID(), c.XMLName.Local)
		}
		d := AnimDef{
			ID:   c.ID,
			Path: c.Path,
			Goto: c.Goto,
			Loop: c.XMLName.Local == "Loop",
		}
		if c.Delay != "" {
			var err error
			if d.Delay, err = strconv.ParseFloat(c.Delay, 64); err != nil {
				return nil, errors.Wrapf(err, "sprite %q: animation %q delay", e.ID(), c.ID)
			}
		}
		if c.Frames != "" {
			var err error
			if d.Frames, err = ParseFrames(c.Frames); err != nil {
				return nil, errors.Wrapf(err, "sprite %q: animation %q", e.ID(), c.ID)
			}
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// Justify returns the Justify point, if the entry has one.
func (e Entry) Justify() (x, y float64, ok bool, err error) {
	for _, c := range e.Children {
		if c.XMLName.Local != "Justify" {
			continue
		}
		if x, err = strconv.ParseFloat(c.X, 64); err != nil {
			return 0, 0, false, errors.Wrapf(err, "sprite %q: justify x", e.ID())
		}
		if y, err = strconv.ParseFloat(c.Y, 64); err != nil {
			return 0, 0, false, errors.Wrapf(err, "sprite %q: justify y", e.ID())
		}
		return x, y, true, nil
	}
	return 0, 0, false, nil
}

// Metadata returns the Metadata/Frames elements of the entry.
func (e Entry) Metadata() []MetaFrames {
	var m []MetaFrames
	for _, c := range e.Children {
		if c.XMLName.Local == "Metadata" {
			m = append(m, c.MetaFrames...)
		}
	}
	return m
}

// MaxFrames is the most frames one frame list may expand to.
const MaxFrames = 4096

// ErrTooManyFrames is returned for frame lists expanding past MaxFrames.
var ErrTooManyFrames = errors.New("too many frames")

func checkFrameCount(s string, have int, more int64) error {
	if more > int64(MaxFrames-have) {
		return errors.Wrapf(ErrTooManyFrames, "frames %q: more than %d", s, MaxFrames)
	}
	return nil
}

// ParseFrames expands a frame list such as "0-3,5,7*2" into indices
// (0 1 2 3 5 7 7). Ranges may run backwards.
func ParseFrames(s string) ([]int, error) {
	var frames []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "":
			continue
		case strings.Contains(part, "*"):
			fields := strings.SplitN(part, "*", 2)
			n, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, errors.Wrapf(err, "frames %q", s)
			}
			times, err := strconv.Atoi(fields[1])
			if err != nil || times < 0 {
				return nil, errors.Errorf("frames %q: bad repeat count in %q", s, part)
			}
			if err := checkFrameCount(s, len(frames), int64(times)); err != nil {
				return nil, err
			}
			for range iter.N(times) {
				frames = append(frames, n)
			}
		case strings.Index(part, "-") > 0:
			fields := strings.SplitN(part, "-", 2)
			from, err := strconv.Atoi(fields[0])
			if err != nil {
				return nil, errors.Wrapf(err, "frames %q", s)
			}
			to, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, errors.Wrapf(err, "frames %q", s)
			}
			step, count := 1, int64(to)-int64(from)+1
			if to < from {
				step, count = -1, int64(from)-int64(to)+1
			}
			if err := checkFrameCount(s, len(frames), count); err != nil {
				return nil, err
			}
			for i := from; i != to+step; i += step {
				frames = append(frames, i)
			}
		default:
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, errors.Wrapf(err, "frames %q", s)
			}
			if err := checkFrameCount(s, len(frames), 1); err != nil {
				return nil, err
			}
			frames = append(frames, n)
		}
	}
	return frames, nil
}

// ReadBank decodes a sprite bank description.
func ReadBank(r io.Reader) (Bank, error) {
	dec := xml.NewDecoder(r)
	bank := Bank{}
	if err := dec.Decode(&bank); err != nil {
		return bank, errors.Wrap(err, "decoding sprite bank xml")
	}
	return bank, nil
}
