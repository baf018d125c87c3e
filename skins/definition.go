// Package skins discovers skin definitions provided by content sources and keeps
// the registry of skins that passed validation.
//
// A skin is an optional set of sprites, portraits and colour grades that can be
// swapped in for the base assets. Only one skin is active at a time; see package
// selection.
package skins

import (
	"io"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultSkin is the reserved id meaning "base assets only".
const DefaultSkin = "Default"

// ConfigAsset is the name of the skin definition asset looked up in every
// content source.
const ConfigAsset = "SkinModHelperConfig.yaml"

var idPattern = regexp.MustCompile(`^[a-zA-Z0-9]+_[a-zA-Z0-9]+$`)

var (
	ErrInvalidID        = errors.New("invalid skin id")
	ErrDuplicateID      = errors.New("duplicate skin id")
	ErrMissingDialogKey = errors.New("missing dialog key")
)

// Definition describes a single skin as declared by its content source.
type Definition struct {
	SkinID    string `yaml:"SkinId"`
	DialogKey string `yaml:"SkinDialogKey"`

	// Source names the content source the definition was read from. It is
	// informational only.
	Source string `yaml:"-"`
}

// UniquePath returns the asset root of the skin, relative to an atlas or the
// Graphics directory. For "alpha_classic" it is "alpha/classic/".
func (d Definition) UniquePath() string {
	return strings.Replace(d.SkinID, "_", "/", -1) + "/"
}

// Validate checks the definition on its own, without regard to other
// registered skins.
func (d Definition) Validate() error {
	if d.SkinID == "" || !idPattern.MatchString(d.SkinID) {
		return errors.Wrapf(ErrInvalidID, "skin id %q", d.SkinID)
	}
	if d.DialogKey == "" {
		return errors.Wrapf(ErrMissingDialogKey, "skin %q", d.SkinID)
	}
	return nil
}

// ReadDefinition decodes a skin definition asset.
func ReadDefinition(r io.Reader) (Definition, error) {
	var d Definition
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&d); err != nil {
		if err == io.EOF {
			return d, errors.New("empty skin definition")
		}
		return d, errors.Wrap(err, "decoding skin definition")
	}
	return d, nil
}
