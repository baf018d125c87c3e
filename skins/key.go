package skins

// Key identifies a skin-namespaced override of a base id. It is flattened to
// the "<base>_<skin>" form only when a bank or an atlas is consulted.
type Key struct {
	Base string
	Skin string
}

// Namespaced returns the key of base overridden by skin.
func Namespaced(base, skin string) Key {
	return Key{Base: base, Skin: skin}
}

func (k Key) String() string {
	return k.Base + "_" + k.Skin
}

// IsDefault reports whether the key refers to the base assets, in which case no
// override lookup is ever needed.
func (k Key) IsDefault() bool {
	return k.Skin == "" || k.Skin == DefaultSkin
}
