package xmls

import (
	"fmt"
	"strings"
)

func Example() {
	r := strings.NewReader(`<?xml version="1.0"?>
<Sprites>
	<player path="characters/player/" start="idle">
		<Justify x="0.5" y="1"/>
		<Loop id="idle" path="idle" delay="0.15"/>
		<Anim id="dash" path="dash" delay="0.08" goto="idle" frames="0-2"/>
	</player>
</Sprites>`)
	bank, err := ReadBank(r)
	if err != nil {
		panic(err)
	}

	anims, err := bank.Entries[0].Anims()
	if err != nil {
		panic(err)
	}
	fmt.Println(bank.Entries[0].ID(), anims[0].ID, anims[0].Loop, anims[1].ID, anims[1].Frames)
	// Output:
	// player idle true dash [0 1 2]
}
