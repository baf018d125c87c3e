package xmls

import (
	"reflect"
	"strings"
	"testing"

	"badc0de.net/pkg/go-skinmod/ttesting"

	"github.com/pkg/errors"
)

func TestParseFrames(t *testing.T) {
	tcs := []struct {
		in   string
		want []int
	}{
		{"0", []int{0}},
		{"0-3", []int{0, 1, 2, 3}},
		{"3-1", []int{3, 2, 1}},
		{"0,2*3,5", []int{0, 2, 2, 2, 5}},
		{" 1 , 2 ", []int{1, 2}},
	}
	for _, tc := range tcs {
		got, err := ParseFrames(tc.in)
		if err != nil {
			t.Errorf("ParseFrames(%q): %v", tc.in, err)
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("ParseFrames(%q) = %v; want %v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"a", "1-b", "2*x", "2*-1"} {
		if _, err := ParseFrames(bad); err == nil {
			t.Errorf("ParseFrames(%q) succeeded; want error", bad)
		}
	}
}

func TestParseFramesLimit(t *testing.T) {
	for _, huge := range []string{"0-2000000000", "2000000000-0", "1*2000000000", "0-4000,0-200", "-2147483648-2147483647"} {
		if _, err := ParseFrames(huge); !errors.Is(err, ErrTooManyFrames) {
			t.Errorf("ParseFrames(%q) = %v; want ErrTooManyFrames", huge, err)
		}
	}
	got, err := ParseFrames("0-4095")
	if err != nil {
		t.Fatalf("ParseFrames at the limit: %v", err)
	}
	ttesting.AssertEqualInt(t, "frames at the limit", len(got), MaxFrames)
}

func TestParseHair(t *testing.T) {
	frames, err := ParseHair("0,-2|x|1,-3:2")
	if err != nil {
		t.Fatalf("ParseHair: %v", err)
	}
	want := []HairFrame{
		{HasHair: true, DX: 0, DY: -2},
		{},
		{HasHair: true, DX: 1, DY: -3, HairFrame: 2},
	}
	if !reflect.DeepEqual(frames, want) {
		t.Errorf("got %+v; want %+v", frames, want)
	}
	if _, err := ParseHair("1"); err == nil {
		t.Errorf("ParseHair(\"1\") succeeded; want error")
	}
}

func TestReadBankMetadata(t *testing.T) {
	bank, err := ReadBank(strings.NewReader(`<Sprites>
	<player path="characters/player/">
		<Loop id="idle" path="idle"/>
		<Metadata>
			<Frames path="idle" hair="0,-2|0,-3" carry="-1,-2"/>
		</Metadata>
	</player>
	<badeline copy="player"/>
</Sprites>`))
	if err != nil {
		t.Fatalf("ReadBank: %v", err)
	}
	ttesting.AssertEqualInt(t, "entries", len(bank.Entries), 2)
	meta := bank.Entries[0].Metadata()
	ttesting.AssertEqualInt(t, "metadata frames", len(meta), 1)
	if len(meta) == 1 {
		ttesting.AssertEqualString(t, "metadata path", meta[0].Path, "idle")
		ttesting.AssertEqualString(t, "metadata hair", meta[0].Hair, "0,-2|0,-3")
	}
	ttesting.AssertEqualString(t, "copy", bank.Entries[1].Copy, "player")

	if _, err := ReadBank(strings.NewReader(`<Sprites><player>`)); err == nil {
		t.Errorf("truncated document decoded without error")
	}
}
