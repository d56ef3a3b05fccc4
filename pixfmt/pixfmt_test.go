// Copyright 2026 Yigithan Sonmez. All rights reserved.

package pixfmt

import "testing"

func TestGetRTTIndexes(t *testing.T) {
	cases := []struct {
		layout MRTLayout
		want   []int
	}{
		{MRTNone, nil},
		{MRTSingle, []int{0}},
		{MRTPair, []int{0, 1}},
		{MRTTriple, []int{0, 1, 2}},
		{MRTQuad, []int{0, 1, 2, 3}},
	}
	for _, c := range cases {
		got := GetRTTIndexes(c.layout)
		if len(got) != len(c.want) {
			t.Fatalf("GetRTTIndexes(%v): got %v, want %v", c.layout, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("GetRTTIndexes(%v): got %v, want %v", c.layout, got, c.want)
			}
		}
	}
}

func TestAAModeScale(t *testing.T) {
	if AACenter1Sample.ScaleX() != 1 {
		t.Fatal("ScaleX: center_1_sample must scale by 1")
	}
	if AADiagonalCentered2Samples.ScaleX() != 2 {
		t.Fatal("ScaleX: above center_1_sample must scale by 2")
	}
	if AADiagonalCentered2Samples.ScaleY() != 1 {
		t.Fatal("ScaleY: diagonal_centered_2_samples must scale by 1")
	}
	if AARotated4Samples.ScaleY() != 2 {
		t.Fatal("ScaleY: above diagonal_centered_2_samples must scale by 2")
	}
	if AADiagonalCentered2Samples.BindFactor() != 1 {
		t.Fatal("BindFactor: diagonal_centered_2_samples must be 1")
	}
	if AARotated4Samples.BindFactor() != 2 {
		t.Fatal("BindFactor: above diagonal_centered_2_samples must be 2")
	}
}

func TestPitches(t *testing.T) {
	if got := GetPackedPitch(A8R8G8B8, 640); got != 2560 {
		t.Fatalf("GetPackedPitch: got %d, want 2560", got)
	}
	if got := GetAlignedPitch(A8R8G8B8, 640); got < 2560 {
		t.Fatalf("GetAlignedPitch: got %d, want >= 2560", got)
	}
}
