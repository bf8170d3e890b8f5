package cmdtable

import "testing"

func TestTableBounds(t *testing.T) {
	cases := []struct {
		table Table
		want  int
	}{
		{Batsugun(), 64},
		{KnuckleBash(), 128},
		{FixEight(), 128},
	}
	for _, tc := range cases {
		if got := tc.table.Len(); got != tc.want {
			t.Fatalf("%s len = %d, want %d", tc.table.Name(), got, tc.want)
		}
		if s, ok := tc.table.Lookup(0); !ok || s != 0 {
			t.Fatalf("%s entry 0 = %#x ok=%v, want 0 true", tc.table.Name(), s, ok)
		}
		for cmd := tc.want; cmd < 256; cmd++ {
			if s, ok := tc.table.Lookup(uint8(cmd)); ok || s != 0 {
				t.Fatalf("%s lookup %#x = %#x ok=%v, want rejected", tc.table.Name(), cmd, s, ok)
			}
		}
	}
}

func TestKnownEntries(t *testing.T) {
	cases := []struct {
		table Table
		cmd   uint8
		want  uint8
	}{
		{KnuckleBash(), 0x10, 0x12},
		{KnuckleBash(), 0x6e, 0x70},
		{KnuckleBash(), 0x6f, 0x00},
		{Batsugun(), 0x13, 0x12},
		{Batsugun(), 0x14, 0x12},
		{Batsugun(), 0x3a, 0x1b},
		{FixEight(), 0x20, 0x18},
		{FixEight(), 0x60, 0x14},
		{FixEight(), 0x31, 0x00},
	}
	for _, tc := range cases {
		got, ok := tc.table.Lookup(tc.cmd)
		if !ok || got != tc.want {
			t.Errorf("%s[%#x] = %#x ok=%v, want %#x", tc.table.Name(), tc.cmd, got, ok, tc.want)
		}
	}
}

func TestFixEightLowRangeIsSilent(t *testing.T) {
	tbl := FixEight()
	for cmd := uint8(0); cmd < 0x20; cmd++ {
		if s, _ := tbl.Lookup(cmd); s != 0 {
			t.Fatalf("fixeight[%#x] = %#x, want 0", cmd, s)
		}
	}
}

func TestMappedSkipsSilentEntries(t *testing.T) {
	mapped := KnuckleBash().Mapped()
	if len(mapped) != 0x6f-0x10 {
		t.Fatalf("kbash mapped %d commands, want %d", len(mapped), 0x6f-0x10)
	}
	if mapped[0] != 0x10 || mapped[len(mapped)-1] != 0x6e {
		t.Fatalf("kbash mapped range = %#x..%#x", mapped[0], mapped[len(mapped)-1])
	}
}
