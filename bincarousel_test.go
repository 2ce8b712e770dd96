package bincarousel

import "testing"

func TestBin(t *testing.T) {
	tests := []struct {
		bin   Bin
		str   string
		next  Bin
		valid bool
	}{
		{Bin0, "BIN0", Bin1, true},
		{Bin3, "BIN3", Bin0, true},
		{BinUnknown, "BIN?", BinUnknown, false},
		{Bin(4), "BIN?", BinUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			if tt.bin.String() != tt.str {
				t.Errorf("expected=%q, got=%q", tt.str, tt.bin.String())
			}
			if tt.bin.Next() != tt.next {
				t.Errorf("expected=%v, got=%v", tt.next, tt.bin.Next())
			}
			if tt.bin.Valid() != tt.valid {
				t.Errorf("expected=%v, got=%v", tt.valid, tt.bin.Valid())
			}
		})
	}
}

func TestParseBin(t *testing.T) {
	tests := []struct {
		in      string
		want    Bin
		wantErr bool
	}{
		{"bin0", Bin0, false},
		{"BIN2", Bin2, false},
		{" bin3 ", Bin3, false},
		{"bin4", BinUnknown, true},
		{"2", BinUnknown, true},
		{"bin", BinUnknown, true},
		{"BIN?", BinUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBin(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected=%v, got=%v", tt.want, got)
			}
		})
	}
}

func TestInventoryRecord(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    InventoryRecord
		wantErr bool
	}{
		{"Full", "bin1,HI,48213", InventoryRecord{Bin: Bin1, Full: true, TimestampMs: 48213}, false},
		{"Empty", "bin3,LO,0", InventoryRecord{Bin: Bin3, TimestampMs: 0}, false},
		{"TrailingNewline", "bin0,LO,12\r\n", InventoryRecord{Bin: Bin0, TimestampMs: 12}, false},
		{"StatusLine", MsgMoveDone + "BIN2", InventoryRecord{}, true},
		{"BadBin", "bin7,HI,1", InventoryRecord{}, true},
		{"BadResult", "bin1,MID,1", InventoryRecord{}, true},
		{"BadTimestamp", "bin1,HI,soon", InventoryRecord{}, true},
		{"ExtraField", "bin1,HI,1,2", InventoryRecord{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInventoryRecord(tt.line)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected=%+v, got=%+v", tt.want, got)
			}
		})
	}
}

func TestInventoryRecordString(t *testing.T) {
	r := InventoryRecord{Bin: Bin2, Full: true, TimestampMs: 90210}
	if r.String() != "bin2,HI,90210" {
		t.Errorf("expected=%q, got=%q", "bin2,HI,90210", r.String())
	}
	r.Full = false
	if r.Result() != ResultEmptyOrUnknown {
		t.Errorf("expected=%q, got=%q", ResultEmptyOrUnknown, r.Result())
	}
}
