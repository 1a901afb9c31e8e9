package ctifeed

import "testing"

func TestTypeValid(t *testing.T) {
	valid := []Type{TypeMISP, TypeOTX, TypeVirusTotal}
	for _, v := range valid {
		if !v.Valid() {
			t.Errorf("expected %s to be valid", v)
		}
	}
	if Type("shodan").Valid() {
		t.Error("expected unsupported feed type to be invalid")
	}
}

func TestNewDispatchesByType(t *testing.T) {
	cases := []struct {
		typ     Type
		wantNil bool
	}{
		{TypeMISP, false},
		{TypeOTX, false},
		{TypeVirusTotal, false},
		{Type("unknown"), true},
	}

	for _, c := range cases {
		adapter, err := New(Config{Type: c.typ, BaseURL: "https://example.invalid", APIKey: "key"})
		if c.wantNil {
			if err == nil {
				t.Errorf("expected error for type %s", c.typ)
			}
			if adapter != nil {
				t.Errorf("expected nil adapter for type %s", c.typ)
			}
			continue
		}
		if err != nil {
			t.Errorf("unexpected error for type %s: %v", c.typ, err)
		}
		if adapter == nil {
			t.Errorf("expected adapter for type %s", c.typ)
		}
	}
}
