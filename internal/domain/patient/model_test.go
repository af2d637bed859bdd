package patient

import (
	"encoding/json"
	"testing"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("1987-11-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "1987-11-03" {
		t.Errorf("got %s", d.String())
	}

	for _, bad := range []string{"03/11/1987", "1987-13-01", "1987-02-30", "yesterday", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDate_JSON(t *testing.T) {
	d := mustDate(t, "2001-06-15")
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(b) != `"2001-06-15"` {
		t.Errorf("got %s", b)
	}

	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.String() != "2001-06-15" {
		t.Errorf("got %s", back.String())
	}

	if err := json.Unmarshal([]byte(`"15/06/2001"`), &back); err == nil {
		t.Error("expected error for malformed wire date")
	}
}
