package codec_test

import (
	"testing"

	"github.com/retailpipe/xmlavro/codec"
)

func TestLooksLikeDateTime(t *testing.T) {
	if !codec.LooksLikeDateTime("2018-05-09T14:00:28-07:00") {
		t.Fatalf("date-time text must trigger the rule")
	}
	if codec.LooksLikeDateTime("1531389292") {
		t.Fatalf("plain integers must not trigger the rule")
	}
}

func TestParseDateTimeMillis(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"2018-05-09T14:00:28-07:00", 1525899628000},
		{"2018-05-09T21:00:28Z", 1525899628000},
		{"2018-05-09T14:00:28.500-07:00", 1525899628500},
		{"1970-01-01T00:00:00Z", 0},
	}
	for _, c := range cases {
		got, err := codec.ParseDateTimeMillis(c.in)
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseDateTimeMillis_Malformed(t *testing.T) {
	for _, in := range []string{"", "TEXT", "2018-05-09", "2018-05-09T14:00:28"} {
		if _, err := codec.ParseDateTimeMillis(in); err == nil {
			t.Fatalf("%q: expected error", in)
		}
	}
}
