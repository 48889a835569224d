package validate

import "testing"

func TestAddress(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"8.8.8.8", true},
		{"1.0.0.1", true},
		{"192.168.1.254", true},
		{"::1", true},
		{"2001:db8::1", true},
		{"2606:4700:4700::1111", true},
		{"fe80::1", true},
		{"  8.8.4.4  ", true}, // surrounding whitespace is tolerated
		{"", false},
		{"   ", false},
		{"999.1.1.1", false},
		{"999.999.999.999", false},
		{"1.2.3", false},
		{"1.2.3.4.5", false},
		{"dns.google", false},
		{"one.one.one.one", false},
		{"8.8.8.8:53", false},
		{"fe80::1%eth0", false},
		{"2001:db8::zz", false},
		{"https://8.8.8.8", false},
	}
	for _, c := range cases {
		if got := Address(c.in); got != c.want {
			t.Fatalf("Address(%q)=%v want %v", c.in, got, c.want)
		}
	}
}
