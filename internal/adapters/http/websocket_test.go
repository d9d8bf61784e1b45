package http_test

import (
	"testing"

	handler "github.com/samirrijal/lhcoverlay/internal/adapters/http"
)

func TestChannelSubject(t *testing.T) {
	cases := []struct {
		channel, festival string
		want              string
		ok                bool
	}{
		{"", "", "overlay.>", true},
		{"all", "", "overlay.>", true},
		{"translations", "", "overlay.translated", true},
		{"markers", "", "overlay.markers.>", true},
		{"markers", "ROTOTOM Sunsplash", "overlay.markers.rototom-sunsplash", true},
		{"vehicles", "", "", false},
	}
	for _, tc := range cases {
		got, ok := handler.ChannelSubject(tc.channel, tc.festival)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ChannelSubject(%q, %q) = %q, %v; want %q, %v", tc.channel, tc.festival, got, ok, tc.want, tc.ok)
		}
	}
}

func TestWebSocket_RequiresUpgrade(t *testing.T) {
	r := get(t, setupApp(makeDeps()), "/ws")
	if r.Status != 426 {
		t.Fatalf("expected 426 Upgrade Required, got %d", r.Status)
	}
}
