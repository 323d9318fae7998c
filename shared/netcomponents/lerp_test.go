package netcomponents

import "testing"

func TestLerpNetPosition(t *testing.T) {
	cases := []struct {
		name string
		t    float64
		want NetPositionData
	}{
		{"start", 0, NetPositionData{X: 10, Y: 20}},
		{"middle", 0.5, NetPositionData{X: 15, Y: 10}},
		{"end", 1, NetPositionData{X: 20, Y: 0}},
	}
	from := NetPositionData{X: 10, Y: 20}
	to := NetPositionData{X: 20, Y: 0}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := LerpNetPosition(from, to, c.t); *got != c.want {
				t.Fatalf("want %+v, got %+v", c.want, *got)
			}
		})
	}
}

func TestLerpNetVelocity(t *testing.T) {
	got := LerpNetVelocity(NetVelocityData{SpeedX: -4}, NetVelocityData{SpeedX: 4, SpeedY: 2}, 0.25)
	if got.SpeedX != -2 || got.SpeedY != 0.5 {
		t.Fatalf("unexpected %+v", *got)
	}
}
