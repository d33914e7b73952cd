package backend

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

var usableCaps = Capabilities{
	Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm},
	PresentModes: []PresentMode{PresentModeFifo},
	AlphaModes:   []AlphaMode{AlphaModeOpaque},
}

func TestSelectAdapter(t *testing.T) {
	integrated := candidate{name: "igpu", deviceType: gputypes.DeviceTypeIntegratedGPU, caps: usableCaps}
	discrete := candidate{name: "dgpu", deviceType: gputypes.DeviceTypeDiscreteGPU, caps: usableCaps}
	cpu := candidate{name: "llvmpipe", deviceType: gputypes.DeviceTypeCPU, caps: usableCaps}
	headless := candidate{name: "compute", deviceType: gputypes.DeviceTypeDiscreteGPU}

	tests := []struct {
		name     string
		cands    []candidate
		pref     PowerPreference
		fallback bool
		want     int
	}{
		{"first hardware wins by default", []candidate{integrated, discrete}, PowerDefault, false, 0},
		{"high performance picks discrete", []candidate{integrated, discrete}, PowerHighPerformance, false, 1},
		{"low power picks integrated", []candidate{discrete, integrated}, PowerLowPower, false, 1},
		{"cpu ranks last", []candidate{cpu, integrated}, PowerDefault, false, 1},
		{"cpu when nothing else", []candidate{cpu}, PowerDefault, false, 0},
		{"unsupported surface skipped", []candidate{headless, integrated}, PowerHighPerformance, false, 1},
		{"force fallback picks cpu", []candidate{discrete, cpu}, PowerHighPerformance, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := selectAdapter(tt.cands, tt.pref, tt.fallback)
			if err != nil {
				t.Fatalf("selectAdapter: %v", err)
			}
			if got != tt.want {
				t.Errorf("selectAdapter = %d (%s), want %d (%s)",
					got, tt.cands[got].name, tt.want, tt.cands[tt.want].name)
			}
		})
	}
}

func TestSelectAdapterNone(t *testing.T) {
	tests := []struct {
		name     string
		cands    []candidate
		fallback bool
	}{
		{"empty", nil, false},
		{"no surface support", []candidate{{name: "x", deviceType: gputypes.DeviceTypeDiscreteGPU}}, false},
		{"no fallback adapter", []candidate{{name: "d", deviceType: gputypes.DeviceTypeDiscreteGPU, caps: usableCaps}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := selectAdapter(tt.cands, PowerDefault, tt.fallback)
			if !errors.Is(err, ErrNoAdapter) {
				t.Errorf("err = %v, want ErrNoAdapter", err)
			}
		})
	}
}
