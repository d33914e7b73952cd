package backend

import (
	"fmt"
	"sort"

	"github.com/gogpu/gputypes"
)

// PowerPreference steers adapter selection on multi-GPU systems.
type PowerPreference uint8

const (
	// PowerDefault takes the first hardware adapter the platform lists.
	PowerDefault PowerPreference = iota

	// PowerLowPower prefers integrated GPUs.
	PowerLowPower

	// PowerHighPerformance prefers discrete GPUs.
	PowerHighPerformance
)

var powerNames = [...]string{"default", "low-power", "high-performance"}

func (p PowerPreference) String() string {
	if int(p) < len(powerNames) {
		return powerNames[p]
	}
	return fmt.Sprintf("PowerPreference(%d)", p)
}

// ParsePowerPreference maps a name produced by String back to a
// PowerPreference.
func ParsePowerPreference(s string) (PowerPreference, error) {
	for i, name := range powerNames {
		if name == s {
			return PowerPreference(i), nil
		}
	}
	return 0, fmt.Errorf("backend: unknown power preference %q", s)
}

// candidate is one enumerated adapter as seen by the selection logic.
type candidate struct {
	name       string
	deviceType gputypes.DeviceType
	caps       Capabilities
}

// selectAdapter returns the index of the adapter to open. Adapters whose
// surface capabilities are empty cannot present to the window and are never
// chosen. CPU adapters rank last and are the only ones considered when
// forceFallback is set.
func selectAdapter(cands []candidate, pref PowerPreference, forceFallback bool) (int, error) {
	type ranked struct {
		index int
		rank  int
	}
	var usable []ranked
	for i, c := range cands {
		if !c.caps.Supported() {
			continue
		}
		isCPU := c.deviceType == gputypes.DeviceTypeCPU
		if forceFallback && !isCPU {
			continue
		}
		usable = append(usable, ranked{index: i, rank: adapterRank(c.deviceType, pref)})
	}
	if len(usable) == 0 {
		if forceFallback {
			return -1, fmt.Errorf("%w: no fallback adapter among %d", ErrNoAdapter, len(cands))
		}
		return -1, fmt.Errorf("%w: %d adapters enumerated, none support the surface", ErrNoAdapter, len(cands))
	}
	// Stable: equal ranks keep enumeration order.
	sort.SliceStable(usable, func(i, j int) bool { return usable[i].rank < usable[j].rank })
	return usable[0].index, nil
}

// adapterRank orders device types for a preference. Lower is better.
func adapterRank(dt gputypes.DeviceType, pref PowerPreference) int {
	switch dt {
	case gputypes.DeviceTypeDiscreteGPU:
		if pref == PowerLowPower {
			return 1
		}
		return 0
	case gputypes.DeviceTypeIntegratedGPU:
		if pref == PowerHighPerformance {
			return 1
		}
		return 0
	case gputypes.DeviceTypeCPU:
		return 3
	default:
		return 2
	}
}
