package replay

import "sort"

// builtins are the canned interactions, one per recognizer family. Timings
// assume the default hold delay and flick threshold.
var builtins = map[string]Scenario{
	"tap": {
		Name:        "tap",
		Description: "mouse press and release on one button",
		Expect:      []string{"tap"},
		Steps: []Step{
			{At: 0, Kind: "down", PointerID: 1, Type: "mouse", X: 10, Y: 10, Target: "toolbar/button"},
			{At: 60, Kind: "up", PointerID: 1, Type: "mouse", X: 11, Y: 10, Target: "toolbar/button"},
			{At: 120, Kind: KindKey, Target: "toolbar/button"},
		},
	},
	"hold": {
		Name:        "hold",
		Description: "touch held in place for more than two pulses",
		Expect:      []string{"hold", "holdpulse", "release"},
		Steps: []Step{
			{At: 0, Kind: "down", PointerID: 2, Type: "touch", X: 40, Y: 40, Target: "list/item"},
			{At: 250, Kind: "move", PointerID: 2, Type: "touch", X: 41, Y: 41, Target: "list/item"},
			{At: 500, Kind: "up", PointerID: 2, Type: "touch", X: 41, Y: 41, Target: "list/item"},
		},
	},
	"drag": {
		Name:        "drag",
		Description: "mouse drag that leaves the slider",
		Expect:      []string{"trackstart", "track", "trackx", "tracky", "trackend"},
		Steps: []Step{
			{At: 0, Kind: "down", PointerID: 3, Type: "mouse", X: 0, Y: 0, Target: "panel/slider"},
			{At: 16, Kind: "move", PointerID: 3, Type: "mouse", X: 20, Y: 0, Target: "panel/slider"},
			{At: 32, Kind: "move", PointerID: 3, Type: "mouse", X: 40, Y: 5, Target: "panel"},
			{At: 48, Kind: "up", PointerID: 3, Type: "mouse", X: 40, Y: 5, Target: "panel"},
		},
	},
	"pinch": {
		Name:        "pinch",
		Description: "two fingers spreading and turning a quarter",
		Expect:      []string{"pinch", "rotate"},
		Steps: []Step{
			{At: 0, Kind: "down", PointerID: 4, Type: "touch", X: 0, Y: 0, Target: "map"},
			{At: 5, Kind: "down", PointerID: 5, Type: "touch", Secondary: true, X: 100, Y: 0, Target: "map"},
			{At: 20, Kind: "move", PointerID: 5, Type: "touch", Secondary: true, X: 100, Y: 100, Target: "map"},
			{At: 40, Kind: "up", PointerID: 5, Type: "touch", Secondary: true, X: 100, Y: 100, Target: "map"},
			{At: 45, Kind: "up", PointerID: 4, Type: "touch", X: 0, Y: 0, Target: "map"},
		},
	},
	"flick": {
		Name:        "flick",
		Description: "fast horizontal swipe",
		Expect:      []string{"flick"},
		Steps: []Step{
			{At: 0, Kind: "down", PointerID: 6, Type: "touch", X: 0, Y: 0, Target: "carousel"},
			{At: 10, Kind: "move", PointerID: 6, Type: "touch", X: 30, Y: 0, Target: "carousel"},
			{At: 20, Kind: "move", PointerID: 6, Type: "touch", X: 60, Y: 0, Target: "carousel"},
			{At: 30, Kind: "up", PointerID: 6, Type: "touch", X: 90, Y: 0, Target: "carousel"},
		},
	},
}

// Builtin returns a copy of the named built-in scenario.
func Builtin(name string) (Scenario, bool) {
	sc, ok := builtins[name]
	if !ok {
		return Scenario{}, false
	}
	sc.Steps = append([]Step(nil), sc.Steps...)
	sc.Expect = append([]string(nil), sc.Expect...)
	return sc, true
}

// BuiltinNames lists the built-in scenarios in a stable order.
func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
