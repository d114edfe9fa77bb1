package replay

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/okian/gestures/internal/domain/model"
	"github.com/okian/gestures/internal/domain/types"
)

// KindKey marks a step that releases a key instead of moving a pointer.
const KindKey = "keyup"

// Scenario is a recorded interaction and the gestures it should produce.
//
//	name   = "tap"
//	expect = ["tap"]
//
//	[[step]]
//	at = 0
//	kind = "down"
//	pointer = 1
//	type = "mouse"
//	buttons = 1
//	x = 10
//	y = 10
//	target = "button"
type Scenario struct {
	Name        string   `toml:"name"`
	Description string   `toml:"description"`
	Expect      []string `toml:"expect"`
	Steps       []Step   `toml:"step"`
}

// Step is one input. At is milliseconds from the scenario start and also
// becomes the pointer timestamp.
type Step struct {
	At        float64 `toml:"at"`
	Kind      string  `toml:"kind"`
	PointerID int64   `toml:"pointer"`
	Type      string  `toml:"type"`
	Secondary bool    `toml:"secondary"`
	Buttons   int     `toml:"buttons"`
	X         float64 `toml:"x"`
	Y         float64 `toml:"y"`
	Target    string  `toml:"target"`
	Related   string  `toml:"related"`
	Code      int     `toml:"code"`
}

// LoadScenario decodes a TOML scenario file.
func LoadScenario(path string) (Scenario, error) {
	var sc Scenario
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return Scenario{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Scenario{}, fmt.Errorf("%w: %s: unknown keys %v", ErrInvalidScenario, path, undecoded)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(path, ".toml")
	}
	if err := sc.Validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

// Resolve returns the built-in scenario called name, or loads name as a
// TOML file.
func Resolve(name string) (Scenario, error) {
	if sc, ok := Builtin(name); ok {
		return sc, nil
	}
	if _, err := os.Stat(name); err != nil {
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	return LoadScenario(name)
}

// Validate checks every step against the wire contract and orders steps by
// time.
func (sc *Scenario) Validate() error {
	if len(sc.Steps) == 0 {
		return fmt.Errorf("%w: %s has no steps", ErrInvalidScenario, sc.Name)
	}
	sort.SliceStable(sc.Steps, func(i, j int) bool { return sc.Steps[i].At < sc.Steps[j].At })
	for i, st := range sc.Steps {
		var err error
		if st.Kind == KindKey {
			err = st.Key("").Validate()
		} else {
			err = st.Pointer("").Validate()
		}
		if err != nil {
			return fmt.Errorf("%w: %s step %d: %w", ErrInvalidScenario, sc.Name, i, err)
		}
	}
	return nil
}

// Pointer builds the request for a pointer step, rooting element paths
// under prefix.
func (st Step) Pointer(prefix string) types.PointerRequest {
	req := types.PointerRequest{
		Kind:        st.Kind,
		PointerID:   st.PointerID,
		PointerType: st.Type,
		IsPrimary:   !st.Secondary,
		Buttons:     st.Buttons,
		TimeStamp:   st.At,
		ClientX:     st.X,
		ClientY:     st.Y,
		PageX:       st.X,
		PageY:       st.Y,
		ScreenX:     st.X,
		ScreenY:     st.Y,
		Target:      join(prefix, st.Target),
	}
	if st.Related != "" {
		req.Related = join(prefix, st.Related)
	}
	if req.Buttons == 0 && st.Type == string(model.PointerMouse) && st.Kind != string(model.KindUp) {
		req.Buttons = model.ButtonPrimary
	}
	return req
}

// Key builds the request for a key step.
func (st Step) Key(prefix string) types.KeyRequest {
	code := st.Code
	if code == 0 {
		code = model.KeySpace
	}
	return types.KeyRequest{Code: code, Target: join(prefix, st.Target)}
}

func join(prefix, path string) string {
	switch {
	case prefix == "":
		return path
	case path == "":
		return prefix
	}
	return prefix + "/" + path
}
