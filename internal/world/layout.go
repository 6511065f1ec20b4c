package world

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/fragbots/internal/model"
	"github.com/udisondev/fragbots/internal/nav"
)

//go:embed layouts/duel.yaml
var defaultLayout []byte

// Layout is an arena description: navigation areas, solid geometry, items and spawn points.
type Layout struct {
	Name    string         `yaml:"name"`
	Grid    GridSpec       `yaml:"grid"`
	Areas   []AreaSpec     `yaml:"areas"`
	Reaches []ReachSpec    `yaml:"reaches"`
	Solids  []BoxSpec      `yaml:"solids"`
	Items   []ItemSpec     `yaml:"items"`
	Spawns  [][3]float64   `yaml:"spawns"`
	Weapons []ScriptWeapon `yaml:"script_weapons"`
}

// GridSpec sizes the solid grid used for traces.
type GridSpec struct {
	Origin   [3]float64 `yaml:"origin"`
	CellSize float64    `yaml:"cell_size"`
	Size     [3]int     `yaml:"size"`
}

// AreaSpec describes a navigation area.
type AreaSpec struct {
	Num      int        `yaml:"num"`
	Mins     [3]float64 `yaml:"mins"`
	Maxs     [3]float64 `yaml:"maxs"`
	Grounded bool       `yaml:"grounded"`
	Liquid   bool       `yaml:"liquid"`
}

// ReachSpec describes a directed link between areas.
type ReachSpec struct {
	From     int           `yaml:"from"`
	To       int           `yaml:"to"`
	Time     time.Duration `yaml:"time"`
	Requires []string      `yaml:"requires"`
}

// BoxSpec is a solid box.
type BoxSpec struct {
	Mins [3]float64 `yaml:"mins"`
	Maxs [3]float64 `yaml:"maxs"`
}

// ItemSpec places a respawning pickup.
type ItemSpec struct {
	Item          string        `yaml:"item"`
	Origin        [3]float64    `yaml:"origin"`
	Respawn       time.Duration `yaml:"respawn"`
	MaxWait       time.Duration `yaml:"max_wait"`
	CostInfluence float64       `yaml:"cost_influence"`
}

// ScriptWeapon is a gametype weapon granted to every player.
type ScriptWeapon struct {
	Num        int     `yaml:"num"`
	Name       string  `yaml:"name"`
	Tier       int     `yaml:"tier"`
	MinRange   float64 `yaml:"min_range"`
	MaxRange   float64 `yaml:"max_range"`
	BestRange  float64 `yaml:"best_range"`
	Speed      float64 `yaml:"speed"`
	Splash     float64 `yaml:"splash"`
	Aim        string  `yaml:"aim"`
	Continuous bool    `yaml:"continuous"`
}

var aimNames = map[string]model.AimType{
	"":                  model.AimTypeInstantHit,
	"instant":           model.AimTypeInstantHit,
	"predict":           model.AimTypePredict,
	"predict_explosive": model.AimTypePredictExplosive,
	"drop":              model.AimTypeDrop,
}

// DefaultLayout returns the built-in duel arena.
func DefaultLayout() (Layout, error) {
	return ParseLayout(defaultLayout)
}

// LoadLayout loads an arena layout from a YAML file.
// An empty path returns the built-in layout.
func LoadLayout(path string) (Layout, error) {
	if path == "" {
		return DefaultLayout()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("reading layout %s: %w", path, err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

// ParseLayout decodes and validates a layout.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parsing layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks references between layout parts.
func (l Layout) Validate() error {
	if len(l.Areas) == 0 {
		return fmt.Errorf("layout %q has no areas", l.Name)
	}
	if len(l.Spawns) == 0 {
		return fmt.Errorf("layout %q has no spawn points", l.Name)
	}
	for _, r := range l.Reaches {
		if _, err := model.ParseMoveMask(r.Requires); err != nil {
			return fmt.Errorf("reach %d->%d: %w", r.From, r.To, err)
		}
	}
	for _, it := range l.Items {
		if model.ItemByName(it.Item) == nil {
			return fmt.Errorf("unknown item %q", it.Item)
		}
	}
	for _, w := range l.Weapons {
		if _, ok := aimNames[w.Aim]; !ok {
			return fmt.Errorf("script weapon %q: unknown aim type %q", w.Name, w.Aim)
		}
	}
	return nil
}

// BuildGraph creates the navigation graph of the layout.
func (l Layout) BuildGraph() (*nav.Graph, error) {
	g := nav.NewGraph()
	for _, a := range l.Areas {
		var flags nav.AreaFlags
		if a.Grounded {
			flags |= nav.AreaGrounded
		}
		if a.Liquid {
			flags |= nav.AreaLiquid
		}
		if err := g.AddArea(nav.Area{Num: a.Num, Mins: vec(a.Mins), Maxs: vec(a.Maxs), Flags: flags}); err != nil {
			return nil, fmt.Errorf("area %d: %w", a.Num, err)
		}
	}
	for _, r := range l.Reaches {
		mask, err := model.ParseMoveMask(r.Requires)
		if err != nil {
			return nil, err
		}
		if err := g.AddReach(nav.Reach{From: r.From, To: r.To, TravelTime: r.Time.Milliseconds(), Requires: mask}); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// BuildGrid creates the solid grid of the layout.
func (l Layout) BuildGrid() (*nav.Grid, error) {
	cell := l.Grid.CellSize
	if cell == 0 {
		cell = nav.DefaultCellSize
	}
	grid, err := nav.NewGrid(vec(l.Grid.Origin), cell, l.Grid.Size[0], l.Grid.Size[1], l.Grid.Size[2])
	if err != nil {
		return nil, fmt.Errorf("layout %q grid: %w", l.Name, err)
	}
	for _, s := range l.Solids {
		grid.FillBox(vec(s.Mins), vec(s.Maxs))
	}
	return grid, nil
}

// ScriptWeaponDefs converts script weapons into model definitions.
func (l Layout) ScriptWeaponDefs() []model.ScriptWeaponDef {
	defs := make([]model.ScriptWeaponDef, 0, len(l.Weapons))
	for _, w := range l.Weapons {
		defs = append(defs, model.ScriptWeaponDef{
			WeaponNum:       w.Num,
			Name:            w.Name,
			Tier:            w.Tier,
			MinRange:        w.MinRange,
			MaxRange:        w.MaxRange,
			BestRange:       w.BestRange,
			ProjectileSpeed: w.Speed,
			SplashRadius:    w.Splash,
			AimType:         aimNames[w.Aim],
			Continuous:      w.Continuous,
		})
	}
	return defs
}

func vec(v [3]float64) model.Vec3 {
	return model.Vec3{X: v[0], Y: v[1], Z: v[2]}
}
