package model

// NoPlayer is the owner of neutral units such as resource deposits.
const NoPlayer = -1

// GameState is the frozen world snapshot the host sends once per tick.
// Unit order is significant: nearest-target ties resolve to the earliest unit.
type GameState struct {
	Tick        int          `json:"tick"`
	Width       int          `json:"width"`
	Height      int          `json:"height"`
	Players     []Player     `json:"players"`
	Units       []Unit       `json:"units"`
	Assignments []Assignment `json:"assignments"`
}

type Player struct {
	ID        int `json:"id"`
	Resources int `json:"resources"`
}

type Unit struct {
	ID        int    `json:"id"`
	Type      string `json:"type"`
	Player    int    `json:"player"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	HP        int    `json:"hp"`
	Resources int    `json:"resources"` // ore left in a deposit, or carried by a worker
}

func (u Unit) TypeName() string { return u.Type }

// Distance is the Manhattan distance between two units.
func (u Unit) Distance(o Unit) int {
	return Manhattan(u.X, u.Y, o.X, o.Y)
}

// Assignment is the abstract command a unit is currently executing, as
// reported by the host.
type Assignment struct {
	UnitID  int     `json:"unit_id"`
	Command Command `json:"command"`
}

// Player returns the player with the given index.
func (gs GameState) Player(id int) (Player, bool) {
	for _, p := range gs.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}

// Unit looks a unit up by ID.
func (gs GameState) Unit(id int) (Unit, bool) {
	for _, u := range gs.Units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}

// Assigned indexes the in-flight assignments by unit ID.
func (gs GameState) Assigned() Assignments {
	a := make(Assignments, len(gs.Assignments))
	for _, as := range gs.Assignments {
		a[as.UnitID] = as.Command
	}
	return a
}

// Assignments maps unit ID to its in-flight command.
type Assignments map[int]Command

// CurrentCommand reports the unit's in-flight command, if any.
func (a Assignments) CurrentCommand(unitID int) (Command, bool) {
	c, ok := a[unitID]
	return c, ok
}

func Manhattan(x1, y1, x2, y2 int) int {
	return abs(x1-x2) + abs(y1-y2)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
