// Text command language shared by the console and the remote listener.
package control

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"elevsim/src/dispatcher"
	"elevsim/src/fleet"
	"elevsim/src/types"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrNoClock        = errors.New("no simulation clock attached")
)

// Engine is the dispatch API the commands drive.
type Engine interface {
	Tick(id int) (fleet.Elevator, error)
	AssignInternal(id, floor int) (int, error)
	AssignExternal(floor int, hall types.HallType) (int, error)
	ToggleAlert(id int) (bool, error)
	OpenDoor(id int) (bool, error)
	CloseDoor(id int) (bool, error)
	Estimate(floor int) ([]int, error)
	Elevator(id int) (fleet.Elevator, error)
	Elevators() ([]fleet.Elevator, error)
	ExternalRequests() ([]int, error)
}

// Clock is the pausable simulation clock.
type Clock interface {
	Pause()
	Resume()
	Paused() bool
}

type command struct {
	usage   string
	minArgs int
	maxArgs int
	run     func(c *Controller, args []int, words []string) (string, error)
}

var commands map[string]command

// Filled in init: help reads the table, so a package-level literal would be
// an initialization cycle.
func init() {
	commands = map[string]command{
		"tick":   {"tick <id>", 1, 1, (*Controller).tick},
		"cab":    {"cab <id> <floor>", 2, 2, (*Controller).cab},
		"call":   {"call <floor> [up|down]", 1, 2, (*Controller).call},
		"alert":  {"alert <id>", 1, 1, (*Controller).alert},
		"open":   {"open <id>", 1, 1, (*Controller).open},
		"close":  {"close <id>", 1, 1, (*Controller).close},
		"eta":    {"eta <floor>", 1, 1, (*Controller).eta},
		"status": {"status [id]", 0, 1, (*Controller).status},
		"pause":  {"pause", 0, 0, (*Controller).pause},
		"resume": {"resume", 0, 0, (*Controller).resume},
		"help":   {"help", 0, 0, (*Controller).help},
	}
}

// Controller parses command lines and runs them against an engine. It holds
// no state of its own and may be shared between goroutines.
type Controller struct {
	engine Engine
	clock  Clock
}

// New returns a controller. clock may be nil, in which case pause and resume
// fail with ErrNoClock.
func New(engine Engine, clock Clock) *Controller {
	return &Controller{engine: engine, clock: clock}
}

// Execute runs one command line and returns its human readable reply.
func (c *Controller) Execute(line string) (string, error) {
	words := strings.Fields(strings.ToLower(line))
	if len(words) == 0 {
		return "", fmt.Errorf("%w: empty line", ErrUnknownCommand)
	}
	name, words := words[0], words[1:]
	cmd, ok := commands[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if len(words) < cmd.minArgs || len(words) > cmd.maxArgs {
		return "", fmt.Errorf("%w: %s", ErrUsage, cmd.usage)
	}
	// Only the call direction is not a number.
	numeric := words
	if name == "call" && len(words) == 2 {
		numeric = words[:1]
	}
	args := make([]int, len(numeric))
	for i, w := range numeric {
		n, err := strconv.Atoi(w)
		if err != nil {
			return "", fmt.Errorf("%w: %s: %q is not a number", ErrUsage, cmd.usage, w)
		}
		args[i] = n
	}
	return cmd.run(c, args, words)
}

func (c *Controller) tick(args []int, _ []string) (string, error) {
	e, err := c.engine.Tick(args[0])
	if err != nil {
		return "", err
	}
	return FormatElevator(e), nil
}

func (c *Controller) cab(args []int, _ []string) (string, error) {
	id, err := c.engine.AssignInternal(args[0], args[1])
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("elevator %d will stop at floor %d", id, args[1]), nil
}

func (c *Controller) call(args []int, words []string) (string, error) {
	hall := types.HallAny
	if len(words) == 2 {
		var err error
		if hall, err = types.ParseHallType(words[1]); err != nil {
			return "", fmt.Errorf("%w: call <floor> [up|down]: %v", ErrUsage, err)
		}
	}
	id, err := c.engine.AssignExternal(args[0], hall)
	if err != nil {
		return "", err
	}
	if id == dispatcher.NoElevator {
		return fmt.Sprintf("floor %d %s: no elevator available", args[0], hall), nil
	}
	return fmt.Sprintf("floor %d %s -> elevator %d", args[0], hall, id), nil
}

func (c *Controller) alert(args []int, _ []string) (string, error) {
	on, err := c.engine.ToggleAlert(args[0])
	if err != nil {
		return "", err
	}
	state := "off"
	if on {
		state = "on"
	}
	return fmt.Sprintf("elevator %d alert %s", args[0], state), nil
}

func (c *Controller) open(args []int, _ []string) (string, error) {
	return c.door(args[0], c.engine.OpenDoor, "opened")
}

func (c *Controller) close(args []int, _ []string) (string, error) {
	return c.door(args[0], c.engine.CloseDoor, "closed")
}

func (c *Controller) door(id int, op func(int) (bool, error), done string) (string, error) {
	honored, err := op(id)
	if err != nil {
		return "", err
	}
	if !honored {
		return fmt.Sprintf("elevator %d door request refused", id), nil
	}
	return fmt.Sprintf("elevator %d door %s", id, done), nil
}

func (c *Controller) eta(args []int, _ []string) (string, error) {
	ticks, err := c.engine.Estimate(args[0])
	if err != nil {
		return "", err
	}
	return FormatEstimate(args[0], ticks), nil
}

func (c *Controller) status(args []int, _ []string) (string, error) {
	if len(args) == 1 {
		e, err := c.engine.Elevator(args[0])
		if err != nil {
			return "", err
		}
		return FormatElevator(e), nil
	}
	elevators, err := c.engine.Elevators()
	if err != nil {
		return "", err
	}
	floors, err := c.engine.ExternalRequests()
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, e := range elevators {
		b.WriteString(FormatElevator(e))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "hallway calls %v", floors)
	if c.clock != nil && c.clock.Paused() {
		b.WriteString(" (paused)")
	}
	return b.String(), nil
}

func (c *Controller) pause([]int, []string) (string, error) {
	if c.clock == nil {
		return "", ErrNoClock
	}
	c.clock.Pause()
	return "simulation paused", nil
}

func (c *Controller) resume([]int, []string) (string, error) {
	if c.clock == nil {
		return "", ErrNoClock
	}
	c.clock.Resume()
	return "simulation resumed", nil
}

func (c *Controller) help([]int, []string) (string, error) {
	usages := make([]string, 0, len(commands))
	for _, cmd := range commands {
		usages = append(usages, cmd.usage)
	}
	sort.Strings(usages)
	return strings.Join(usages, "\n"), nil
}
