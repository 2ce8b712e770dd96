package carousel

import (
	"strings"

	"github.com/IanScottMcGuire/bincarousel"
)

// Command is one verb of the serial protocol
type Command struct {
	Verb        string
	Run         func(*Controller) error
	Description string
}

var (
	HomeCommand = &Command{
		Verb: "h",
		Run: func(c *Controller) error {
			return c.Home()
		},
		Description: "Home the carousel to BIN0. Only accepted before homing or after 'quit'.",
	}
	InventoryCommand = &Command{
		Verb: "i",
		Run: func(c *Controller) error {
			return c.requestInventory()
		},
		Description: "Measure the last selected bin, or queue the measurement until the gate re-arms.",
	}
	QuitCommand = &Command{
		Verb: "quit",
		Run: func(c *Controller) error {
			c.Quit()
			return nil
		},
		Description: "Return to the startup state and clear queued commands.",
	}
	EStopCommand = &Command{
		Verb: "e",
		Run: func(c *Controller) error {
			c.EStop()
			return nil
		},
		Description: "Emergency stop. The motor stays disabled until reset.",
	}
)

// BinCommand selects bin b, or queues the selection while the gate is locked out
func BinCommand(b bincarousel.Bin) *Command {
	return &Command{
		Verb: strings.ToLower(b.String()),
		Run: func(c *Controller) error {
			return c.requestBin(b)
		},
		Description: "Move to " + b.String() + ", or queue the move while the gate is locked out.",
	}
}

// Commands lists the full verb set
func Commands() []*Command {
	cmds := []*Command{HomeCommand, InventoryCommand}
	for b := bincarousel.Bin0; b <= bincarousel.Bin3; b++ {
		cmds = append(cmds, BinCommand(b))
	}
	return append(cmds, QuitCommand, EStopCommand)
}

func commandMap() map[string]*Command {
	m := map[string]*Command{}
	for _, cmd := range Commands() {
		m[cmd.Verb] = cmd
	}
	return m
}
