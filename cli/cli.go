// Package cli provides terminal I/O, output pacing, and meta-command
// dispatch for the questline engine.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/questline/engine"
	"github.com/nathoo/questline/engine/effects"
	"github.com/nathoo/questline/engine/pacing"
	"github.com/nathoo/questline/engine/quest"
	"github.com/nathoo/questline/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)

	// Revealer slow-prints dialogue and narrative lines. Nil prints
	// everything at once.
	Revealer *pacing.Revealer

	lastCmd string // for "again"/"g" repeat

	lines   <-chan string
	pending *string // a line read early to skip a reveal
}

// New creates a CLI wired to the given engine. A positive speed enables
// paced reveals.
func New(eng *engine.Engine, speed float64) *CLI {
	c := &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
	if speed > 0 {
		c.Revealer = pacing.NewRevealer(c.Out, speed)
	}
	return c
}

// Run starts the game loop. It shows the intro and the starting location,
// then loops: prompt → input → dispatch → output. It returns when input
// ends, the player quits, the player dies, or ctx is cancelled. Pressing
// Enter while a line is being revealed prints the rest of it at once.
func (c *CLI) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.lines = readLines(ctx, c.In)
	if cr, ok := c.In.(interface{ Cancel() bool }); ok {
		defer cr.Cancel()
	}
	if c.Revealer != nil && c.Revealer.Skip == nil {
		c.Revealer.Skip = c.inputWaiting
	}

	c.printLines(ctx, c.Engine.Intro())

	for ctx.Err() == nil {
		c.print("> ")
		line, ok := c.next(ctx)
		if !ok {
			break
		}
		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Engine.Step(input)
		c.printLines(ctx, result.Output)
		if c.Trace {
			c.printTrace(result)
		}
		if c.Engine.World.GameOver {
			c.printSystem("Your adventure has ended.")
			return
		}
	}
}

// readLines scans r on its own goroutine so a reveal can notice input
// typed while it is still printing.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	out := make(chan string, 16)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case out <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// next returns the next input line, starting with one held back by
// inputWaiting.
func (c *CLI) next(ctx context.Context) (string, bool) {
	if c.pending != nil {
		line := *c.pending
		c.pending = nil
		return line, true
	}
	select {
	case line, ok := <-c.lines:
		return line, ok
	case <-ctx.Done():
		return "", false
	}
}

// inputWaiting reports whether the player has typed a line. A bare Enter
// is consumed; anything else is kept for the next prompt.
func (c *CLI) inputWaiting() bool {
	if c.pending != nil {
		return true
	}
	select {
	case line, ok := <-c.lines:
		if !ok {
			return true
		}
		if strings.TrimSpace(line) != "" {
			c.pending = &line
		}
		return true
	default:
		return false
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump current state",
		"  /trace        Toggle effect and event trace output",
		"",
		"Game commands:",
		"  <number>              Pick a numbered choice",
		"  look (l)              Show where you are and what you can do",
		"  go <place>            Move to the village, quest hall, home...",
		"  explore <area>        Head into an unlocked area",
		"  talk <npc>            Talk to someone nearby",
		"  accept <quest>        Take a quest in the quest hall",
		"  abandon               Give up your active quest",
		"  shop, buy/sell <item> Trade at a shop in the village",
		"  use/equip/unequip     Manage your gear",
		"  status, inventory (i), quest",
		"  attack, flee          In combat (or 1-4)",
		"  again (g)             Repeat your last command",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	e := c.Engine
	p := e.World.Player
	c.printSystem(fmt.Sprintf("Turn: %d", e.TurnCount))
	c.printSystem(fmt.Sprintf("Location: %s", e.World.Location))
	c.printSystem(fmt.Sprintf("Health: %d/%d  Gold: %d  Level: %d", p.Health, p.MaxHealth, p.Gold, p.Level))
	if p.ActiveQuest != nil {
		c.printSystem(fmt.Sprintf("Quest: %s (%s)", p.ActiveQuest.ID, questState(p)))
	}
	if enc := e.Encounter(); enc != nil {
		c.printSystem(fmt.Sprintf("Fighting: %s (%d/%d)", enc.Creature.Name, enc.Creature.Health, enc.Creature.MaxHealth))
	}
	if len(p.CompletedQuests) > 0 {
		c.printSystem(fmt.Sprintf("Completed: %s", strings.Join(p.CompletedQuests, ", ")))
	}
}

func questState(p *types.Player) string {
	if q := quest.ActiveStory(p); q != nil {
		return fmt.Sprintf("step %d/%d", q.Story.CurrentStep+1, len(q.Story.Steps))
	}
	if q := quest.ActiveCombat(p); q != nil {
		return fmt.Sprintf("%d/%d", p.QuestProgress, q.Combat.Count)
	}
	return "?"
}

func (c *CLI) printTrace(result types.Result) {
	if len(result.Effects) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Effects: %d", len(result.Effects)))
		for _, e := range result.Effects {
			c.printSystem(fmt.Sprintf("[trace]   %s %s", e.Type, effects.Operand(e)))
		}
	}
	if len(result.Events) > 0 {
		c.printSystem(fmt.Sprintf("[trace] Events: %d", len(result.Events)))
		for _, e := range result.Events {
			c.printSystem(fmt.Sprintf("[trace]   %s %v", e.Type, e.Data))
		}
	}
}

// printLines writes output lines, pacing reveal lines when enabled.
func (c *CLI) printLines(ctx context.Context, lines []string) {
	for _, line := range lines {
		if c.Revealer != nil && pacing.IsReveal(line) {
			if err := c.Revealer.Reveal(ctx, line); err == nil {
				continue
			}
		}
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
