package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"checkers/internal/client/api"
	"checkers/internal/client/display"
)

// Session holds the client state shared by all commands
type Session struct {
	Client  *api.Client
	Verbose bool
	Last    string // probe id of the most recent verdict
}

// Command defines a client command with its handler
type Command struct {
	Name        string
	ShortName   string
	Description string
	Usage       string
	Group       string
	Handler     func(*Session, []string) error
}

// Registry manages command registration and execution
type Registry struct {
	session  *Session
	out      io.Writer
	commands map[string]*Command
	quit     bool
}

func NewRegistry(session *Session, out io.Writer) *Registry {
	r := &Registry{
		session:  session,
		out:      out,
		commands: make(map[string]*Command),
	}

	r.registerRuleCommands()
	r.registerDebugCommands()

	r.Register(&Command{
		Name:        "help",
		ShortName:   "?",
		Description: "Show available commands",
		Usage:       "help [command]",
		Group:       "Utility",
		Handler:     r.helpHandler,
	})

	r.Register(&Command{
		Name:        "exit",
		ShortName:   "x",
		Description: "Exit the client",
		Usage:       "exit",
		Group:       "Utility",
		Handler: func(*Session, []string) error {
			fmt.Fprintf(r.out, "%sGoodbye!%s\n", display.Cyan, display.Reset)
			r.quit = true
			return nil
		},
	})

	return r
}

func (r *Registry) Register(cmd *Command) {
	r.commands[cmd.Name] = cmd
	if cmd.ShortName != "" {
		r.commands[cmd.ShortName] = cmd
	}
}

// Execute runs one input line and reports whether the client should exit
func (r *Registry) Execute(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return false
	}

	cmd, exists := r.commands[parts[0]]
	if !exists {
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", display.Red, parts[0], display.Reset)
		fmt.Fprintf(r.out, "Type 'help' for available commands\n")
		return false
	}

	r.session.Client.SetDebug(r.session.Verbose)

	if err := cmd.Handler(r.session, parts[1:]); err != nil {
		fmt.Fprintf(r.out, "%sError: %s%s\n", display.Red, err.Error(), display.Reset)
	}
	return r.quit
}

func (r *Registry) helpHandler(s *Session, args []string) error {
	if len(args) > 0 {
		cmd, exists := r.commands[args[0]]
		if !exists {
			return fmt.Errorf("unknown command: %s", args[0])
		}
		fmt.Fprintf(r.out, "\n%s%s%s - %s\n", display.Cyan, cmd.Name, display.Reset, cmd.Description)
		if cmd.ShortName != "" {
			fmt.Fprintf(r.out, "Short form: %s%s%s\n", display.Cyan, cmd.ShortName, display.Reset)
		}
		fmt.Fprintf(r.out, "Usage: %s\n", cmd.Usage)
		return nil
	}

	groups := make(map[string][]*Command)
	for name, cmd := range r.commands {
		if name != cmd.Name {
			continue // short alias
		}
		groups[cmd.Group] = append(groups[cmd.Group], cmd)
	}

	fmt.Fprintf(r.out, "\n%sAvailable Commands:%s\n", display.Cyan, display.Reset)
	for _, group := range []string{"Rules", "Utility"} {
		cmds := groups[group]
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })

		fmt.Fprintf(r.out, "\n%s%s Commands:%s\n", display.Yellow, group, display.Reset)
		for _, cmd := range cmds {
			shortPart := ""
			if cmd.ShortName != "" {
				shortPart = fmt.Sprintf("[%s%s%s] ", display.Cyan, cmd.ShortName, display.Reset)
			}
			fmt.Fprintf(r.out, "  %s%-10s %s\n", shortPart, cmd.Name, cmd.Description)
		}
	}

	fmt.Fprintf(r.out, "\nPieces are written <kind> <color> <row> <col>, e.g. 'regular b 5 1'\n")
	fmt.Fprintf(r.out, "Add '-v' to any command for verbose output\n")
	return nil
}
