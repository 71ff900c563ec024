// Package topics adds topic-based help to a Cobra application. Topics are
// markdown or text files read from an fs.FS, typically an embedded one, and
// are shown with `<app> help <topic>` next to the regular command help.
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// ListKeyword is the help argument that lists every topic
const ListKeyword = "topics"

// Topic is a single help topic
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Ext returns the topic file's extension, used to pick a rendering
func (t *Topic) Ext() string {
	return path.Ext(t.Path)
}

// Options configures a Manager
type Options struct {
	// Extensions considered topics. Defaults to .md and .txt.
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics loaded from a source filesystem
type Manager struct {
	source     fs.FS
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// New creates a Manager reading from source
func New(source fs.FS, opts Options) *Manager {
	m := &Manager{
		source:     source,
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}
	return m
}

// Load walks the source and registers every file with a known extension.
// A topic's name is its file name without the extension.
func (m *Manager) Load() error {
	return fs.WalkDir(m.source, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(path.Ext(p)) {
			return nil
		}

		content, err := fs.ReadFile(m.source, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
}

func (m *Manager) supported(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Get returns a topic by name. Flag-style names (--full-build) also match
// an "option-" topic (option-full-build).
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	if t, ok := m.topics[name]; ok {
		return t, true
	}
	t, ok := m.topics["option-"+name]
	return t, ok
}

// Names returns the sorted topic names
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render formats a topic with the manager's renderer
func (m *Manager) Render(t *Topic) string {
	return m.renderer.Render(t.Content, t.Ext())
}

// WriteList prints the topic index, options separated from general topics
func (m *Manager) WriteList(w io.Writer, appName string) {
	names := m.Names()
	if len(names) == 0 {
		fmt.Fprintln(w, "No help topics available.")
		return
	}

	var general, options []string
	for _, name := range names {
		if strings.HasPrefix(name, "option-") {
			options = append(options, strings.TrimPrefix(name, "option-"))
		} else {
			general = append(general, name)
		}
	}

	fmt.Fprintln(w, "Available help topics:")
	if len(general) > 0 {
		fmt.Fprintln(w, "\nGeneral topics:")
		for _, name := range general {
			fmt.Fprintf(w, "  %s\n", name)
		}
	}
	if len(options) > 0 {
		fmt.Fprintln(w, "\nOption topics:")
		for _, name := range options {
			fmt.Fprintf(w, "  --%s\n", name)
		}
	}
	fmt.Fprintf(w, "\nUse '%s help <topic>' to read about a specific topic.\n", appName)
}

// Install replaces the root command's help command with one that also
// knows about the manager's topics
func Install(root *cobra.Command, m *Manager) {
	original := root.HelpFunc()
	long := fmt.Sprintf("Help provides help for any command or topic in the application.\n"+
		"Type %[1]s help [command or topic] for full details.\n\n"+
		"To see all available help topics:\n  %[1]s help %[2]s", root.Name(), ListKeyword)

	helpCmd := &cobra.Command{
		Use:                "help [command or topic]",
		Short:              "Help about any command or topic",
		DisableFlagParsing: true,
		Long:               long,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{ListKeyword}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 0 {
				original(root, args)
				return
			}
			if args[0] == ListKeyword {
				m.WriteList(cmd.OutOrStdout(), root.Name())
				return
			}
			if t, ok := m.Get(args[0]); ok {
				fmt.Fprint(cmd.OutOrStdout(), m.Render(t))
				return
			}

			target, _, err := root.Find(args)
			if target == nil || err != nil {
				original(root, args)
				return
			}
			original(target, args)
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
