// Package topics provides a topic-based help system for the bibsort CLI.
// It extends the default Cobra help with markdown topics embedded in the
// binary, so `bibsort help layout` works like help for a command.
package topics

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/bibsort/pkg/errors"
)

//go:embed content/*.md
var content embed.FS

// TopicManager manages help topics for a Cobra application
type TopicManager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Topic represents a help topic
type Topic struct {
	Name    string
	Format  string
	Content string
}

// New loads the built-in topics.
func New(renderer Renderer) (*TopicManager, error) {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to open embedded topics")
	}
	return NewFromFS(sub, renderer)
}

// NewFromFS loads every .md and .txt file at the root of fsys as a topic.
func NewFromFS(fsys fs.FS, renderer Renderer) (*TopicManager, error) {
	if renderer == nil {
		renderer = &PlainRenderer{}
	}
	tm := &TopicManager{
		topics:   make(map[string]*Topic),
		renderer: renderer,
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to list topics")
	}
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || (ext != ".md" && ext != ".txt") {
			continue
		}
		data, err := fs.ReadFile(fsys, entry.Name())
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInternal, "failed to read topic %s", entry.Name())
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		tm.topics[name] = &Topic{Name: name, Format: ext, Content: string(data)}
	}
	return tm, nil
}

// GetTopic retrieves a topic by name
func (tm *TopicManager) GetTopic(name string) (*Topic, bool) {
	topic, exists := tm.topics[strings.TrimLeft(name, "-")]
	return topic, exists
}

// ListTopics returns all available topic names, sorted
func (tm *TopicManager) ListTopics() []string {
	names := make([]string, 0, len(tm.topics))
	for name := range tm.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Show writes a rendered topic.
func (tm *TopicManager) Show(w io.Writer, name string) error {
	topic, exists := tm.GetTopic(name)
	if !exists {
		return errors.Newf(errors.ErrTopicNotFound, "no help topic named %q", name).
			WithDetail("topic", name)
	}
	_, err := io.WriteString(w, tm.renderer.Render(topic.Content, topic.Format))
	return err
}

// WriteList prints the topic index.
func (tm *TopicManager) WriteList(w io.Writer, program string) error {
	var b strings.Builder
	b.WriteString("Available help topics:\n")
	for _, name := range tm.ListTopics() {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces the root command's help command so `help <topic>` shows
// a topic, falling back to command help otherwise.
func (tm *TopicManager) Install(rootCmd *cobra.Command) {
	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.

To see all available help topics:
  ` + rootCmd.Name() + ` topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			var completions []string
			for _, c := range rootCmd.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, tm.ListTopics()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if _, exists := tm.GetTopic(args[0]); exists {
					return tm.Show(cmd.OutOrStdout(), args[0])
				}
				if target, _, err := rootCmd.Find(args); err == nil && target != rootCmd {
					return target.Help()
				}
			}
			return rootCmd.Help()
		},
	}

	rootCmd.SetHelpCommand(helpCmd)
}

// Command returns a `topics` command listing the topics.
func (tm *TopicManager) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "topics",
		Short: "Display available documentation topics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tm.WriteList(cmd.OutOrStdout(), cmd.Root().Name())
		},
	}
}
