// Command motd is a small demonstration host for the plugboard extension
// registry: two in-process "plugins" contribute messages of the day to a
// shared extension point, a binding aggregates them, and a third
// contribution arrives while the binding is live.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/zjrosen/plugboard/binding"
	"github.com/zjrosen/plugboard/contrib"
	"github.com/zjrosen/plugboard/extension"
	"github.com/zjrosen/plugboard/internal/log"
)

const messagesPoint = "motd.messages"

const pointManifest = `
extension_points:
  - id: motd.messages
    shape: list
    description: Messages of the day, one group per plugin.
`

var (
	debugLog  string
	withTrace bool
)

var rootCmd = &cobra.Command{
	Use:   "motd",
	Short: "Message-of-the-day demo for the plugboard extension registry",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&debugLog, "debug-log", "",
		"write debug logs to this file")
	rootCmd.Flags().BoolVar(&withTrace, "trace", false,
		"print registry spans to stdout")
}

// plugin is the demo stand-in for an independently loaded component: an
// identity plus a contribution table.
type plugin struct {
	id    string
	name  string
	table *contrib.Table
}

func newPlugin(name string, messages ...string) *plugin {
	p := &plugin{id: uuid.NewString(), name: name, table: contrib.NewTable()}
	p.table.Contribute(messagesPoint, func() []any {
		items := make([]any, len(messages))
		for i, m := range messages {
			items[i] = m
		}
		return items
	})
	return p
}

func run(cmd *cobra.Command, args []string) error {
	if debugLog != "" {
		cleanup, err := log.Init(debugLog)
		if err != nil {
			return err
		}
		defer cleanup()
	}

	cfg := extension.Config{}
	if withTrace {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		if err != nil {
			return err
		}
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		defer func() { _ = tp.Shutdown(cmd.Context()) }()
		cfg.TracerProvider = tp
	}

	reg := extension.NewWithConfig(cfg)
	if _, err := contrib.RegisterManifest(reg, []byte(pointManifest)); err != nil {
		return err
	}

	plugins := []*plugin{
		newPlugin("greeter", "Hello from the greeter plugin."),
		newPlugin("fortune", "Fortune favours the bold.", "A journey of a thousand miles begins with a single step."),
	}
	for _, p := range plugins {
		if _, err := p.table.Apply(reg); err != nil {
			return fmt.Errorf("plugin %s (%s): %w", p.name, p.id, err)
		}
	}

	b, err := binding.New(reg, messagesPoint)
	if err != nil {
		return err
	}
	defer b.Close()

	b.ObserveItems(func(ev extension.ChangeEvent) {
		fmt.Printf("* %d message(s) arrived while we were watching\n", len(ev.Added))
	})

	fmt.Println("Messages of the day:")
	for _, item := range b.Get().Items() {
		fmt.Printf("  - %v\n", item)
	}

	late := newPlugin("straggler", "Better late than never.")
	if _, err := late.table.Apply(reg); err != nil {
		return err
	}

	fmt.Println("After a late-loading plugin:")
	for _, item := range b.Get().Items() {
		fmt.Printf("  - %v\n", item)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
