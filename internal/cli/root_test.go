package cli

import (
	"context"
	"io"
	"testing"
)

func TestRootCommand(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	if root.Use != "skyline" {
		t.Errorf("Use = %q, want skyline", root.Use)
	}

	want := []string{"layout", "serve", "cache", "config", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestRootCommandAttachesLogger(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetContext(context.Background())

	root.PersistentPreRun(root, nil)

	if loggerFromContext(root.Context()) != c.Logger {
		t.Error("command context should carry the CLI logger")
	}
}

func TestRootCommandVerboseFlag(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetContext(context.Background())

	flag := root.PersistentFlags().Lookup("verbose")
	if flag == nil {
		t.Fatal("root command missing --verbose flag")
	}
	if err := flag.Value.Set("true"); err != nil {
		t.Fatalf("set verbose: %v", err)
	}

	root.PersistentPreRun(root, nil)

	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug after --verbose", c.Logger.GetLevel())
	}
}

func TestSetLogLevel(t *testing.T) {
	c := New(io.Discard, LogInfo)
	c.SetLogLevel(LogDebug)

	if c.Logger.GetLevel() != LogDebug {
		t.Errorf("level = %v, want debug", c.Logger.GetLevel())
	}
}
