package main

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	sessiondomain "apnea/internal/modules/session/domain"
)

func TestReadCommandsParsesLines(t *testing.T) {
	t.Parallel()

	var out strings.Builder
	commands := readCommands(context.Background(), strings.NewReader("p\nbogus\nr\n"), &out)

	var got []sessiondomain.Command
	for c := range commands {
		got = append(got, c)
	}
	want := []sessiondomain.Command{sessiondomain.CommandToggle, sessiondomain.CommandReset}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	if out.Len() == 0 {
		t.Fatalf("expected the unknown command to be reported")
	}
}

func TestReadCommandsStopsWhenContextEnds(t *testing.T) {
	t.Parallel()

	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	commands := readCommands(ctx, pr, io.Discard)

	go func() { _, _ = pw.Write([]byte("e\n")) }()
	select {
	case c := <-commands:
		if c != sessiondomain.CommandEnd {
			t.Fatalf("expected end, got %s", c)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no command read")
	}

	// nothing more is written; only cancellation can release the reader
	cancel()
	select {
	case _, ok := <-commands:
		if ok {
			t.Fatalf("expected the channel to close")
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("reader still blocked after cancel")
	}
}
