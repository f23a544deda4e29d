package cmd

import (
	"errors"
	"testing"

	"github.com/theirongolddev/dials/internal/cli"
	"github.com/theirongolddev/dials/internal/model"

	"github.com/spf13/cobra"
)

func dialTestCmd(t *testing.T, set map[string]string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	addDialFlags(c)
	for k, v := range set {
		if err := c.Flags().Set(k, v); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	return c
}

func TestParseDialEditsRejectsBadValue(t *testing.T) {
	_, err := parseDialEdits(dialTestCmd(t, map[string]string{"name": "Books", "value": "lots"}))
	if !errors.Is(err, cli.ErrBadAmount) {
		t.Fatalf("parseDialEdits err = %v, want ErrBadAmount", err)
	}
}

func TestDialEditsApply(t *testing.T) {
	cur := model.Dial{ID: "1", Name: "Food", Value: 10, Description: "groceries"}

	e, err := parseDialEdits(dialTestCmd(t, nil))
	if err != nil {
		t.Fatalf("parseDialEdits: %v", err)
	}
	if !e.empty() {
		t.Fatal("no flags set but edits not empty")
	}
	if got := e.apply(cur); got != cur {
		t.Fatalf("apply with no edits = %+v, want %+v", got, cur)
	}

	e, err = parseDialEdits(dialTestCmd(t, map[string]string{"value": "250k", "description": ""}))
	if err != nil {
		t.Fatalf("parseDialEdits: %v", err)
	}
	want := model.Dial{ID: "1", Name: "Food", Value: 250_000}
	if got := e.apply(cur); got != want {
		t.Fatalf("apply = %+v, want %+v", got, want)
	}
}
