package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yanmxa/lumina/internal/core"
	"github.com/yanmxa/lumina/internal/image"
	"github.com/yanmxa/lumina/internal/message"
	"github.com/yanmxa/lumina/internal/session"
)

var errNothingToDo = errors.New("nothing to do: pass --style, --edit or --ask")

// redesignRequest is one non-interactive session.
type redesignRequest struct {
	Source string
	Style  string
	Edits  []string
	Ask    string
}

// redesignResult is what a session produced.
type redesignResult struct {
	State   session.State
	Replies []string
}

// Image returns the latest redesign, if any.
func (r redesignResult) Image() (message.Image, bool) {
	if !r.State.CanCompare() {
		return message.Image{}, false
	}
	return *r.State.GeneratedImage, true
}

var (
	redesignStyle  string
	redesignEdits  []string
	redesignAsk    string
	redesignOutput string
)

var redesignCmd = &cobra.Command{
	Use:   "redesign <image>",
	Short: "Redesign a room photo without the terminal UI",
	Long: `Redesign a room photo in a style, optionally refine the result with
visual edits, and optionally ask a question about it.

Examples:
  lumina redesign room.jpg --style Boho
  lumina redesign room.jpg --style Modern --edit "add a green velvet sofa" -o out.png
  lumina redesign room.jpg --ask "What rug would suit this room?"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		engine, err := newEngine(ctx)
		if err != nil {
			return err
		}

		req := redesignRequest{Source: args[0], Style: redesignStyle, Edits: redesignEdits, Ask: redesignAsk}
		res, err := runRedesign(ctx, engine, req, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return saveResult(cmd.OutOrStdout(), req, res, redesignOutput)
	},
}

func init() {
	redesignCmd.Flags().StringVarP(&redesignStyle, "style", "s", "", "Style to redesign the room in")
	redesignCmd.Flags().StringArrayVarP(&redesignEdits, "edit", "e", nil, "Visual edit to apply after styling (repeatable)")
	redesignCmd.Flags().StringVarP(&redesignAsk, "ask", "a", "", "Question for the design consultant")
	redesignCmd.Flags().StringVarP(&redesignOutput, "output", "o", "", "Output file (default <image>-<style>.<ext>)")
}

// runRedesign uploads req.Source and runs the requested intents in order,
// stopping at the first failure. Model replies are written to w.
func runRedesign(ctx context.Context, engine *core.Engine, req redesignRequest, w io.Writer) (redesignResult, error) {
	if req.Style == "" && len(req.Edits) == 0 && req.Ask == "" {
		return redesignResult{}, errNothingToDo
	}

	info, err := image.Load(req.Source)
	if err != nil {
		return redesignResult{}, err
	}
	if err := engine.Upload(info.ToMessage()); err != nil {
		return redesignResult{}, err
	}

	var res redesignResult
	step := func(ch <-chan core.Outcome, err error) error {
		state, err := await(ch, err)
		res.State = state
		if err != nil {
			return err
		}
		if reply, ok := lastReply(state); ok {
			res.Replies = append(res.Replies, reply)
			fmt.Fprintln(w, reply)
		}
		return nil
	}

	if req.Style != "" {
		if err := step(engine.SelectStyle(ctx, req.Style)); err != nil {
			return res, err
		}
	}
	for _, edit := range req.Edits {
		if err := step(engine.SendMessage(ctx, edit, true)); err != nil {
			return res, err
		}
	}
	if req.Ask != "" {
		if err := step(engine.SendMessage(ctx, req.Ask, false)); err != nil {
			return res, err
		}
	}
	return res, nil
}

// await blocks on an accepted intent and turns a failed outcome into an error.
func await(ch <-chan core.Outcome, err error) (session.State, error) {
	if err != nil {
		return session.State{}, err
	}
	out := <-ch
	if out.Status == core.Failed {
		return out.State, fmt.Errorf("%s: %w", out.State.Error, out.Err)
	}
	return out.State, nil
}

func lastReply(state session.State) (string, bool) {
	if n := len(state.History); n > 0 && state.History[n-1].Role == message.RoleModel {
		return state.History[n-1].Text, true
	}
	return "", false
}

// saveResult writes the redesign, if one was produced, to output or a derived name.
func saveResult(w io.Writer, req redesignRequest, res redesignResult, output string) error {
	img, ok := res.Image()
	if !ok {
		return nil
	}
	if output == "" {
		output = image.OutputName(req.Source, res.State.SelectedStyle, img)
	}
	path, err := image.Save(output, img)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Saved %s (%s)\n", path, image.FormatBytes(img.Size()))
	return nil
}
