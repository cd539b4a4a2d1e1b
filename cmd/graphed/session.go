package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"graphed/demo"
	"graphed/editor"
	"graphed/geometry"
	"graphed/persist"
)

func (a *app) restore(path string) (*demo.State, demo.Snapshot, error) {
	snap, err := persist.ReadSnapshot[demo.Op, demo.DataType, float64](path)
	if err != nil {
		return nil, snap, err
	}
	s, err := editor.Restore[demo.Op, demo.DataType, float64, demo.Template, struct{}](snap, editor.WithLogger(a.logger))
	if err != nil {
		return nil, snap, fmt.Errorf("%s: %w", path, err)
	}
	return s, snap, nil
}

func newCmd(a *app) *cobra.Command {
	var empty, force bool

	cmd := &cobra.Command{
		Use:   "new <file>",
		Short: "Write a new session (.json, .yaml)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force)", path)
				}
			}

			var s *demo.State
			if empty {
				s = demo.New(editor.WithLogger(a.logger))
			} else {
				var err error
				if s, err = demo.Sample(editor.WithLogger(a.logger)); err != nil {
					return err
				}
			}
			if err := s.SetZoomRange(a.cfg.ZoomRange()); err != nil {
				return err
			}
			if err := persist.Save(path, s); err != nil {
				return err
			}

			fmt.Printf("  %s wrote %s %s\n", statusIcon(true), path, subtle.Sprintf("(%d nodes)", s.Graph().Len()))
			return nil
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Start with an empty graph instead of the sample")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")
	return cmd
}

// repairs lists the stored references that restoring had to change.
func repairs(before, after demo.Snapshot) []string {
	var out []string
	if !slices.Equal(before.NodeOrder, after.NodeOrder) {
		out = append(out, fmt.Sprintf("node order %v -> %v", before.NodeOrder, after.NodeOrder))
	}
	if !slices.Equal(before.Selected, after.Selected) {
		out = append(out, fmt.Sprintf("selection %v -> %v", before.Selected, after.Selected))
	}
	if !maps.Equal(before.Positions, after.Positions) {
		out = append(out, fmt.Sprintf("positions for %v -> %v",
			slices.Sorted(maps.Keys(before.Positions)), slices.Sorted(maps.Keys(after.Positions))))
	}
	if before.Zoom != after.Zoom {
		out = append(out, fmt.Sprintf("zoom %v -> %v", before.Zoom, after.Zoom))
	}
	return out
}

func checkCmd(a *app) *cobra.Command {
	var fix bool

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Check a session for stale references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s, snap, err := a.restore(path)
			if err != nil {
				return err
			}
			if err := s.Validate(); err != nil {
				return err
			}

			fixed := repairs(snap, s.Snapshot())
			if len(fixed) == 0 {
				fmt.Printf("  %s %s is consistent\n", statusIcon(true), path)
				return nil
			}

			for _, r := range fixed {
				warn.Printf("  ! %s\n", r)
			}
			if !fix {
				return fmt.Errorf("%s needs %d repairs (use --fix)", path, len(fixed))
			}
			if err := persist.Save(path, s); err != nil {
				return err
			}
			fmt.Printf("  %s repaired %s\n", statusIcon(true), path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fix, "fix", false, "Write the repaired session back")
	return cmd
}

func convertCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a session between JSON and YAML",
		Long:  "Convert a session between JSON and YAML. Formats are picked by file extension.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := persist.FormatFromPath(args[1]); err != nil {
				return err
			}
			s, _, err := a.restore(args[0])
			if err != nil {
				return err
			}
			if err := persist.Save(args[1], s); err != nil {
				return err
			}
			fmt.Printf("  %s %s -> %s\n", statusIcon(true), args[0], args[1])
			return nil
		},
	}
}

func formatPos(p geometry.Pos2) string {
	return "(" + strconv.FormatFloat(p.X, 'g', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'g', -1, 64) + ")"
}

func infoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Show the nodes, connections and viewport of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := a.restore(args[0])
			if err != nil {
				return err
			}
			g := s.Graph()

			fmt.Printf("  %s %s\n\n", brand.Sprint("session"), args[0])

			var rows [][]string
			for _, id := range s.GetNodeOrder() {
				n, _ := g.Node(id)
				pos, _ := s.GetNodePosition(id)

				value := "-"
				if len(n.Outputs) > 0 {
					if v, err := demo.Evaluate(g, n.Outputs[0]); err != nil {
						value = bad.Sprint(err)
					} else {
						value = strconv.FormatFloat(v, 'g', -1, 64)
					}
				}
				sel := ""
				if s.IsSelected(id) {
					sel = "*"
				}
				rows = append(rows, []string{strconv.FormatUint(uint64(id), 10), sel, n.Label, string(n.Data), formatPos(pos), value})
			}
			table([]string{"ID", "SEL", "LABEL", "OP", "POSITION", "VALUE"}, rows)

			r := s.GetSceneRect()
			zr := s.GetZoomRange()
			fmt.Println()
			fmt.Printf("  Connections: %d\n", len(g.Connections()))
			fmt.Printf("  Scene:       %s - %s\n", formatPos(r.Min), formatPos(r.Max))
			fmt.Printf("  Zoom:        %g %s\n", s.GetZoom(), subtle.Sprintf("[%g, %g]", zr.Min, zr.Max))
			return nil
		},
	}
}
