package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-bundledeps/graph"
)

const (
	outputFlag = "output"
	whyFlag    = "why"
)

func newGraphCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph PROJECT",
		Short: "Print the dependency graph of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := st.session()
			if err != nil {
				return err
			}
			coll, err := s.Collect(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			g := graph.FromCollection(args[0], coll)
			out := cmd.OutOrStdout()

			if why, _ := cmd.Flags().GetString(whyFlag); why != "" {
				text, err := g.ToExplainText(graph.Key(why))
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(out, text)
				return err
			}

			format, _ := cmd.Flags().GetString(outputFlag)
			switch format {
			case "text":
				_, err = fmt.Fprint(out, g.ToText())
			case "dot":
				_, err = fmt.Fprint(out, g.ToDOT())
			case "json":
				var data []byte
				if data, err = g.ToJSON(); err == nil {
					_, err = fmt.Fprintln(out, string(data))
				}
			case "yaml":
				var data []byte
				if data, err = g.ToYAML(); err == nil {
					_, err = out.Write(data)
				}
			case "list":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(g.ToNodeList())
			default:
				return fmt.Errorf("invalid output format: %s", format)
			}
			return err
		},
		DisableAutoGenTag: true,
	}
	cmd.Flags().StringP(outputFlag, "o", "text", "output format (text, dot, json, yaml, list)")
	cmd.Flags().String(whyFlag, "", "explain why the given bundle coordinate or project is included")
	return cmd
}
