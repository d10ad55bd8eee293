package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/goglass/internal/diagram"
	"github.com/alexiusacademia/goglass/internal/model"
	"github.com/alexiusacademia/goglass/internal/store"
)

var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Inspect, export and manage stored models",
	Long: `Work with the models kept in the database.

Subcommands:
  show    - Print the working model
  export  - Write the working model to JSON, YAML or a drawing
  import  - Read a model from JSON or YAML into the database
  list    - List stored models
  delete  - Remove a stored model`,
}

var modelShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the working model",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withModel(cmd.Context(), false, false, func(m *model.Model) error {
			printBanner("MODEL - " + m.Name)

			c := m.Counts()
			w := printSection("CONTENTS:")
			fmt.Fprintf(w, "  ID:\t%s\n", m.ID)
			fmt.Fprintf(w, "  Nodes:\t%d\n", c.Nodes)
			fmt.Fprintf(w, "  Lines:\t%d\n", c.Lines)
			fmt.Fprintf(w, "  Surfaces:\t%d\n", c.Surfaces)
			fmt.Fprintf(w, "  Nodal supports:\t%d\n", c.Supports)
			fmt.Fprintf(w, "  Load cases:\t%d\n", c.LoadCases)
			fmt.Fprintf(w, "  Surface loads:\t%d\n", c.SurfaceLoads)
			endSection(w)

			printNodes("NODES:", m.Nodes())
			printLines("LINES:", m, m.Lines())
			printSupports("NODAL SUPPORTS:", m.Supports())

			fmt.Fprint(out, diagram.DrawElevation(m, diagram.ElevationOptions{Labels: true}))
			fmt.Fprintln(out)
			return nil
		})
	},
}

var modelExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write the working model to a file",
	Long: `Write the working model to a file. The format follows the
extension: .json and .yaml/.yml keep the full model, .png, .svg and
.pdf produce an elevation drawing.

Examples:
  goglass model export facade.yaml
  goglass model export drawings/facade.svg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		return withModel(cmd.Context(), false, false, func(m *model.Model) error {
			var err error
			switch strings.ToLower(filepath.Ext(path)) {
			case ".png", ".svg", ".pdf":
				err = diagram.ExportModel(m, diagram.ExportOptions{}, path)
			default:
				err = m.SaveToFile(path)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Model %q exported to %s\n", m.Name, path)
			return nil
		})
	},
}

var modelImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Read a model from a JSON or YAML file",
	Long: `Read a model from a JSON or YAML file and store it under the
working model name (--model), replacing any model of that name.
The imported model gets a new ID.

Example:
  goglass model import facade.yaml -m facade`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := model.LoadFromFile(args[0])
		if err != nil {
			return err
		}
		// a fresh ID keeps the source model when importing a copy
		m.Name = cfg.Model
		m.ID = uuid.NewString()

		s, err := store.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Save(cmd.Context(), m); err != nil {
			return err
		}
		c := m.Counts()
		fmt.Fprintf(out, "Imported %q: %d nodes, %d lines, %d surfaces\n", m.Name, c.Nodes, c.Lines, c.Surfaces)
		return nil
	},
}

var modelListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := store.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintf(out, "No models in %s\n", cfg.DB)
			return nil
		}

		w := printSection("MODELS IN " + cfg.DB + ":")
		fmt.Fprintln(w, "  Name\tNodes\tLines\tUpdated\tID")
		for _, sum := range list {
			fmt.Fprintf(w, "  %s\t%d\t%d\t%s\t%s\n",
				sum.Name, sum.Nodes, sum.Lines, sum.UpdatedAt.Local().Format("2006-01-02 15:04"), sum.ID)
		}
		endSection(w)
		return nil
	},
}

var modelDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Remove a stored model (the working model by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := cfg.Model
		if len(args) == 1 {
			name = args[0]
		}

		s, err := store.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.Delete(cmd.Context(), name); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted model %q\n", name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelCmd)
	modelCmd.AddCommand(modelShowCmd, modelExportCmd, modelImportCmd, modelListCmd, modelDeleteCmd)
}
