package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the trained recognizer state to a JSON file",
	Args:  cobra.ExactArgs(1),
	Example: `
  mudra export gestures.json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := dbPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.New(path)
		if err != nil {
			return fmt.Errorf("initialize store: %w", err)
		}
		defer st.Close()

		state, err := st.Recognizer().LoadState()
		if err != nil {
			return fmt.Errorf("load recognizer state: %w", err)
		}

		data, err := json.MarshalIndent(state, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal recognizer state: %w", err)
		}

		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", args[0], err)
		}

		fmt.Printf("Exported %d trained classes to %s\n", len(state.Classes), args[0])
		return nil
	},
}
