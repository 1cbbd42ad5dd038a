package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/hdc"
	"github.com/ayusman/mudra/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import trained recognizer state from a JSON file",
	Long:  "Replaces the daemon's trained classes with the state exported by 'mudra export'.",
	Args:  cobra.ExactArgs(1),
	Example: `
  mudra import gestures.json
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		var state hdc.State
		if err := json.Unmarshal(data, &state); err != nil {
			return fmt.Errorf("parse %s: %w", args[0], err)
		}

		// Import validates the state before it's persisted, so a malformed
		// file is rejected without touching the database.
		recognizer := hdc.New(state.Dim, state.NumBins, state.Threshold, 0)
		if err := recognizer.Import(state); err != nil {
			return fmt.Errorf("invalid recognizer state: %w", err)
		}

		path, err := dbPath()
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.New(path)
		if err != nil {
			return fmt.Errorf("initialize store: %w", err)
		}
		defer st.Close()

		if err := st.Recognizer().SaveState(recognizer.Export()); err != nil {
			return fmt.Errorf("save recognizer state: %w", err)
		}

		fmt.Printf("Imported %d trained classes from %s\n", len(state.Classes), args[0])
		return nil
	},
}
