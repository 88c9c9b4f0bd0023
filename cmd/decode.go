package cmd

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jsphweid/smfnotes/midi"
	"github.com/jsphweid/smfnotes/model"
	"github.com/spf13/cobra"
)

var (
	decodeJSON   bool
	decodeEvents bool
)

func init() {
	decodeCmd.Flags().BoolVar(&decodeJSON, "json", false, "print JSON instead of text")
	decodeCmd.Flags().BoolVar(&decodeEvents, "events", false, "include every event, not just notes")
	rootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <file.mid>",
	Short: "Decodes a midi file",
	Long:  `Decodes a midi file and prints its tracks, notes and meta data.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := midi.ReadMidiFile(args[0])
		if f == nil {
			return err
		}

		out := cmd.OutOrStdout()
		if decodeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(model.NewDecodeResponse(uuid.NewString(), f, decodeEvents)); err != nil {
				return err
			}
		} else {
			render(out, f, decodeEvents)
		}

		// partial output has been printed, the error still sets the exit code
		return err
	},
}
