package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/smfnotes/crosscheck"
	"github.com/jsphweid/smfnotes/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(verifyCmd)
}

var verifyCmd = &cobra.Command{
	Use:   "verify <file.mid>",
	Short: "Compares the decoded notes with gomidi",
	Long:  `Decodes a midi file and compares every reconstructed note with what gomidi's smf reader produces.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "error reading midi file")
		}
		f, err := midi.Decode(data)
		if err != nil {
			return err
		}

		mismatches, err := crosscheck.Compare(f, data)
		if err != nil {
			return err
		}
		for _, m := range mismatches {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		if len(mismatches) > 0 {
			return errors.Errorf("%d mismatch(es) with the reference reader", len(mismatches))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok: %d tracks, %d notes\n", len(f.Tracks), f.NumNotes())
		return nil
	},
}
