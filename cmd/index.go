package cmd

import (
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jsphweid/smfnotes/constants"
	"github.com/jsphweid/smfnotes/db"
	"github.com/jsphweid/smfnotes/midi"
	"github.com/jsphweid/smfnotes/model"
	"github.com/jsphweid/smfnotes/util"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var indexSkipDB bool

func init() {
	indexCmd.Flags().BoolVar(&indexSkipDB, "no-db", false, "only write the local summaries file")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index [maxNum]",
	Short: "Creates index",
	Long:  `Decodes every midi file under MEDIA_PATH and stores a summary of each.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			maxNum = arg1
		}

		var store summaryPutter
		if !indexSkipDB {
			s, err := db.NewLocalStore()
			if err != nil {
				return err
			}
			store = s
		}
		_, err := Index(maxNum, store)
		return err
	},
}

type summaryPutter interface {
	PutSummary(model.Summary) error
}

func createFileNumMap(paths []string) model.FileNumToMidiPath {
	res := make(model.FileNumToMidiPath)
	for i, v := range paths {
		res[uint32(i)] = v
	}
	return res
}

// Index decodes up to maxNum files (0 for all) and writes their summaries to
// store, when given, and to the summaries file in the index dir. Files that
// fail to decode are logged and skipped.
func Index(maxNum int, store summaryPutter) ([]model.Summary, error) {
	mediaDir, err := constants.GetMediaDir()
	if err != nil {
		return nil, err
	}
	paths, err := util.GatherAllMidiPaths(mediaDir, maxNum)
	if err != nil {
		return nil, err
	}

	runId := uuid.NewString()
	fileNumMap := createFileNumMap(paths)
	keys := util.GetKeys(fileNumMap)
	summaries := make([]model.Summary, 0, len(keys))
	for i, num := range keys {
		path := fileNumMap[num]
		log.Info().Msgf("Processing %v of %v midi files", i+1, len(keys))

		f, err := midi.ReadMidiFile(path)
		if f == nil || (err != nil && model.IsFatal(err)) {
			log.Warn().Err(err).Str("path", path).Msg("skipping file")
			continue
		}
		rel, relErr := filepath.Rel(mediaDir, path)
		if relErr != nil {
			rel = path
		}
		summary := midi.Summarize(f, rel)
		summary.RunId = runId
		if store != nil {
			if err := store.PutSummary(summary); err != nil {
				return summaries, err
			}
		}
		summaries = append(summaries, summary)
	}

	indexDir := constants.GetIndexDir()
	if err := util.EnsureDir(indexDir); err != nil {
		return summaries, err
	}
	err = util.CreateBinary(filepath.Join(indexDir, constants.SummariesFilename), summaries)
	return summaries, errors.Wrap(err, "could not write summaries")
}
