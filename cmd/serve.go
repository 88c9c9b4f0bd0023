package cmd

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/smfnotes/constants"
	"github.com/jsphweid/smfnotes/db"
	"github.com/jsphweid/smfnotes/midi"
	"github.com/jsphweid/smfnotes/model"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var servePort string

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serves",
	Long:  `Serves the decoder over HTTP.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.NewLocalStore()
		if err != nil {
			return err
		}
		log.Info().Str("port", servePort).Msg("listening")
		return http.ListenAndServe(":"+servePort, NewRouter(store))
	},
}

type summaryGetter interface {
	GetSummaries(filenames []string) (map[string]model.Summary, error)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

// HandleDecode decodes the request body as a midi file. Track errors still
// give a 200 with the error on the track; fatal errors give a 422.
func HandleDecode(w http.ResponseWriter, r *http.Request) {
	requestId := uuid.NewString()
	logger := log.With().Str("request_id", requestId).Logger()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxUploadSize))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, err)
		return
	}

	f, err := midi.Decode(body)
	if err != nil && (f == nil || model.IsFatal(err)) {
		logger.Info().Err(err).Int("bytes", len(body)).Msg("decode failed")
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	if err != nil {
		logger.Info().Err(err).Msg("decoded with track errors")
	}

	withEvents := r.URL.Query().Get("events") == "true"
	writeJSON(w, http.StatusOK, model.NewDecodeResponse(requestId, f, withEvents))
}

func handleSummary(store summaryGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		res, err := store.GetSummaries([]string{name})
		if err != nil {
			log.Error().Err(err).Str("name", name).Msg("summary lookup failed")
			writeError(w, http.StatusBadGateway, err)
			return
		}
		summary, ok := res[name]
		if !ok {
			writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "no summary for " + name})
			return
		}
		writeJSON(w, http.StatusOK, summary)
	}
}

func NewRouter(store summaryGetter) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/decode", HandleDecode).Methods("POST")
	router.HandleFunc("/summaries/{name:.+}", handleSummary(store)).Methods("GET")
	return cors.Default().Handler(router)
}
