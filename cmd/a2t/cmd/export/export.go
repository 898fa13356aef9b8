package export

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"audio2text/internal/app/export"
	"audio2text/internal/app/repository/sqlite"
	"audio2text/internal/config"
)

var (
	outputFilePath string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of recent rows to export, 0 exports the default window")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export persisted transcription history to excel",
	Long: `Export persisted transcription history to excel

- Requires a history database, see A2T_HISTORY_DB in .env.example`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.FromEnv()
		if cfg.HistoryDB == "" {
			log.Fatal("history is disabled, set A2T_HISTORY_DB to a sqlite file path")
		}

		db, err := sqlite.NewSQLiteDB(cfg.HistoryDB)
		if err != nil {
			log.Fatalf("open history database: %v", err)
		}
		defer db.Close()

		transcriptions, err := db.GetRecent(limit)
		if err != nil {
			log.Fatal(err)
		}

		if err := export.ToExcel(transcriptions, outputFilePath); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
