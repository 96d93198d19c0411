package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/minhtran-dev/studynotes-be/config"
	"github.com/minhtran-dev/studynotes-be/database"
	"github.com/minhtran-dev/studynotes-be/repository"
	"github.com/minhtran-dev/studynotes-be/service"
)

// ingestCmd represents the ingest command
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Attach local files to a note",
	Long: `Extracts text from local files (pdf, txt, md) and attaches them as
documents to an existing note, the same way the upload endpoint does.
Pass either --file for a single file or --dir for a whole directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		noteID, _ := cmd.Flags().GetString("note")
		filePath, _ := cmd.Flags().GetString("file")
		directory, _ := cmd.Flags().GetString("dir")
		if noteID == "" || (filePath == "" && directory == "") {
			logrus.Fatal("--note and one of --file/--dir are required")
		}

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			logrus.Fatalf("Failed to load config: %v", err)
		}

		mongoClient, err := database.NewMongoClient(cfg.MongoURI)
		if err != nil {
			logrus.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		db := mongoClient.Database("studynotes")
		noteRepo := repository.NewNoteRepo(db.Collection("notes"), db.Collection("documents"))
		fileService := service.NewFileService(cfg.UploadDir, noteRepo)

		ctx := context.Background()
		if _, err := noteRepo.GetNote(ctx, noteID); err != nil {
			logrus.Fatalf("Note %s not found: %v", noteID, err)
		}

		paths := []string{}
		if filePath != "" {
			paths = append(paths, filePath)
		}
		if directory != "" {
			entries, err := os.ReadDir(directory)
			if err != nil {
				logrus.Fatalf("Failed to read directory: %v", err)
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					paths = append(paths, filepath.Join(directory, entry.Name()))
				}
			}
		}

		for _, path := range paths {
			doc, err := fileService.IngestFile(ctx, noteID, path)
			if err != nil {
				logrus.WithField("file", path).WithError(err).Warn("skipping file")
				continue
			}
			logrus.WithFields(logrus.Fields{
				"file":        path,
				"document_id": doc.ID,
			}).Info("attached document")
		}
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
	ingestCmd.Flags().StringP("note", "n", "", "note id to attach documents to")
	ingestCmd.Flags().StringP("file", "f", "", "file to ingest")
	ingestCmd.Flags().StringP("dir", "d", "", "directory of files to ingest")
}
