package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"rosterimport/storage"
)

var (
	batchDBPath    string
	batchDeleteAll bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Inspect and remove import batches",
	Long: `Every import run stores its records under a batch id. Use these commands to
list past runs or remove the records of one run.`,
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List import batches",
	Example: `
  rosterimport batch list --db ./rosterimport.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadCommandEnv()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(env.dbPath(batchDBPath))
		if err != nil {
			return err
		}
		defer store.Close()

		batches, err := store.ListBatches()
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			fmt.Println("No batches stored.")
			return nil
		}
		for _, batch := range batches {
			fmt.Printf("%s  %s  files=%d records=%d\n",
				batch.BatchID,
				batch.CreatedAt.Local().Format(time.DateTime),
				batch.Files,
				batch.Records,
			)
		}
		return nil
	},
}

var batchDeleteCmd = &cobra.Command{
	Use:   "delete [batch-id]",
	Short: "Delete the records of one import batch",
	Long: `Remove the records stored by one import run. With --all every stored record
is removed while the database file itself is kept.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if batchDeleteAll {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	Example: `
  rosterimport batch delete 5f0c6d2e-0b7e-4d0c-9a57-3c1f7f0e2a11

  # Remove every stored record
  rosterimport batch delete --all
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := loadCommandEnv()
		if err != nil {
			return err
		}

		store, err := storage.OpenSQLite(env.dbPath(batchDBPath))
		if err != nil {
			return err
		}
		defer store.Close()

		if batchDeleteAll {
			deleted, err := store.DeleteAllRecords()
			if err != nil {
				return err
			}
			fmt.Printf("Deleted all batches. Records removed: %d\n", deleted)
			return nil
		}

		deleted, err := store.DeleteBatch(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Deleted batch %s. Records removed: %d\n", args[0], deleted)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchDeleteCmd)

	batchDeleteCmd.Flags().BoolVar(&batchDeleteAll, "all", false, "Delete the records of every batch")
	batchCmd.PersistentFlags().StringVar(&batchDBPath, "db", "", "Path to local SQLite database (default: storage.db_path from config)")
}
