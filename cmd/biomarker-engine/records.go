// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/biomarker-engine/internal/store"
	"github.com/pdiddy/biomarker-engine/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage stored analyses (list, show, delete)",
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored analyses, newest first",
	RunE:  runRecordsList,
}

var recordsShowCmd = &cobra.Command{
	Use:   "show [analysis-id]",
	Short: "Show one stored analysis with its records",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsShow,
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete [analysis-id]",
	Short: "Delete a stored analysis",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsDelete,
}

func init() {
	recordsCmd.PersistentFlags().String("data-dir", "data", "base data directory (contains index/)")
	recordsCmd.PersistentFlags().Int("max-results", 20, "maximum number of listed analyses")
	recordsShowCmd.Flags().Bool("json", false, "output the analysis as JSON")
	recordsShowCmd.Flags().Bool("yaml", false, "output the analysis as YAML")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsShowCmd)
	recordsCmd.AddCommand(recordsDeleteCmd)
	rootCmd.AddCommand(recordsCmd)
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dataDir, _ := cmd.Flags().GetString("data-dir")
	maxResults, _ := cmd.Flags().GetInt("max-results")
	return store.NewStore(types.StoreConfig{DataDir: dataDir, MaxResults: maxResults})
}

func runRecordsList(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	summaries, err := s.List(context.Background())
	if err != nil {
		return err
	}
	if len(summaries) == 0 {
		fmt.Println("No stored analyses.")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %s\n", "ID", "Created", "Records", "Name")
	fmt.Println(strings.Repeat("-", 84))
	for _, sum := range summaries {
		fmt.Printf("%-36s  %-20s  %-8d  %s\n",
			sum.ID, sum.CreatedAt.Format("2006-01-02 15:04:05"), sum.RecordCount, sum.Name)
	}
	return nil
}

func runRecordsShow(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx := context.Background()
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		return s.ExportJSON(ctx, args[0], os.Stdout)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		return s.ExportYAML(ctx, args[0], os.Stdout)
	}

	analysis, err := s.Get(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("%s  (%s, %d records)\n", analysis.Name,
		analysis.CreatedAt.Format("2006-01-02"), len(analysis.Records))
	for _, rec := range analysis.Records {
		fmt.Printf("  %-28s  %-12s  %-10s  %s\n",
			rec.Biomarker, rec.Value.String(), rec.Units, rec.Category)
	}
	return nil
}

func runRecordsDelete(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted analysis %s\n", args[0])
	return nil
}
