// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"examdesk/cli/internal/api"
)

var (
	fileFolder int
	fileSkip   int
	fileLimit  int
)

var filesCmd = &cobra.Command{
	Use:     "files",
	Aliases: []string{"file", "upload"},
	Short:   "Upload and manage documents",
}

var filesUploadCmd = &cobra.Command{
	Use:   "upload PATH",
	Short: "Upload a document, optionally into a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		folder := folderFlag(cmd)
		name := filepath.Base(path)
		f, err := call(cmd, s, "Uploading "+name, func(ctx context.Context) (api.File, error) {
			return s.api.UploadFile(ctx, name, bytes.NewReader(data), folder)
		})
		if err != nil {
			return err
		}
		done(cmd, "Uploaded %s as file %d", name, f.ID)
		return renderRecord(cmd, f, fileFields(f))
	},
}

var filesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List uploaded files",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		folder := folderFlag(cmd)
		list, err := call(cmd, s, "Loading files", func(ctx context.Context) (api.FileList, error) {
			return s.api.ListFiles(ctx, fileSkip, fileLimit, folder)
		})
		if err != nil {
			return err
		}
		return render(cmd, list, func() pterm.TableData {
			rows := pterm.TableData{{"ID", "Name", "Type", "Size", "Folder"}}
			for _, f := range list.Items {
				rows = append(rows, []string{strconv.Itoa(f.ID), cell(f.Filename), cell(f.ContentType), humanSize(f.Size), optInt(f.FolderID)})
			}
			return rows
		})
	},
}

var filesGetCmd = &cobra.Command{
	Use:   "get FILE_ID",
	Short: "Show file metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileID, err := parseID(args[0], "file")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		f, err := call(cmd, s, "Loading file", func(ctx context.Context) (api.File, error) {
			return s.api.GetFile(ctx, fileID)
		})
		if err != nil {
			return err
		}
		return renderRecord(cmd, f, fileFields(f))
	},
}

var filesDeleteCmd = &cobra.Command{
	Use:   "delete FILE_ID",
	Short: "Delete an uploaded file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fileID, err := parseID(args[0], "file")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if _, err := call(cmd, s, "Deleting file", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteFile(ctx, fileID)
		}); err != nil {
			return err
		}
		done(cmd, "Deleted file %d", fileID)
		return nil
	},
}

// folderFlag returns the --folder value only when it was given.
func folderFlag(cmd *cobra.Command) *int {
	if !cmd.Flags().Changed("folder") {
		return nil
	}
	folder := fileFolder
	return &folder
}

func fileFields(f api.File) [][]string {
	return [][]string{
		{"ID", strconv.Itoa(f.ID)},
		{"Name", f.Filename},
		{"Type", cell(f.ContentType)},
		{"Size", humanSize(f.Size)},
		{"Folder", optInt(f.FolderID)},
		{"URL", cell(f.URL)},
		{"Uploaded", cell(f.CreatedAt)},
	}
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func init() {
	for _, c := range []*cobra.Command{filesUploadCmd, filesListCmd} {
		c.Flags().IntVar(&fileFolder, "folder", 0, "Folder id")
	}
	filesListCmd.Flags().IntVar(&fileSkip, "skip", 0, "Number of files to skip")
	filesListCmd.Flags().IntVar(&fileLimit, "limit", 20, "Maximum number of files to return")

	filesCmd.AddCommand(filesUploadCmd, filesListCmd, filesGetCmd, filesDeleteCmd)
	rootCmd.AddCommand(filesCmd)
}
