// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"examdesk/cli/internal/api"
)

var (
	folderName   string
	folderDesc   string
	folderParent int
	folderSkip   int
	folderLimit  int
)

var foldersCmd = &cobra.Command{
	Use:     "folders",
	Aliases: []string{"folder"},
	Short:   "Organize exams and files into folders",
}

var foldersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List folders",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		folders, err := call(cmd, s, "Loading folders", func(ctx context.Context) ([]api.Folder, error) {
			return s.api.ListFolders(ctx, folderSkip, folderLimit)
		})
		if err != nil {
			return err
		}
		return render(cmd, folders, func() pterm.TableData {
			rows := pterm.TableData{{"ID", "Name", "Parent", "Description"}}
			for _, f := range folders {
				rows = append(rows, []string{strconv.Itoa(f.ID), cell(f.Name), optInt(f.ParentID), cell(f.Description)})
			}
			return rows
		})
	},
}

var foldersGetCmd = &cobra.Command{
	Use:   "get FOLDER_ID",
	Short: "Show a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folderID, err := parseID(args[0], "folder")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		f, err := call(cmd, s, "Loading folder", func(ctx context.Context) (api.Folder, error) {
			return s.api.GetFolder(ctx, folderID)
		})
		if err != nil {
			return err
		}
		return renderRecord(cmd, f, folderFields(f))
	},
}

var foldersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a folder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		in := folderInput(cmd, api.FolderInput{})
		f, err := call(cmd, s, "Creating folder", func(ctx context.Context) (api.Folder, error) {
			return s.api.CreateFolder(ctx, in)
		})
		if err != nil {
			return err
		}
		done(cmd, "Created folder %d %q", f.ID, f.Name)
		return renderRecord(cmd, f, folderFields(f))
	},
}

var foldersUpdateCmd = &cobra.Command{
	Use:   "update FOLDER_ID",
	Short: "Rename or move a folder; only the given flags change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folderID, err := parseID(args[0], "folder")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		current, err := call(cmd, s, "Loading folder", func(ctx context.Context) (api.Folder, error) {
			return s.api.GetFolder(ctx, folderID)
		})
		if err != nil {
			return err
		}
		in := folderInput(cmd, api.FolderInput{Name: current.Name, Description: current.Description, ParentID: current.ParentID})
		f, err := call(cmd, s, "Updating folder", func(ctx context.Context) (api.Folder, error) {
			return s.api.UpdateFolder(ctx, folderID, in)
		})
		if err != nil {
			return err
		}
		done(cmd, "Updated folder %d", f.ID)
		return renderRecord(cmd, f, folderFields(f))
	},
}

var foldersDeleteCmd = &cobra.Command{
	Use:   "delete FOLDER_ID",
	Short: "Delete a folder",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		folderID, err := parseID(args[0], "folder")
		if err != nil {
			return err
		}
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		if _, err := call(cmd, s, "Deleting folder", func(ctx context.Context) (struct{}, error) {
			return struct{}{}, s.api.DeleteFolder(ctx, folderID)
		}); err != nil {
			return err
		}
		done(cmd, "Deleted folder %d", folderID)
		return nil
	},
}

func folderInput(cmd *cobra.Command, in api.FolderInput) api.FolderInput {
	f := cmd.Flags()
	if f.Changed("name") {
		in.Name = folderName
	}
	if f.Changed("description") {
		in.Description = folderDesc
	}
	if f.Changed("parent") {
		parent := folderParent
		in.ParentID = &parent
	}
	return in
}

func folderFields(f api.Folder) [][]string {
	return [][]string{
		{"ID", strconv.Itoa(f.ID)},
		{"Name", f.Name},
		{"Description", cell(f.Description)},
		{"Parent", optInt(f.ParentID)},
		{"Created", cell(f.CreatedAt)},
	}
}

func addFolderFlags(c *cobra.Command) {
	c.Flags().StringVar(&folderName, "name", "", "Folder name")
	c.Flags().StringVar(&folderDesc, "description", "", "Folder description")
	c.Flags().IntVar(&folderParent, "parent", 0, "Parent folder id")
}

func init() {
	foldersListCmd.Flags().IntVar(&folderSkip, "skip", 0, "Number of folders to skip")
	foldersListCmd.Flags().IntVar(&folderLimit, "limit", 0, "Maximum number of folders to return")
	addFolderFlags(foldersCreateCmd)
	_ = foldersCreateCmd.MarkFlagRequired("name")
	addFolderFlags(foldersUpdateCmd)

	foldersCmd.AddCommand(foldersListCmd, foldersGetCmd, foldersCreateCmd, foldersUpdateCmd, foldersDeleteCmd)
	rootCmd.AddCommand(foldersCmd)
}
