// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"

	"examdesk/cli/internal/backend"
)

// ListFolders calls GET /folders.
func (s *Service) ListFolders(ctx context.Context, skip, limit int) ([]Folder, error) {
	return backend.Do[[]Folder](ctx, s.gw, backend.Get("/folders", page(skip, limit)))
}

// GetFolder calls GET /folders/{id}.
func (s *Service) GetFolder(ctx context.Context, folderID int) (Folder, error) {
	return backend.Do[Folder](ctx, s.gw, backend.Get("/folders/"+id(folderID), nil))
}

// CreateFolder calls POST /folders.
func (s *Service) CreateFolder(ctx context.Context, in FolderInput) (Folder, error) {
	return backend.Do[Folder](ctx, s.gw, backend.Post("/folders", in))
}

// UpdateFolder calls PUT /folders/{id}.
func (s *Service) UpdateFolder(ctx context.Context, folderID int, in FolderInput) (Folder, error) {
	return backend.Do[Folder](ctx, s.gw, backend.Put("/folders/"+id(folderID), in))
}

// DeleteFolder calls DELETE /folders/{id}.
func (s *Service) DeleteFolder(ctx context.Context, folderID int) error {
	_, err := s.gw.Send(ctx, backend.Delete("/folders/"+id(folderID)))
	return err
}
