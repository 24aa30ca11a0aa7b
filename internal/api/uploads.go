// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"examdesk/cli/internal/backend"
)

// UploadFile calls POST /upload with the content as the multipart "file" part.
// When folderID is non-nil the file is filed under that folder via ?folder_id.
// The content is buffered so a retried attempt resends the same bytes.
func (s *Service) UploadFile(ctx context.Context, filename string, content io.Reader, folderID *int) (File, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", filename, err)
	}
	d := backend.Descriptor{
		Method: http.MethodPost,
		Path:   "/upload",
		Upload: &backend.Upload{FieldName: "file", FileName: filename, Data: data},
	}
	if folderID != nil {
		d.Query = url.Values{"folder_id": {strconv.Itoa(*folderID)}}
	}
	return backend.Do[File](ctx, s.gw, d)
}

// ListFiles calls GET /upload. folderID, when non-nil, filters by folder.
func (s *Service) ListFiles(ctx context.Context, skip, limit int, folderID *int) (FileList, error) {
	q := page(skip, limit)
	if folderID != nil {
		q.Set("folder_id", strconv.Itoa(*folderID))
	}
	return backend.Do[FileList](ctx, s.gw, backend.Get("/upload", q))
}

// GetFile calls GET /upload/{id}.
func (s *Service) GetFile(ctx context.Context, fileID int) (File, error) {
	return backend.Do[File](ctx, s.gw, backend.Get("/upload/"+id(fileID), nil))
}

// DeleteFile calls DELETE /upload/{id}.
func (s *Service) DeleteFile(ctx context.Context, fileID int) error {
	_, err := s.gw.Send(ctx, backend.Delete("/upload/"+id(fileID)))
	return err
}
