// Copyright (c) 2025 Examdesk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Descriptor describes one logical HTTP call. It is built fresh per call and
// never mutated afterwards, so retries resend exactly the same request.
type Descriptor struct {
	Method string
	// Path is relative to the client's base URL, e.g. "/exams/7".
	Path  string
	Query url.Values
	// Body is encoded as JSON. Ignored when Upload is set.
	Body    any
	Headers map[string]string
	// Upload switches the request to multipart/form-data.
	Upload *Upload
}

// Upload is a file part sent as multipart/form-data.
type Upload struct {
	FieldName string
	FileName  string
	Data      []byte
	Fields    map[string]string
}

// Get builds a GET descriptor.
func Get(path string, query url.Values) Descriptor {
	return Descriptor{Method: http.MethodGet, Path: path, Query: query}
}

// Post builds a POST descriptor with a JSON body.
func Post(path string, body any) Descriptor {
	return Descriptor{Method: http.MethodPost, Path: path, Body: body}
}

// Put builds a PUT descriptor with a JSON body.
func Put(path string, body any) Descriptor {
	return Descriptor{Method: http.MethodPut, Path: path, Body: body}
}

// Delete builds a DELETE descriptor.
func Delete(path string) Descriptor {
	return Descriptor{Method: http.MethodDelete, Path: path}
}

// resolve joins the base URL, path and query string.
func (d Descriptor) resolve(baseURL string) string {
	full := baseURL
	if d.Path != "" {
		full = strings.TrimSuffix(full, "/") + "/" + strings.TrimPrefix(d.Path, "/")
	}
	if len(d.Query) > 0 {
		full += "?" + d.Query.Encode()
	}
	return full
}

// encodeBody returns a fresh body reader and the content type it needs.
// An empty content type means the default JSON header applies.
func (d Descriptor) encodeBody() (io.Reader, string, error) {
	if d.Upload != nil {
		return d.Upload.encode()
	}
	if d.Body == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(d.Body)
	if err != nil {
		return nil, "", fmt.Errorf("marshal body: %w", err)
	}
	return bytes.NewReader(b), "", nil
}

func (u *Upload) encode() (io.Reader, string, error) {
	buf := new(bytes.Buffer)
	w := multipart.NewWriter(buf)
	for k, v := range u.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	field := u.FieldName
	if field == "" {
		field = "file"
	}
	part, err := w.CreateFormFile(field, u.FileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(u.Data); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
