// Package netx builds HTTP request bodies that need more than encoding/json.
package netx

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"sort"
)

// FilePart is a single file attached to a multipart form.
type FilePart struct {
	FieldName string
	FileName  string
	Data      []byte
}

// MultipartBody encodes fields and an optional file as multipart/form-data.
// The body is returned fully buffered so it can be replayed. Fields are
// written in key order.
func MultipartBody(fields map[string]string, file *FilePart) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := mw.WriteField(k, fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}

	if file != nil {
		fw, err := mw.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return nil, "", fmt.Errorf("create form file: %w", err)
		}
		if _, err := fw.Write(file.Data); err != nil {
			return nil, "", fmt.Errorf("write form file: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}
