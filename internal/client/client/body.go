package client

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/casiec/internal/netx"
)

// Body is a fully buffered request body, so a retried call can send it again.
type Body struct {
	Data        []byte
	ContentType string
}

func JSONBody(v any) (*Body, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode body: %w", err)
	}
	return &Body{Data: data, ContentType: "application/json"}, nil
}

// MultipartBody builds a multipart/form-data body. file may be nil.
func MultipartBody(fields map[string]string, file *netx.FilePart) (*Body, error) {
	data, ct, err := netx.MultipartBody(fields, file)
	if err != nil {
		return nil, fmt.Errorf("encode multipart body: %w", err)
	}
	return &Body{Data: data, ContentType: ct}, nil
}
