package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strings"
)

// FilesAPI covers image uploads.
type FilesAPI struct {
	client *Client
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// UploadImage sends content as the multipart field "file". The part's content
// type comes from the filename extension because the backend only accepts
// image/* parts.
func (f *FilesAPI) UploadImage(ctx context.Context, filename string, content io.Reader) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filepath.Base(filename))))
	header.Set("Content-Type", partContentType(filename))

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create upload part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("copy upload content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	return f.client.do(ctx, call{
		method:      http.MethodPost,
		route:       "/upload-image/",
		path:        "/upload-image/",
		body:        &buf,
		contentType: mw.FormDataContentType(),
	})
}

func partContentType(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
