// internal/gzapi/assets.go
package gzapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
)

// Download fetches raw bytes from an instance-relative path, typically
// a Local attachment's URL as reported by GetChallenge.
func (c *Client) Download(ctx context.Context, path string) ([]byte, error) {
	full := c.resolve(path)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, remoteErr("download", full, 0, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, remoteErr("download", full, 0, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, remoteErr("download", full, resp.StatusCode, nil)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, remoteErr("download", full, 0, err)
	}
	return data, nil
}

// UploadAsset uploads one file to /api/assets as a multipart form and
// returns the content hash the instance assigned. The hash identifies
// the asset on this instance only; hashes never carry over from the
// source.
func (c *Client) UploadAsset(ctx context.Context, filename string, content io.Reader) (string, error) {
	full := c.resolve("/api/assets")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, filename))
	hdr.Set("Content-Type", "application/octet-stream")
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return "", remoteErr("upload asset", full, 0, err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", remoteErr("upload asset", full, 0, err)
	}
	if err := mw.Close(); err != nil {
		return "", remoteErr("upload asset", full, 0, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, full, &buf)
	if err != nil {
		return "", remoteErr("upload asset", full, 0, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", remoteErr("upload asset", full, 0, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", remoteErr("upload asset", full, resp.StatusCode, nil)
	}

	var assets []Asset
	if err := json.NewDecoder(resp.Body).Decode(&assets); err != nil {
		return "", remoteErr("upload asset", full, 0, fmt.Errorf("decode response: %w", err))
	}
	if len(assets) == 0 || assets[0].Hash == "" {
		return "", remoteErr("upload asset", full, 0, fmt.Errorf("upload response missing hash"))
	}
	return assets[0].Hash, nil
}
