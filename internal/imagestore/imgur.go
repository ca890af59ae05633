package imagestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

const imgurTimeout = 30 * time.Second

var ErrUploadRejected = errors.New("image host rejected the upload")

// ImgurClient talks to the Imgur v3 API: an anonymous multipart POST to
// /image returns the public link and a deletehash, and a DELETE to
// /image/{deletehash} removes it again.
type ImgurClient struct {
	client   *http.Client
	baseURL  string
	clientID string
}

type imgurResponse struct {
	Success bool `json:"success"`
	Status  int  `json:"status"`
	Data    struct {
		Link       string `json:"link"`
		DeleteHash string `json:"deletehash"`
	} `json:"data"`
}

func NewImgurClient(baseURL, clientID string) *ImgurClient {
	return &ImgurClient{
		client: &http.Client{
			Timeout: imgurTimeout,
		},
		baseURL:  baseURL,
		clientID: clientID,
	}
}

func (c *ImgurClient) Upload(ctx context.Context, filename string, data []byte) (Upload, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return Upload{}, fmt.Errorf("writer.CreateFormFile -> %w", err)
	}
	if _, err = part.Write(data); err != nil {
		return Upload{}, fmt.Errorf("part.Write -> %w", err)
	}
	if err = writer.Close(); err != nil {
		return Upload{}, fmt.Errorf("writer.Close -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/image", &body)
	if err != nil {
		return Upload{}, fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.clientID)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return Upload{}, fmt.Errorf("c.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	var parsed imgurResponse
	if err = json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Upload{}, fmt.Errorf("json.Decode -> %w", err)
	}

	if resp.StatusCode != http.StatusOK || !parsed.Success || parsed.Data.Link == "" {
		return Upload{}, fmt.Errorf("%w (status %d)", ErrUploadRejected, resp.StatusCode)
	}

	return Upload{
		URL:        parsed.Data.Link,
		DeleteHash: parsed.Data.DeleteHash,
	}, nil
}

func (c *ImgurClient) Delete(ctx context.Context, upload Upload) error {
	if upload.DeleteHash == "" {
		return errors.New("missing deletehash")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/image/"+upload.DeleteHash, nil)
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.clientID)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("c.client.Do -> %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	// Imgur returns 404 for an already-deleted hash; treat it as done.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("image host returned status %d", resp.StatusCode)
	}

	return nil
}
