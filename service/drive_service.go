package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"crescer-uniformes/config"
)

const (
	googleDocMimeType = "application/vnd.google-apps.document"
	// maxOrderListBytes caps a downloaded order list; real lists are a few KB
	maxOrderListBytes = 5 << 20
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DriveService handles Google Drive API operations
type DriveService struct {
	client *drive.Service
}

// Ensure DriveService implements DriveServiceInterface
var _ DriveServiceInterface = (*DriveService)(nil)

// NewDriveService creates a new DriveService instance.
// Credentials come from GOOGLE_APPLICATION_CREDENTIALS_JSON when set, otherwise
// from the Service Account file at GOOGLE_APPLICATION_CREDENTIALS.
func NewDriveService(ctx context.Context, opts config.GoogleOptions) (*DriveService, error) {
	var credentials option.ClientOption
	switch {
	case opts.CredentialsJSON != "":
		credentials = option.WithCredentialsJSON([]byte(opts.CredentialsJSON))
	case opts.CredentialsPath != "":
		credentials = option.WithCredentialsFile(opts.CredentialsPath)
	default:
		return nil, ErrDriveUnavailable
	}

	driveService, err := drive.NewService(ctx, credentials, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveService{
		client: driveService,
	}, nil
}

// DownloadText returns the content of an order list stored on Drive.
// Google Docs are exported as text/plain, any other file is downloaded as is.
func (ds *DriveService) DownloadText(ctx context.Context, fileID string) (string, error) {
	file, err := ds.client.Files.Get(fileID).
		Fields("id, name, mimeType").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to get file metadata: %w", err)
	}
	logrus.Infof("📥 DownloadText: file=%s name=%q mimeType=%s", file.Id, file.Name, file.MimeType)

	var resp *http.Response
	if file.MimeType == googleDocMimeType {
		resp, err = ds.client.Files.Export(fileID, "text/plain").Context(ctx).Download()
	} else {
		resp, err = ds.client.Files.Get(fileID).Context(ctx).Download()
	}
	if err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxOrderListBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file content: %w", err)
	}
	if len(content) > maxOrderListBytes {
		return "", fmt.Errorf("file %s is larger than %d bytes", fileID, maxOrderListBytes)
	}

	// Docs exports start with a BOM
	return string(bytes.TrimPrefix(content, utf8BOM)), nil
}
