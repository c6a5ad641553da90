package storage

import (
	"context"
	"io"
)

// Uploader 媒体文件上传接口，返回可访问的URL
type Uploader interface {
	Upload(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}
