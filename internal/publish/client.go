// Package publish pushes files to the static blog host over FTP and maps
// remote paths to their public URLs.
package publish

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"blogforge/internal/config"
	"blogforge/internal/logger"
)

const dialTimeout = 15 * time.Second

// Client talks to the hosting target. Each operation opens its own
// connection; the hosts in play drop idle control channels aggressively.
type Client struct {
	cfg config.FTP
}

func NewClient(cfg config.FTP) *Client {
	return &Client{cfg: cfg}
}

func (c *Client) connect(ctx context.Context) (*ftp.ServerConn, error) {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)
	conn, err := ftp.Dial(addr, ftp.DialWithContext(ctx), ftp.DialWithTimeout(dialTimeout))
	if err != nil {
		return nil, fmt.Errorf("ftp dial %s: %w", addr, err)
	}
	if err := conn.Login(c.cfg.User, c.cfg.Pass); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("ftp login: %w", err)
	}
	return conn, nil
}

// ensureDir creates every missing segment of dirPath, walking from the root.
func ensureDir(conn *ftp.ServerConn, dirPath string) error {
	current := ""
	for _, segment := range strings.Split(strings.Trim(dirPath, "/"), "/") {
		if segment == "" {
			continue
		}
		current = current + "/" + segment
		if err := conn.ChangeDir(current); err != nil {
			if err := conn.MakeDir(current); err != nil {
				return fmt.Errorf("make dir %s: %w", current, err)
			}
		}
	}
	return nil
}

// UploadBytes stores data at remotePath, creating parent directories as
// needed, and returns the public URL of the stored file.
func (c *Client) UploadBytes(ctx context.Context, data []byte, remotePath string) (string, error) {
	conn, err := c.connect(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Quit()

	if dir := path.Dir(remotePath); dir != "/" && dir != "." {
		if err := ensureDir(conn, dir); err != nil {
			return "", err
		}
	}
	if err := conn.Stor(remotePath, bytes.NewReader(data)); err != nil {
		return "", fmt.Errorf("stor %s: %w", remotePath, err)
	}

	url := c.PublicURL(remotePath)
	logger.Debug("file uploaded", "path", remotePath, "bytes", len(data), "url", url)
	return url, nil
}

// EnsureDirs creates every listed directory, parents included.
func (c *Client) EnsureDirs(ctx context.Context, paths ...string) error {
	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	for _, dirPath := range paths {
		if err := ensureDir(conn, dirPath); err != nil {
			return err
		}
	}
	return nil
}

// DeleteFile removes one remote file.
func (c *Client) DeleteFile(ctx context.Context, remotePath string) error {
	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	if err := conn.Delete(remotePath); err != nil {
		return fmt.Errorf("delete %s: %w", remotePath, err)
	}
	return nil
}

// DeleteDirectory removes a remote directory and everything below it.
func (c *Client) DeleteDirectory(ctx context.Context, remotePath string) error {
	conn, err := c.connect(ctx)
	if err != nil {
		return err
	}
	defer conn.Quit()

	return removeRecursive(conn, remotePath)
}

func removeRecursive(conn *ftp.ServerConn, dirPath string) error {
	entries, err := conn.List(dirPath)
	if err != nil {
		return fmt.Errorf("list %s: %w", dirPath, err)
	}
	for _, entry := range entries {
		if entry.Name == "." || entry.Name == ".." {
			continue
		}
		child := path.Join(dirPath, entry.Name)
		if entry.Type == ftp.EntryTypeFolder {
			if err := removeRecursive(conn, child); err != nil {
				return err
			}
			continue
		}
		if err := conn.Delete(child); err != nil {
			return fmt.Errorf("delete %s: %w", child, err)
		}
	}
	if err := conn.RemoveDir(dirPath); err != nil {
		return fmt.Errorf("remove dir %s: %w", dirPath, err)
	}
	return nil
}

// PublicURL maps a remote path to its web address. The host serves the
// /www/blog document subtree under /blog.
func (c *Client) PublicURL(remotePath string) string {
	webPath := remotePath
	if strings.HasPrefix(webPath, "/www/blog/") {
		webPath = "/blog/" + strings.TrimPrefix(webPath, "/www/blog/")
	}
	return strings.TrimRight(c.cfg.BaseURL, "/") + webPath
}

// RemotePathFromURL is the inverse of PublicURL: it recovers the FTP path of
// a file from its public address. Returns "" for URLs outside the base.
func (c *Client) RemotePathFromURL(url string) string {
	base := strings.TrimRight(c.cfg.BaseURL, "/")
	if base == "" || !strings.HasPrefix(url, base) {
		return ""
	}
	webPath := strings.TrimPrefix(url, base)
	if strings.HasPrefix(webPath, "/blog/") {
		return "/www/blog/" + strings.TrimPrefix(webPath, "/blog/")
	}
	return webPath
}
