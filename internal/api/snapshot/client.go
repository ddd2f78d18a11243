package snapshot

import (
	"os"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
)

var ErrEmptySnapshot = crerr.New("snapshot file is empty")

// Client reads the snapshot document the input assembler leaves on disk.
type Client struct {
	path string
}

func NewClient(path string) *Client {
	return &Client{path: path}
}

func (c *Client) Path() string {
	return c.path
}

func (c *Client) Get(result any) error {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		return crerr.Wrapf(err, "reading snapshot %s", c.path)
	}
	if len(raw) == 0 {
		return crerr.WithStack(ErrEmptySnapshot)
	}

	if err := sonic.Unmarshal(raw, result); err != nil {
		return crerr.Wrapf(err, "decoding snapshot %s", c.path)
	}
	return nil
}
