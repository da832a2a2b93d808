package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
)

// storedCookie is the on-disk form of a session cookie. Only what is needed
// to resume the session is kept.
type storedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Path  string `json:"path,omitempty"`
}

// LoadCookies restores session cookies previously written by SaveCookies
// into the jar. A missing, unreadable, or corrupt file leaves the jar
// empty; the worst case is starting signed out.
func (c *Client) LoadCookies(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			c.log.Debug().Err(err).Str("path", path).Msg("read session file")
		}
		return
	}

	var stored []storedCookie
	if err := json.Unmarshal(data, &stored); err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("decode session file")
		return
	}

	cookies := make([]*http.Cookie, 0, len(stored))
	for _, sc := range stored {
		cookies = append(cookies, &http.Cookie{Name: sc.Name, Value: sc.Value, Path: sc.Path})
	}
	c.rc.GetClient().Jar.SetCookies(c.base, cookies)
}

// SaveCookies writes the jar's cookies for the backend to path so the next
// process resumes the session. An empty jar removes the file instead; that
// is how logout clears the stored session.
func (c *Client) SaveCookies(path string) error {
	cookies := c.rc.GetClient().Jar.Cookies(c.base)
	if len(cookies) == 0 {
		err := os.Remove(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	stored := make([]storedCookie, 0, len(cookies))
	for _, ck := range cookies {
		stored = append(stored, storedCookie{Name: ck.Name, Value: ck.Value, Path: ck.Path})
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
