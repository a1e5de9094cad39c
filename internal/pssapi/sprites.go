package pssapi

// SpriteURL returns the download URL for a sprite ID, or "" when the ID is
// empty or "0" (many designs have no sprite assigned).
func (c *Client) SpriteURL(spriteID string) string {
	if spriteID == "" || spriteID == "0" {
		return ""
	}
	return c.baseURL + "/FileService/DownloadSprite?spriteId=" + spriteID
}
