package files

import "time"

// File is a catalog record for an object uploaded straight to storage.
// ID is the only identifier handed to clients.
type File struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	StorageKey   string    `json:"storageKey"`
	MimeType     *string   `json:"mimeType"`
	Size         *int64    `json:"size"`
	UserID       string    `json:"userId"`
	UserName     string    `json:"userName"`
	FolderID     *string   `json:"folderId"`
	CreatedAt    time.Time `json:"createdAt"`
}
